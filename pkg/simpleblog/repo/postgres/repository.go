package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simpleblog.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "users") {
				return fmt.Errorf("user already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - run setup first")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Schema lifecycle

func (r *Repository) Setup(ctx context.Context) error {
	// One statement per Exec, pgx rejects multi-statement strings in
	// the extended protocol.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(120) UNIQUE,
			email VARCHAR(120) UNIQUE,
			password VARCHAR(254),
			is_deletable BOOLEAN DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(254),
			body TEXT,
			author_id BIGINT REFERENCES users(id)
		)`,
	}

	for _, statement := range statements {
		if _, err := r.db.Exec(ctx, statement); err != nil {
			return r.handlePostgresError("setup", err)
		}
	}
	return nil
}

func (r *Repository) Teardown(ctx context.Context) error {
	statements := []string{
		`DROP TABLE IF EXISTS posts`,
		`DROP TABLE IF EXISTS users`,
	}

	for _, statement := range statements {
		if _, err := r.db.Exec(ctx, statement); err != nil {
			return r.handlePostgresError("teardown", err)
		}
	}
	return nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *simpleblog.User) error {
	query := `
		INSERT INTO users (name, email, password, is_deletable)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.IsDeletable).Scan(&user.ID)
	if err != nil {
		return r.handlePostgresError("create user", err)
	}

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id int64) (*simpleblog.User, error) {
	query := `
		SELECT id, name, email, password, is_deletable
		FROM users WHERE id = $1`

	var user simpleblog.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.IsDeletable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblog.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user", err)
	}

	return &user, nil
}

func (r *Repository) GetUserByName(ctx context.Context, name string) (*simpleblog.User, error) {
	query := `
		SELECT id, name, email, password, is_deletable
		FROM users WHERE name = $1`

	var user simpleblog.User
	err := r.db.QueryRow(ctx, query, name).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.IsDeletable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblog.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user by name", err)
	}

	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*simpleblog.User, error) {
	query := `
		SELECT id, name, email, password, is_deletable
		FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list users", err)
	}
	defer rows.Close()

	var users []*simpleblog.User
	for rows.Next() {
		var user simpleblog.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password, &user.IsDeletable); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *simpleblog.Post) error {
	query := `
		INSERT INTO posts (title, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		post.Title, post.Body, post.AuthorID).Scan(&post.ID)
	if err != nil {
		return r.handlePostgresError("create post", err)
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*simpleblog.Post, error) {
	query := `
		SELECT p.id, p.title, p.body, p.author_id,
		       u.id, u.name, u.email, u.password, u.is_deletable
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	var post simpleblog.Post
	var author simpleblog.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Body, &post.AuthorID,
		&author.ID, &author.Name, &author.Email, &author.Password, &author.IsDeletable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpleblog.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}

	post.Author = &author
	return &post, nil
}

// ListPostsWithAuthors loads every post and its author in a single query.
func (r *Repository) ListPostsWithAuthors(ctx context.Context) ([]*simpleblog.Post, error) {
	query := `
		SELECT p.id, p.title, p.body, p.author_id,
		       u.id, u.name, u.email, u.password, u.is_deletable
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list posts", err)
	}
	defer rows.Close()

	var posts []*simpleblog.Post
	for rows.Next() {
		var post simpleblog.Post
		var author simpleblog.User
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Body, &post.AuthorID,
			&author.ID, &author.Name, &author.Email, &author.Password, &author.IsDeletable); err != nil {
			return nil, err
		}
		post.Author = &author
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

func (r *Repository) UpdatePost(ctx context.Context, post *simpleblog.Post) error {
	query := `
		UPDATE posts SET title = $2, body = $3, author_id = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Body, post.AuthorID)
	if err != nil {
		return r.handlePostgresError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblog.ErrPostNotFound
	}

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return simpleblog.ErrPostNotFound
	}

	return nil
}
