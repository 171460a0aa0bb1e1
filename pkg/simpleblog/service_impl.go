package simpleblog

import (
	"context"
	"fmt"
)

// service implements the Service interface
type service struct {
	repository Repository
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// User operations

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repository.ListUsers(ctx)
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repository.GetUser(ctx, id)
}

// Post operations

func (s *service) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.repository.ListPostsWithAuthors(ctx)
}

func (s *service) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repository.GetPost(ctx, id)
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	author, err := s.resolveAuthor(ctx, req.AuthorID, AnonymousUserName)
	if err != nil {
		return nil, err
	}

	post := &Post{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: author.ID,
		Author:   author,
	}

	if err := s.repository.CreatePost(ctx, post); err != nil {
		return nil, &PostError{
			PostID: post.ID,
			Op:     "create",
			Err:    err,
		}
	}

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	post, err := s.repository.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, req.AuthorID, GuestUserName)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Body = req.Body
	post.AuthorID = author.ID
	post.Author = author

	if err := s.repository.UpdatePost(ctx, post); err != nil {
		return nil, &PostError{
			PostID: post.ID,
			Op:     "update",
			Err:    err,
		}
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id int64) error {
	if _, err := s.repository.GetPost(ctx, id); err != nil {
		return err
	}

	if err := s.repository.DeletePost(ctx, id); err != nil {
		return &PostError{
			PostID: id,
			Op:     "delete",
			Err:    err,
		}
	}

	return nil
}

// resolveAuthor maps a caller-supplied author id to a User. A positive id
// must name an existing user; anything else falls back to the well-known
// account given by fallbackName.
func (s *service) resolveAuthor(ctx context.Context, authorID int64, fallbackName string) (*User, error) {
	if authorID > 0 {
		author, err := s.repository.GetUser(ctx, authorID)
		if err != nil {
			return nil, &UserError{
				UserID: authorID,
				Op:     "resolve_author",
				Err:    err,
			}
		}
		return author, nil
	}
	return s.repository.GetUserByName(ctx, fallbackName)
}

// Seed operations

func (s *service) Seed(ctx context.Context) error {
	accounts := []*User{
		{Name: AnonymousUserName, Email: "anonymous@anonymous.com", Password: "nothashedohno!", IsDeletable: false},
		{Name: GuestUserName, Email: "guest@guest.com", Password: "nothashedohno!", IsDeletable: false},
		{Name: AdminUserName, Email: "admin@admin.com", Password: "nothashedohno!", IsDeletable: false},
	}

	var admin *User
	for _, user := range accounts {
		if err := s.repository.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Name, err)
		}
		if user.Name == AdminUserName {
			admin = user
		}
	}

	post := &Post{
		Title:    "Admin Post",
		Body:     "Only Admins Are Allowed to Post!",
		AuthorID: admin.ID,
		Author:   admin,
	}
	if err := s.repository.CreatePost(ctx, post); err != nil {
		return fmt.Errorf("seed post: %w", err)
	}

	return nil
}
