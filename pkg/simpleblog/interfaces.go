package simpleblog

import "context"

// Repository defines the interface for user and post persistence.
// Relationship loading is explicit: ListPostsWithAuthors resolves each
// post's author as part of the query, there are no lazy fetches.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByName(ctx context.Context, name string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	// Post operations
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id int64) (*Post, error)
	ListPostsWithAuthors(ctx context.Context) ([]*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id int64) error
}

// SchemaManager is implemented by repositories backed by a real database.
// Setup creates the tables, Teardown drops them.
type SchemaManager interface {
	Setup(ctx context.Context) error
	Teardown(ctx context.Context) error
}
