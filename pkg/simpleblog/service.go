package simpleblog

import "context"

// Service defines the main interface for the simple-blog library
type Service interface {
	// User operations
	ListUsers(ctx context.Context) ([]*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)

	// Post operations
	ListPosts(ctx context.Context) ([]*Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id int64) error

	// Seed creates the well-known accounts and the initial post. It is
	// invoked once at setup time; there is no create-user route.
	Seed(ctx context.Context) error
}
