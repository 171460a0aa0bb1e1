package simpleblog

// Request DTOs

// CreatePostRequest contains parameters for creating a new post.
// An AuthorID of zero or less means "no author given"; the service attaches
// the anonymous account instead.
type CreatePostRequest struct {
	Title    string
	Body     string
	AuthorID int64
}

// UpdatePostRequest contains parameters for updating an existing post.
// The same author rule applies as on create, except the fallback account
// is guest.
type UpdatePostRequest struct {
	PostID   int64
	Title    string
	Body     string
	AuthorID int64
}
