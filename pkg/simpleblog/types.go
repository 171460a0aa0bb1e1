package simpleblog

// Well-known accounts created at setup time. The service substitutes them
// for posts written without an author.
const (
	AnonymousUserName = "anonymous"
	GuestUserName     = "guest"
	AdminUserName     = "admin"
)

// User is a blog account. Password is stored as-is; this mirrors the legacy
// schema and is not a pattern to copy.
type User struct {
	ID          int64
	Name        string
	Email       string
	Password    string
	IsDeletable bool
}

// Post is a blog entry. Author is populated whenever the post was loaded
// through an eager query or written through the service; AuthorID is the
// persisted foreign key.
type Post struct {
	ID       int64
	Title    string
	Body     string
	AuthorID int64
	Author   *User
}
