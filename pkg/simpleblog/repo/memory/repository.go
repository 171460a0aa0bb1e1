package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
)

// Repository implements simpleblog.Repository using in-memory storage
type Repository struct {
	mu         sync.RWMutex
	users      map[int64]*simpleblog.User
	posts      map[int64]*simpleblog.Post
	nextUserID int64
	nextPostID int64
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		users: make(map[int64]*simpleblog.User),
		posts: make(map[int64]*simpleblog.Post),
	}
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *simpleblog.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextUserID++
	user.ID = r.nextUserID

	// Store a copy to avoid external modifications
	userCopy := *user
	r.users[user.ID] = &userCopy

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id int64) (*simpleblog.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, simpleblog.ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *Repository) GetUserByName(ctx context.Context, name string) (*simpleblog.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Name == name {
			userCopy := *user
			return &userCopy, nil
		}
	}

	return nil, simpleblog.ErrUserNotFound
}

func (r *Repository) ListUsers(ctx context.Context) ([]*simpleblog.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simpleblog.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		result = append(result, &userCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *simpleblog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextPostID++
	post.ID = r.nextPostID

	postCopy := *post
	postCopy.Author = nil // relationship is resolved on read
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*simpleblog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, simpleblog.ErrPostNotFound
	}

	postCopy := *post
	if author, ok := r.users[post.AuthorID]; ok {
		authorCopy := *author
		postCopy.Author = &authorCopy
	}
	return &postCopy, nil
}

func (r *Repository) ListPostsWithAuthors(ctx context.Context) ([]*simpleblog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simpleblog.Post, 0, len(r.posts))
	for _, post := range r.posts {
		postCopy := *post
		if author, ok := r.users[post.AuthorID]; ok {
			authorCopy := *author
			postCopy.Author = &authorCopy
		}
		result = append(result, &postCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *simpleblog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; !exists {
		return simpleblog.ErrPostNotFound
	}

	postCopy := *post
	postCopy.Author = nil
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return simpleblog.ErrPostNotFound
	}

	delete(r.posts, id)
	return nil
}
