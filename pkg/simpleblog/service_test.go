package simpleblog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
	"github.com/simpleblog/simple-blog/pkg/simpleblog/repo/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []simpleblog.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []simpleblog.Option{},
			expectError: true,
		},
		{
			name: "with repository should succeed",
			options: []simpleblog.Option{
				simpleblog.WithRepository(memory.New()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := simpleblog.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T) simpleblog.Service {
	t.Helper()

	svc, err := simpleblog.New(simpleblog.WithRepository(memory.New()))
	require.NoError(t, err)
	require.NoError(t, svc.Seed(context.Background()))

	return svc
}

func TestSeed(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Name)
		assert.False(t, user.IsDeletable)
	}
	assert.ElementsMatch(t, []string{"anonymous", "guest", "admin"}, names)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Admin Post", posts[0].Title)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "admin", posts[0].Author.Name)
}

func TestCreatePost(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("round trip preserves title and body", func(t *testing.T) {
		created, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
			Title: "T",
			Body:  "B",
		})
		require.NoError(t, err)

		got, err := svc.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "B", got.Body)
	})

	t.Run("no author falls back to anonymous", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
			Title: "untitled",
			Body:  "hello",
		})
		require.NoError(t, err)
		require.NotNil(t, post.Author)
		assert.Equal(t, "anonymous", post.Author.Name)
	})

	t.Run("zero author falls back to anonymous", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
			Title:    "untitled",
			Body:     "hello",
			AuthorID: 0,
		})
		require.NoError(t, err)
		require.NotNil(t, post.Author)
		assert.Equal(t, "anonymous", post.Author.Name)
	})

	t.Run("positive author id attaches that user", func(t *testing.T) {
		admin := userByName(t, svc, "admin")

		post, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
			Title:    "by admin",
			Body:     "hello",
			AuthorID: admin.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, admin.ID, post.AuthorID)

		got, err := svc.GetPost(ctx, post.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Author)
		assert.Equal(t, admin.ID, got.Author.ID)
	})

	t.Run("unknown author id is an error", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
			Title:    "orphan",
			Body:     "hello",
			AuthorID: 999,
		})
		assert.ErrorIs(t, err, simpleblog.ErrUserNotFound)
	})
}

func TestUpdatePost(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
		Title: "before",
		Body:  "old body",
	})
	require.NoError(t, err)

	t.Run("no author falls back to guest", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, simpleblog.UpdatePostRequest{
			PostID: created.ID,
			Title:  "after",
			Body:   "new body",
		})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		require.NotNil(t, updated.Author)
		assert.Equal(t, "guest", updated.Author.Name)

		got, err := svc.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, "new body", got.Body)
		assert.Equal(t, "guest", got.Author.Name)
	})

	t.Run("missing post is an error", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, simpleblog.UpdatePostRequest{
			PostID: 999,
			Title:  "after",
			Body:   "new body",
		})
		assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)
	})

	t.Run("unknown author id is an error", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, simpleblog.UpdatePostRequest{
			PostID:   created.ID,
			Title:    "after",
			Body:     "new body",
			AuthorID: 999,
		})
		assert.ErrorIs(t, err, simpleblog.ErrUserNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
		Title: "doomed",
		Body:  "gone soon",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, created.ID))

	_, err = svc.GetPost(ctx, created.ID)
	assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)

	err = svc.DeletePost(ctx, created.ID)
	assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)
}

// countingRepository records how often each lookup runs, to pin down the
// eager-loading behavior of ListPosts.
type countingRepository struct {
	*memory.Repository
	getUserCalls  int
	listPostCalls int
}

func (r *countingRepository) GetUser(ctx context.Context, id int64) (*simpleblog.User, error) {
	r.getUserCalls++
	return r.Repository.GetUser(ctx, id)
}

func (r *countingRepository) ListPostsWithAuthors(ctx context.Context) ([]*simpleblog.Post, error) {
	r.listPostCalls++
	return r.Repository.ListPostsWithAuthors(ctx)
}

func TestListPostsEagerLoadsAuthors(t *testing.T) {
	repo := &countingRepository{Repository: memory.New()}
	svc, err := simpleblog.New(simpleblog.WithRepository(repo))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	for i := 0; i < 5; i++ {
		_, err := svc.CreatePost(ctx, simpleblog.CreatePostRequest{
			Title: "post",
			Body:  "body",
		})
		require.NoError(t, err)
	}

	repo.getUserCalls = 0
	repo.listPostCalls = 0

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 6)

	// One repository round-trip, no per-post author lookups.
	assert.Equal(t, 1, repo.listPostCalls)
	assert.Equal(t, 0, repo.getUserCalls)
	for _, post := range posts {
		require.NotNil(t, post.Author)
		assert.Equal(t, post.AuthorID, post.Author.ID)
	}
}

func userByName(t *testing.T, svc simpleblog.Service, name string) *simpleblog.User {
	t.Helper()
	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	for _, user := range users {
		if user.Name == name {
			return user
		}
	}
	t.Fatalf("user %s not seeded", name)
	return nil
}
