package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
	"github.com/simpleblog/simple-blog/pkg/simpleblog/repo/memory"
)

func seedUsers(t *testing.T, repo *memory.Repository) (*simpleblog.User, *simpleblog.User) {
	t.Helper()
	ctx := context.Background()

	alice := &simpleblog.User{Name: "alice", Email: "alice@example.com", Password: "pw", IsDeletable: true}
	bob := &simpleblog.User{Name: "bob", Email: "bob@example.com", Password: "pw", IsDeletable: true}
	require.NoError(t, repo.CreateUser(ctx, alice))
	require.NoError(t, repo.CreateUser(ctx, bob))

	return alice, bob
}

func TestUserOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	alice, bob := seedUsers(t, repo)

	t.Run("ids are assigned in order", func(t *testing.T) {
		assert.Equal(t, int64(1), alice.ID)
		assert.Equal(t, int64(2), bob.ID)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Name)
	})

	t.Run("get by name", func(t *testing.T) {
		got, err := repo.GetUserByName(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetUser(ctx, 99)
		assert.ErrorIs(t, err, simpleblog.ErrUserNotFound)

		_, err = repo.GetUserByName(ctx, "nobody")
		assert.ErrorIs(t, err, simpleblog.ErrUserNotFound)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		users, err := repo.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Name)
		assert.Equal(t, "bob", users[1].Name)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, err := repo.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		got.Name = "mallory"

		again, err := repo.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", again.Name)
	})
}

func TestPostOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	alice, bob := seedUsers(t, repo)

	post := &simpleblog.Post{Title: "hello", Body: "world", AuthorID: alice.ID}
	require.NoError(t, repo.CreatePost(ctx, post))
	require.NotZero(t, post.ID)

	t.Run("get resolves the author", func(t *testing.T) {
		got, err := repo.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Title)
		require.NotNil(t, got.Author)
		assert.Equal(t, "alice", got.Author.Name)
	})

	t.Run("list resolves all authors", func(t *testing.T) {
		second := &simpleblog.Post{Title: "again", Body: "more", AuthorID: bob.ID}
		require.NoError(t, repo.CreatePost(ctx, second))

		posts, err := repo.ListPostsWithAuthors(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		for _, p := range posts {
			require.NotNil(t, p.Author)
			assert.Equal(t, p.AuthorID, p.Author.ID)
		}
	})

	t.Run("update rewrites fields", func(t *testing.T) {
		post.Title = "changed"
		post.AuthorID = bob.ID
		require.NoError(t, repo.UpdatePost(ctx, post))

		got, err := repo.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "changed", got.Title)
		assert.Equal(t, "bob", got.Author.Name)
	})

	t.Run("update missing post", func(t *testing.T) {
		missing := &simpleblog.Post{ID: 99, Title: "x"}
		assert.ErrorIs(t, repo.UpdatePost(ctx, missing), simpleblog.ErrPostNotFound)
	})

	t.Run("delete removes permanently", func(t *testing.T) {
		require.NoError(t, repo.DeletePost(ctx, post.ID))

		_, err := repo.GetPost(ctx, post.ID)
		assert.ErrorIs(t, err, simpleblog.ErrPostNotFound)

		assert.ErrorIs(t, repo.DeletePost(ctx, post.ID), simpleblog.ErrPostNotFound)
	})
}
