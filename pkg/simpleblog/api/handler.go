package api

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
)

// Handler serves the blog over HTTP. Every route is negotiated
// independently: a structured request gets JSON bodies and JSON errors, a
// rendered request gets HTML pages and flash-plus-redirect on state changes.
type Handler struct {
	service simpleblog.Service
	pages   map[string]*template.Template
}

// NewHandler creates a new blog handler
func NewHandler(service simpleblog.Service) (*Handler, error) {
	pages, err := newPageTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		service: service,
		pages:   pages,
	}, nil
}

// Routes returns the routes for the blog
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Home)

	r.Get("/post", h.ListPosts)
	r.Get("/post/create", h.ShowCreateForm)
	r.Post("/post", h.CreatePost)
	r.Get("/post/{id}", h.GetPost)
	r.Get("/post/{id}/edit", h.ShowEditForm)
	r.Post("/post/{id}", h.UpdatePost)
	r.Post("/post/{id}/destroy", h.DeletePost)

	r.Get("/user", h.ListUsers)
	r.Get("/user/{id}", h.GetUser)

	return r
}

// Home serves the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "home", pageData{Title: "Home"})
}

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if Negotiate(r) == Structured {
		render.JSON(w, r, toUserResponses(users))
		return
	}
	h.renderPage(w, r, "user_index", pageData{Title: "Users", Users: users})
}

// GetUser returns one user by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if errors.Is(err, simpleblog.ErrUserNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("User %d Does not Exist", id), "/user")
		return
	}
	if err != nil {
		slog.Error("Failed to get user", "user_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if Negotiate(r) == Structured {
		render.JSON(w, r, toUserResponse(user))
		return
	}
	h.renderPage(w, r, "user_show", pageData{Title: user.Name, User: user})
}

// ListPosts returns all posts with authors already resolved.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if Negotiate(r) == Structured {
		render.JSON(w, r, toPostResponses(posts))
		return
	}
	h.renderPage(w, r, "post_index", pageData{Title: "Posts", Posts: posts})
}

// GetPost returns one post by id.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if errors.Is(err, simpleblog.ErrPostNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("Post %d Does not Exist", id), "/post")
		return
	}
	if err != nil {
		slog.Error("Failed to get post", "post_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if Negotiate(r) == Structured {
		render.JSON(w, r, toPostResponse(post))
		return
	}
	h.renderPage(w, r, "post_show", pageData{Title: post.Title, Post: post})
}

// ShowCreateForm renders the post creation form. The form has no
// structured representation.
func (h *Handler) ShowCreateForm(w http.ResponseWriter, r *http.Request) {
	if Negotiate(r) == Structured {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, MessageResponse{Message: "Not Implemented"})
		return
	}

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.renderPage(w, r, "post_create", pageData{Title: "New Post", Users: users})
}

// ShowEditForm renders the post edit form. Existence is checked first, so
// a structured request for a missing post still gets the not-found body.
func (h *Handler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if errors.Is(err, simpleblog.ErrPostNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("Post %d Does not Exist", id), "/post")
		return
	}
	if err != nil {
		slog.Error("Failed to get post", "post_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if Negotiate(r) == Structured {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, MessageResponse{Message: "Not Implemented"})
		return
	}

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.renderPage(w, r, "post_edit", pageData{Title: "Edit Post", Post: post, Users: users})
}

// CreatePost persists a new post. Without a positive author id the post is
// attributed to the anonymous account.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	authorID := formAuthorID(r)
	post, err := h.service.CreatePost(r.Context(), simpleblog.CreatePostRequest{
		Title:    r.PostFormValue("title"),
		Body:     r.PostFormValue("body"),
		AuthorID: authorID,
	})
	if errors.Is(err, simpleblog.ErrUserNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("User %d Does not Exist", authorID), "/post/create")
		return
	}
	if err != nil {
		slog.Error("Failed to create post", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Post created", "post_id", post.ID, "author", post.Author.Name)
	h.respondMutation(w, r, "Post Created!", fmt.Sprintf("/post/%d", post.ID))
}

// UpdatePost rewrites an existing post. The author rule matches CreatePost
// except the fallback account is guest.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	authorID := formAuthorID(r)
	post, err := h.service.UpdatePost(r.Context(), simpleblog.UpdatePostRequest{
		PostID:   id,
		Title:    r.PostFormValue("title"),
		Body:     r.PostFormValue("body"),
		AuthorID: authorID,
	})
	if errors.Is(err, simpleblog.ErrPostNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("Post %d Does not Exist", id), "/post")
		return
	}
	if errors.Is(err, simpleblog.ErrUserNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("User %d Does not Exist", authorID), "/post")
		return
	}
	if err != nil {
		slog.Error("Failed to update post", "post_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Post updated", "post_id", post.ID, "author", post.Author.Name)
	h.respondMutation(w, r, "Post Updated!", fmt.Sprintf("/post/%d", post.ID))
}

// DeletePost removes a post permanently.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	err := h.service.DeletePost(r.Context(), id)
	if errors.Is(err, simpleblog.ErrPostNotFound) {
		h.respondNotFound(w, r, fmt.Sprintf("Post %d Does not Exist", id), "/post")
		return
	}
	if err != nil {
		slog.Error("Failed to delete post", "post_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Post deleted", "post_id", id)
	h.respondMutation(w, r, "Post Deleted!", "/post")
}

// pathID parses the {id} route parameter.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		slog.Error("Invalid ID", "id", idStr, "error", err)
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// respondNotFound signals a missing entity: a 404 message body for
// structured requests, a flash notice plus redirect otherwise.
func (h *Handler) respondNotFound(w http.ResponseWriter, r *http.Request, message, redirectTo string) {
	if Negotiate(r) == Structured {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, MessageResponse{Message: message})
		return
	}
	setFlash(w, "danger", message)
	http.Redirect(w, r, redirectTo, http.StatusFound)
}

// respondMutation signals a successful state change.
func (h *Handler) respondMutation(w http.ResponseWriter, r *http.Request, message, redirectTo string) {
	if Negotiate(r) == Structured {
		render.JSON(w, r, MessageResponse{Message: message})
		return
	}
	setFlash(w, "info", message)
	http.Redirect(w, r, redirectTo, http.StatusFound)
}

// formAuthorID reads the author_id form field. Anything that does not
// parse to an integer counts as "no author given".
func formAuthorID(r *http.Request) int64 {
	value := r.PostFormValue("author_id")
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
