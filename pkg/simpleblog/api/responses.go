package api

import (
	"strconv"

	"github.com/simpleblog/simple-blog/pkg/simpleblog"
)

// Wire DTOs. Every persisted column goes on the wire coerced to a string,
// matching the legacy contract. That includes the user's password; see
// DESIGN.md before reusing this shape anywhere else.

// UserResponse is the structured response body for a user
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	IsDeletable string `json:"is_deletable"`
}

// PostResponse is the structured response body for a post
type PostResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	AuthorID string `json:"author_id"`
}

// MessageResponse carries operation outcomes and errors
type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(user *simpleblog.User) UserResponse {
	return UserResponse{
		ID:          strconv.FormatInt(user.ID, 10),
		Email:       user.Email,
		Name:        user.Name,
		Password:    user.Password,
		IsDeletable: strconv.FormatBool(user.IsDeletable),
	}
}

func toUserResponses(users []*simpleblog.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}
	return result
}

func toPostResponse(post *simpleblog.Post) PostResponse {
	return PostResponse{
		ID:       strconv.FormatInt(post.ID, 10),
		Title:    post.Title,
		Body:     post.Body,
		AuthorID: strconv.FormatInt(post.AuthorID, 10),
	}
}

func toPostResponses(posts []*simpleblog.Post) []PostResponse {
	result := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostResponse(post))
	}
	return result
}
