package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Format selects the representation requested from the server.
type Format string

const (
	// FormatJSON asks for the structured representation.
	FormatJSON Format = "json"
	// FormatHTML asks for the rendered page.
	FormatHTML Format = "html"
	// FormatResponse sends no Accept header and passes the raw response through.
	FormatResponse Format = "response"
)

// ParseFormat validates a --format flag value.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatJSON, FormatHTML, FormatResponse:
		return Format(value), nil
	default:
		return "", fmt.Errorf("invalid format %q (use html, json or response)", value)
	}
}

// Client-observed failures. Every status class the server can emit maps to
// a distinct error.
var (
	// ErrNotFound indicates the server answered 404
	ErrNotFound = errors.New("not found")

	// ErrServerFault indicates the server answered 500
	ErrServerFault = errors.New("server fault")
)

// UnexpectedStatusError covers any other non-200 status.
type UnexpectedStatusError struct {
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Wire types, mirroring the server's string-coerced bodies.

// User is the structured form of a blog account
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	IsDeletable string `json:"is_deletable"`
}

// Post is the structured form of a blog entry
type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	AuthorID string `json:"author_id"`
}

// Message carries operation outcomes
type Message struct {
	Message string `json:"message"`
}

// Client talks to the blog server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new blog client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (c *Client) get(ctx context.Context, path string, format Format) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	setAccept(req, format)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	return resp, nil
}

func setAccept(req *http.Request, format Format) {
	switch format {
	case FormatJSON:
		req.Header.Set("Accept", "application/json")
	case FormatHTML:
		req.Header.Set("Accept", "text/html")
	case FormatResponse:
		// no preference, take whatever the server defaults to
	}
}

// checkStatus maps response statuses onto the client error taxonomy.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrServerFault
	default:
		return &UnexpectedStatusError{Status: resp.StatusCode}
	}
}

func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetUsers fetches all users in structured form.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	resp, err := c.get(ctx, "/user", FormatJSON)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := decodeJSON(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id in structured form.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/user/%d", id), FormatJSON)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPosts fetches all posts in structured form.
func (c *Client) GetPosts(ctx context.Context) ([]Post, error) {
	resp, err := c.get(ctx, "/post", FormatJSON)
	if err != nil {
		return nil, err
	}
	var posts []Post
	if err := decodeJSON(resp, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches one post by id in structured form.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/post/%d", id), FormatJSON)
	if err != nil {
		return nil, err
	}
	var post Post
	if err := decodeJSON(resp, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FetchRaw fetches a path in rendered or passthrough form. For
// FormatResponse the status line is included above the body.
func (c *Client) FetchRaw(ctx context.Context, path string, format Format) (string, error) {
	resp, err := c.get(ctx, path, format)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if format == FormatResponse {
		return resp.Status + "\n" + string(body), nil
	}
	return string(body), nil
}

// CreatePost submits a new post and returns the server's message.
func (c *Client) CreatePost(ctx context.Context, title, body, authorID string) (string, error) {
	form := url.Values{}
	form.Set("title", title)
	form.Set("body", body)
	form.Set("author_id", authorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/post",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setAccept(req, FormatJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}

	var message Message
	if err := decodeJSON(resp, &message); err != nil {
		return "", err
	}
	return message.Message, nil
}
