// Package client provides an HTTP client for the golden-profile REST API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/directory"
	"github.com/evcraddock/golden-profile/internal/persona"
)

// Client is an HTTP client for the golden-profile API.
type Client struct {
	http *resty.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	return &Client{http: rc}
}

// apiError is the error body every API endpoint returns.
type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health reports whether the server answers /health.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]string
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return err
	}
	if out["status"] != "ok" {
		return fmt.Errorf("unexpected health status %q", out["status"])
	}
	return nil
}

// AddComment posts a comment for Golden.
func (c *Client) AddComment(ctx context.Context, name, message string) (*comment.Comment, error) {
	var comm comment.Comment
	body := comment.Input{Name: name, Message: message}
	if err := c.do(ctx, http.MethodPost, "/api/comments", body, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// ListComments returns the message feed, newest first.
func (c *Client) ListComments(ctx context.Context) ([]*comment.Comment, error) {
	comments := []*comment.Comment{}
	if err := c.do(ctx, http.MethodGet, "/api/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Ask sends a message to Golden and returns the reply.
func (c *Client) Ask(ctx context.Context, message string) (*persona.Reply, error) {
	var reply persona.Reply
	body := map[string]string{"message": message, "context": "cat"}
	if err := c.do(ctx, http.MethodPost, "/api/openai", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// RandomUser fetches a random visitor profile.
func (c *Client) RandomUser(ctx context.Context) (*directory.Profile, error) {
	var p directory.Profile
	if err := c.do(ctx, http.MethodGet, "/api/random-user", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// do executes a request and maps error responses to Go errors.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().
		SetContext(ctx).
		SetError(&apiError{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if resp.IsError() {
		if e, ok := resp.Error().(*apiError); ok && e.Error != "" {
			if e.Details != "" {
				return fmt.Errorf("%s: %s", e.Error, e.Details)
			}
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode()))
	}

	return nil
}
