// Package client is the Go client for the desainin backend. Besides the
// raw operations it carries the two workspace workflows: the create flow
// and the optimistic title editor.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/desainin/desainin-backend/internal/projects/domain"
)

// APIError is the error string returned in the response envelope. The
// server sends human-readable messages, not codes, so the message is all
// a caller can branch on.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client talks to the backend over HTTP using a bearer session token.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is for callers that need a custom transport,
// primarily tests.
func NewWithHTTPClient(baseURL, token string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, token: token, hc: hc}
}

type envelope struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error"`
	ProjectID string          `json:"project_id"`
	Title     string          `json:"title"`
	Project   *domain.Project `json:"project"`
}

// CreateProject submits a prompt and returns the new project id.
func (c *Client) CreateProject(ctx context.Context, prompt string, typ domain.ProjectType) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/projects", map[string]string{
		"prompt": prompt,
		"type":   string(typ),
	})
	if err != nil {
		return "", err
	}
	return env.ProjectID, nil
}

// GetProject fetches the full project record.
func (c *Client) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/projects/"+projectID, nil)
	if err != nil {
		return nil, err
	}
	return env.Project, nil
}

// UpdateProjectTitle renames the project and returns the title as stored.
func (c *Client) UpdateProjectTitle(ctx context.Context, projectID, newTitle string) (string, error) {
	env, err := c.do(ctx, http.MethodPatch, "/api/v1/projects/"+projectID+"/title", map[string]string{
		"new_title": newTitle,
	})
	if err != nil {
		return "", err
	}
	return env.Title, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, &APIError{Message: msg}
	}
	return &env, nil
}
