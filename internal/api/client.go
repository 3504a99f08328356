// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Configuration constants for the chat service client.
const (
	// DefaultBaseURL points at a locally running service, matching the
	// widget's localhost auto-detection.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB
)

// Error variables for common chat service errors.
var (
	// ErrAuthFailed indicates the server rejected the credentials
	// (HTTP 401 or 403). Callers must tear down the session.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotAuthenticated indicates no credentials are configured for
	// an endpoint that needs them.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError represents a non-2xx response from the chat service,
// carrying the server-provided detail message when one was present.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface. The server's detail message
// wins; without one the message falls back to "HTTP {status}".
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ChatRequest is the request body for POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body for POST /chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// User describes the authenticated account returned by GET /users/me.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// errorResponse is the error body shape used across all endpoints.
type errorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client communicates with the remote chat service. Credentials are
// optional; without them requests go out unauthenticated, which the
// open deployment variant accepts.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials

	// onAuthExpired runs when the server answers 401/403, after the
	// cached credentials have been discarded.
	onAuthExpired func()
}

// NewClient creates a client for the service at baseURL. An empty
// baseURL falls back to the localhost default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: trimTrailingSlash(baseURL),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// SetCredentials installs credentials for subsequent requests.
func (c *Client) SetCredentials(creds Credentials) {
	c.creds = creds
}

// ClearCredentials discards any cached credentials.
func (c *Client) ClearCredentials() {
	c.creds = nil
}

// IsAuthenticated reports whether usable credentials are installed.
func (c *Client) IsAuthenticated() bool {
	return c.creds != nil && c.creds.IsAuthenticated()
}

// OnAuthExpired registers a callback invoked after an authentication
// rejection has torn down the cached credentials.
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one user message to POST /chat and returns the reply
// text. Exactly one request goes out per call; there is no retry.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.attach(req)

	var chatResp ChatResponse
	if err := c.do(req, &chatResp); err != nil {
		return "", err
	}
	return chatResp.Reply, nil
}

// =============================================================================
// SESSION VALIDATION
// =============================================================================

// ValidateSession checks the installed credentials against
// GET /users/me and returns the account on success.
func (c *Client) ValidateSession(ctx context.Context) (*User, error) {
	if !c.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.attach(req)

	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

func (c *Client) attach(req *http.Request) {
	if c.creds != nil {
		c.creds.Attach(req)
	}
}

// do executes a request, decodes a 2xx body into out, and converts
// every failure into the package error taxonomy. 401/403 additionally
// discards cached credentials and fires the auth-expired callback.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("api: %s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	// SECURITY: Read with a size limit to prevent memory exhaustion.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	return nil
}

// handleErrorResponse converts a non-2xx response into an error,
// preserving the server's detail message when it parses.
func (c *Client) handleErrorResponse(status int, body []byte) error {
	detail := ""
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		detail = errResp.Detail
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		c.ClearCredentials()
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrAuthFailed, detail)
		}
		return ErrAuthFailed
	}

	return &APIError{Status: status, Detail: detail}
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
