// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body for POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Login exchanges a username/password for a bearer token on the JWT
// deployment variant and installs the token as the client's
// credentials. A rejected login returns ErrAuthFailed without firing
// the auth-expired callback, since no session existed to expire.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: %s", ErrAuthFailed, errResp.Detail)
		}
		return ErrAuthFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		detail := ""
		if json.Unmarshal(data, &errResp) == nil {
			detail = errResp.Detail
		}
		return &APIError{Status: resp.StatusCode, Detail: detail}
	}

	var loginResp LoginResponse
	if err := json.Unmarshal(data, &loginResp); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	if loginResp.AccessToken == "" {
		return fmt.Errorf("login response missing access token")
	}

	c.SetCredentials(NewTokenCredentials(loginResp.AccessToken))
	return nil
}
