// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "net/http"

// =============================================================================
// CREDENTIALS INTERFACE
// =============================================================================

// Credentials attaches authentication to outgoing requests. The two
// deployment variants (Basic auth, JWT bearer) implement it; the
// client never inspects the wire format.
type Credentials interface {
	// Attach adds the authentication header(s) to the request.
	Attach(req *http.Request)

	// IsAuthenticated reports whether usable credentials are present.
	IsAuthenticated() bool
}

// =============================================================================
// BASIC AUTH
// =============================================================================

// BasicCredentials holds a username/password pair for the Basic-auth
// deployment variant.
type BasicCredentials struct {
	Username string
	Password string
}

// NewBasicCredentials creates Basic-auth credentials.
func NewBasicCredentials(username, password string) *BasicCredentials {
	return &BasicCredentials{Username: username, Password: password}
}

// Attach sets the Authorization header using HTTP Basic auth.
func (b *BasicCredentials) Attach(req *http.Request) {
	req.SetBasicAuth(b.Username, b.Password)
}

// IsAuthenticated reports whether a username is present.
func (b *BasicCredentials) IsAuthenticated() bool {
	return b != nil && b.Username != ""
}

// =============================================================================
// BEARER TOKEN
// =============================================================================

// TokenCredentials holds a JWT access token for the bearer-token
// deployment variant.
type TokenCredentials struct {
	Token string
}

// NewTokenCredentials creates bearer-token credentials.
func NewTokenCredentials(token string) *TokenCredentials {
	return &TokenCredentials{Token: token}
}

// Attach sets the Authorization header with the bearer token.
func (t *TokenCredentials) Attach(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+t.Token)
}

// IsAuthenticated reports whether a token is present.
func (t *TokenCredentials) IsAuthenticated() bool {
	return t != nil && t.Token != ""
}
