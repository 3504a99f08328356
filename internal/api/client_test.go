// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_Success(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)

		json.NewEncoder(w).Encode(ChatResponse{Reply: "Hi there"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reply, err := client.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one request per submit")
}

func TestChat_ServerErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "overloaded"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "overloaded", err.Error())
}

func TestChat_ErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, "HTTP 502", err.Error())
}

func TestChat_AuthExpiredClearsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetCredentials(NewTokenCredentials("stale-token"))
	require.True(t, client.IsAuthenticated())

	var expired bool
	client.OnAuthExpired(func() { expired = true })

	_, err := client.Chat(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthFailed))
	assert.True(t, expired, "auth-expired callback should fire")
	assert.False(t, client.IsAuthenticated(), "credentials discarded after 401")
}

func TestValidateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(User{Username: "alice"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	// No credentials installed yet.
	_, err := client.ValidateSession(context.Background())
	assert.True(t, errors.Is(err, ErrNotAuthenticated))

	client.SetCredentials(NewBasicCredentials("alice", "wrong"))
	_, err = client.ValidateSession(context.Background())
	assert.True(t, errors.Is(err, ErrAuthFailed))

	client.SetCredentials(NewBasicCredentials("alice", "secret"))
	user, err := client.ValidateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/history/alice", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode([]Exchange{
			{Message: "second", Response: "reply two", Timestamp: "2025-08-02T10:00:00"},
			{Message: "first", Response: "reply one", Timestamp: "2025-08-01T10:00:00"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	exchanges, err := client.History(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, exchanges, 2)
	assert.Equal(t, "second", exchanges[0].Message)
}

func TestHistoryConversation(t *testing.T) {
	exchanges := []Exchange{
		{Message: "second", Response: "reply two", Timestamp: "2025-08-02T10:00:00"},
		{Message: "first", Response: "reply one", Timestamp: "2025-08-01T10:00:00"},
	}

	conv := HistoryConversation("alice", exchanges)
	require.NotNil(t, conv)
	assert.Equal(t, "server-history-alice", conv.ID)
	assert.Equal(t, "History: alice", conv.Title)

	// Oldest first, user before assistant within an exchange.
	require.Len(t, conv.Messages, 4)
	assert.Equal(t, "first", conv.Messages[0].Text)
	assert.Equal(t, "reply one", conv.Messages[1].Text)
	assert.Equal(t, "second", conv.Messages[2].Text)
	assert.Equal(t, "reply two", conv.Messages[3].Text)
	assert.True(t, conv.Messages[0].Ts <= conv.Messages[3].Ts)

	assert.Nil(t, HistoryConversation("alice", nil))
}

func TestCredentials_Attach(t *testing.T) {
	basic := NewBasicCredentials("bob", "pw")
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	basic.Attach(req)
	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "bob", user)
	assert.Equal(t, "pw", pass)

	token := NewTokenCredentials("abc123")
	req2, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	token.Attach(req2)
	assert.Equal(t, "Bearer abc123", req2.Header.Get("Authorization"))

	assert.False(t, NewTokenCredentials("").IsAuthenticated())
	assert.False(t, NewBasicCredentials("", "").IsAuthenticated())
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username != "alice" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(LoginResponse{AccessToken: "tok123", TokenType: "bearer"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	var expired bool
	client.OnAuthExpired(func() { expired = true })

	err := client.Login(context.Background(), "alice", "wrong")
	assert.True(t, errors.Is(err, ErrAuthFailed))
	assert.False(t, expired, "failed login is not an expired session")
	assert.False(t, client.IsAuthenticated())

	require.NoError(t, client.Login(context.Background(), "alice", "secret"))
	assert.True(t, client.IsAuthenticated())

	// The issued token rides subsequent requests.
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	client.attach(req)
	assert.Equal(t, "Bearer tok123", req.Header.Get("Authorization"))
}
