// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/api"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me":
			user, pass, ok := r.BasicAuth()
			if !ok || user != "alice" || pass != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
				return
			}
			json.NewEncoder(w).Encode(api.User{Username: "alice"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSubmit_EmptyFieldsRejectedLocally(t *testing.T) {
	m := New(styles.NewTheme(), api.NewClient("http://unused"), "basic")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty form should not start a login attempt")
	}
	if m.State() != StateEditing {
		t.Errorf("state = %v, want editing", m.State())
	}
	if !strings.Contains(m.View(), "Enter a username and password") {
		t.Error("view should prompt for credentials")
	}
}

func TestSubmit_ValidCredentials(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL)
	m := New(styles.NewTheme(), client, "basic")

	m = typeKeys(m, "alice")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeKeys(m, "secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State() != StateValidating {
		t.Fatalf("state = %v, want validating", m.State())
	}
	if cmd == nil {
		t.Fatal("submit should start the login attempt")
	}

	// Run the attempt synchronously.
	msg := cmd()
	m, cmd = m.Update(msg)
	if m.State() != StateSuccess {
		t.Fatalf("state = %v, want success", m.State())
	}
	if !client.IsAuthenticated() {
		t.Error("client should keep the accepted credentials")
	}
	if cmd == nil {
		t.Fatal("success should schedule the handoff pause")
	}
}

func TestSubmit_RejectedStartsCountdown(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL)
	m := New(styles.NewTheme(), client, "basic")

	m = typeKeys(m, "alice")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeKeys(m, "wrong")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	m, _ = m.Update(msg)

	if m.State() != StateLockedOut {
		t.Fatalf("state = %v, want locked out", m.State())
	}
	if m.countdown != RetrySeconds {
		t.Errorf("countdown = %d, want %d", m.countdown, RetrySeconds)
	}
	if client.IsAuthenticated() {
		t.Error("rejected credentials must not stick")
	}
	if !strings.Contains(m.View(), "Invalid username or password") {
		t.Error("view should show the rejection")
	}

	// Keys are ignored while locked out.
	before := m.username.Value()
	m = typeKeys(m, "x")
	if m.username.Value() != before {
		t.Error("locked-out form should ignore input")
	}

	// Count down to zero re-enables the form and clears the password.
	for i := 0; i < RetrySeconds; i++ {
		m, _ = m.Update(countdownMsg{Gen: m.gen})
	}
	if m.State() != StateEditing {
		t.Errorf("state = %v, want editing after countdown", m.State())
	}
	if m.password.Value() != "" {
		t.Error("password should be cleared for the retry")
	}
}

func TestCountdown_StaleTickIgnored(t *testing.T) {
	srv := newTestServer(t)
	m := New(styles.NewTheme(), api.NewClient(srv.URL), "basic")

	m = typeKeys(m, "alice")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeKeys(m, "wrong")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())

	stale := m.gen - 1
	before := m.countdown
	m, _ = m.Update(countdownMsg{Gen: stale})
	if m.countdown != before {
		t.Error("stale countdown tick must not advance the countdown")
	}
}

func TestDoneMsgCarriesUsername(t *testing.T) {
	srv := newTestServer(t)
	m := New(styles.NewTheme(), api.NewClient(srv.URL), "basic")

	m = typeKeys(m, "alice")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeKeys(m, "secret")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())

	m, cmd = m.Update(successMsg{})
	if cmd == nil {
		t.Fatal("success pause should emit the done message")
	}
	done, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg, got %T", cmd())
	}
	if done.Username != "alice" {
		t.Errorf("Username = %q, want alice", done.Username)
	}
}
