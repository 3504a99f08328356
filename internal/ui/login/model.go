// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in gate shown before the chat view.
package login

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/api"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
)

// Timing constants for the login flow.
const (
	// RetrySeconds is how long the form stays locked after a rejected
	// login before the user may try again.
	RetrySeconds = 5

	// successBeat is the short pause after a successful login before
	// the chat view takes over, so the confirmation is readable.
	successBeat = 500 * time.Millisecond

	// validateTimeout bounds a single login attempt.
	validateTimeout = 15 * time.Second
)

// =============================================================================
// LOGIN STATE
// =============================================================================

// State represents the login form's current state.
type State int

const (
	StateEditing    State = iota // Accepting input
	StateValidating              // Credentials in flight
	StateLockedOut               // Rejected, counting down to retry
	StateSuccess                 // Accepted, about to hand off
)

// =============================================================================
// MESSAGES
// =============================================================================

// DoneMsg is emitted once login succeeds and the pause has elapsed.
// The root model switches to the chat view when it sees this.
type DoneMsg struct {
	Username string
}

// resultMsg carries the outcome of a login attempt.
type resultMsg struct {
	username string
	err      error
}

// countdownMsg ticks the lockout countdown. Gen ties the tick to the
// lockout that scheduled it so a stale timer cannot re-enable the form.
type countdownMsg struct {
	Gen int
}

// successMsg fires after the post-login pause.
type successMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the login gate.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	// authMode is "basic" or "jwt", per config.
	authMode string

	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password

	state     State
	errMsg    string
	countdown int
	gen       int

	width  int
	height int
}

// New creates a login model bound to the given client.
func New(theme *styles.Theme, client *api.Client, authMode string) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return Model{
		theme:    theme,
		client:   client,
		authMode: authMode,
		username: username,
		password: password,
		state:    StateEditing,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current form state.
func (m Model) State() State {
	return m.state
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// COMMANDS
// =============================================================================

// attemptLogin validates the entered credentials against the server.
// The Basic variant installs the pair and probes /users/me; the JWT
// variant exchanges the pair for a token at /auth/login.
func attemptLogin(client *api.Client, authMode, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
		defer cancel()

		if authMode == "jwt" {
			if err := client.Login(ctx, username, password); err != nil {
				return resultMsg{username: username, err: err}
			}
			return resultMsg{username: username}
		}

		client.SetCredentials(api.NewBasicCredentials(username, password))
		if _, err := client.ValidateSession(ctx); err != nil {
			client.ClearCredentials()
			return resultMsg{username: username, err: err}
		}
		return resultMsg{username: username}
	}
}

func countdownTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{Gen: gen}
	})
}

func successPause() tea.Cmd {
	return tea.Tick(successBeat, func(time.Time) tea.Msg {
		return successMsg{}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		if m.state != StateValidating {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateLockedOut
			m.countdown = RetrySeconds
			m.gen++
			if errors.Is(msg.err, api.ErrAuthFailed) {
				m.errMsg = "Invalid username or password"
			} else {
				m.errMsg = "Could not reach the server: " + msg.err.Error()
			}
			return m, countdownTick(m.gen)
		}
		m.state = StateSuccess
		m.errMsg = ""
		return m, successPause()

	case countdownMsg:
		if m.state != StateLockedOut || msg.Gen != m.gen {
			return m, nil
		}
		m.countdown--
		if m.countdown <= 0 {
			m.state = StateEditing
			m.password.SetValue("")
			return m, nil
		}
		return m, countdownTick(m.gen)

	case successMsg:
		if m.state != StateSuccess {
			return m, nil
		}
		username := m.username.Value()
		return m, func() tea.Msg { return DoneMsg{Username: username} }
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The form is inert while validating or locked out.
	if m.state == StateValidating || m.state == StateLockedOut || m.state == StateSuccess {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.password.Blur()
			return m, m.username.Focus()
		}
		m.username.Blur()
		return m, m.password.Focus()

	case "enter":
		username := m.username.Value()
		password := m.password.Value()
		if username == "" || password == "" {
			m.errMsg = "Enter a username and password"
			return m, nil
		}
		m.state = StateValidating
		m.errMsg = ""
		return m, attemptLogin(m.client, m.authMode, username, password)
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
