// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/api"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/components"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// =============================================================================
// SUBMIT
// =============================================================================

// submit runs the front half of the send pipeline: validate, append
// the user's message optimistically, and fire exactly one request.
// Submits are dropped while a send is in flight and inside the
// throttle window.
func (m Model) submit() (Model, tea.Cmd) {
	if m.state == StateSending {
		return m, nil
	}

	text := strings.TrimSpace(m.composer.Value())
	if text == "" {
		return m, nil
	}

	if !m.limiter.Allow() {
		return m, nil
	}

	conv := m.shelf.Active()
	if conv == nil {
		return m, nil
	}

	// Abandon any reveal still running for the previous reply.
	m.revealGen++
	m.revealMsgID = ""

	m.shelf.AppendMessage(conv.ID, model.RoleUser, text)
	m.composer.SetValue("")
	m.errText = ""
	m.state = StateSending
	m.refreshViewport()

	spriteCmd := m.sprite.SetStage(components.StageThinking)
	return m, tea.Batch(spriteCmd, sendCmd(m.client, conv.ID, text))
}

// sendCmd performs the chat request off the UI loop.
func sendCmd(client *api.Client, convoID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		reply, err := client.Chat(ctx, text)
		if err != nil {
			return sendResultMsg{
				convoID:     convoID,
				err:         err,
				authExpired: errors.Is(err, api.ErrAuthFailed),
			}
		}
		return sendResultMsg{convoID: convoID, reply: reply}
	}
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// handleSendResult runs the back half of the pipeline.
func (m Model) handleSendResult(msg sendResultMsg) (Model, tea.Cmd) {
	if m.state != StateSending {
		return m, nil
	}

	if msg.authExpired {
		m.state = StateIdle
		spriteCmd := m.sprite.SetStage(components.StageIdle)
		return m, tea.Batch(spriteCmd, func() tea.Msg { return AuthExpiredMsg{} })
	}

	if msg.err != nil {
		m.state = StateFailed
		m.errText = msg.err.Error()
		m.settleGen++
		m.refreshViewport()
		spriteCmd := m.sprite.SetStage(components.StageError)
		return m, tea.Batch(spriteCmd, settleCmd(m.settleGen))
	}

	// The reply lands in the conversation that sent the request, even
	// if the user switched chats while it was in flight.
	appended := m.shelf.AppendMessage(msg.convoID, model.RoleAssistant, msg.reply)
	if appended == nil {
		m.state = StateIdle
		return m, m.sprite.SetStage(components.StageIdle)
	}

	if !m.revealEnabled || m.shelf.ActiveID() != msg.convoID {
		m.state = StateIdle
		m.refreshViewport()
		return m, m.sprite.SetStage(components.StageIdle)
	}

	m.state = StateRevealing
	m.revealMsgID = appended.ID
	m.revealRunes = 0
	m.revealTotal = util.RuneLen(appended.Text)
	m.revealGen++
	m.refreshViewport()

	spriteCmd := m.sprite.SetStage(components.StageWriting)
	return m, tea.Batch(spriteCmd, revealTick(m.revealGen))
}

// handleRevealTick advances the progressive reveal by one rune.
func (m Model) handleRevealTick(msg revealTickMsg) (Model, tea.Cmd) {
	if m.state != StateRevealing || msg.Gen != m.revealGen {
		return m, nil
	}

	m.revealRunes++
	if m.revealRunes >= m.revealTotal {
		m.state = StateIdle
		m.revealMsgID = ""
		m.refreshViewport()
		return m, m.sprite.SetStage(components.StageIdle)
	}

	m.refreshViewport()
	return m, revealTick(m.revealGen)
}

// handleSettle returns a failed pipeline to idle once the pause is up.
func (m Model) handleSettle(msg settleMsg) (Model, tea.Cmd) {
	if m.state != StateFailed || msg.Gen != m.settleGen {
		return m, nil
	}
	m.state = StateIdle
	return m, m.sprite.SetStage(components.StageIdle)
}

// =============================================================================
// COMMANDS
// =============================================================================

func revealTick(gen int) tea.Cmd {
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{Gen: gen}
	})
}

func settleCmd(gen int) tea.Cmd {
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleMsg{Gen: gen}
	})
}
