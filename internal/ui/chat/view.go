// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/components"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// Layout constants.
const (
	shelfWidth    = 26
	chromeHeight  = 8 // header + meta + input + status
	minTranscript = 5
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	transcript := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderMeta(),
		m.viewport.View(),
	)

	main := transcript
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		right := m.renderShelf()
		if m.showSprite {
			right = lipgloss.JoinVertical(lipgloss.Left, m.sprite.View(), right)
		}
		main = lipgloss.JoinHorizontal(lipgloss.Top, transcript, " ", right)
	}
	b.WriteString(main)
	b.WriteString("\n")

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.theme.App.Render(b.String())
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("emochat")
	sub := m.theme.HeaderSubtitle.Render("signed in as " + m.username)
	return m.theme.Header.Width(maxInt(m.width-2, 20)).Render(title + "  " + sub)
}

// =============================================================================
// BOOKSHELF
// =============================================================================

// renderShelf renders the conversation list: a new-chat affordance on
// top, then every conversation most recent first, the active one
// marked. A live search narrows the list to matches.
func (m Model) renderShelf() string {
	var lines []string

	if m.focus == focusSearch {
		lines = append(lines, m.theme.ShelfSearchPrompt.Render("/ ")+m.search.View())
	} else {
		lines = append(lines, m.theme.ShelfNewChat.Render("+ New chat"))
	}

	convos := m.shelf.List()
	if m.focus == focusSearch && m.search.Value() != "" {
		convos = m.shelf.Search(m.search.Value())
	}

	if len(convos) == 0 {
		lines = append(lines, m.theme.ShelfEmptyNotice.Render("No matches"))
	}

	activeID := m.shelf.ActiveID()
	for _, conv := range convos {
		label := util.TruncateWidth(conv.DisplayTitle(), shelfWidth-6)
		if conv.ID == activeID {
			lines = append(lines, m.theme.ShelfItemActive.Render("> "+label))
		} else {
			lines = append(lines, m.theme.ShelfItem.Render("  "+label))
		}
	}

	return m.theme.ShelfList.Width(shelfWidth).Render(strings.Join(lines, "\n"))
}

// =============================================================================
// META STRIP
// =============================================================================

// renderMeta renders the strip above the transcript: the title (or the
// title editor while renaming) plus message count and last update.
func (m Model) renderMeta() string {
	conv := m.shelf.Active()
	if conv == nil {
		return ""
	}

	var left string
	if m.focus == focusTitle {
		left = m.titleEdit.View()
	} else {
		left = m.theme.MetaTitle.Render(conv.DisplayTitle())
	}

	noun := "messages"
	if conv.MessageCount() == 1 {
		noun = "message"
	}
	info := fmt.Sprintf("%d %s • updated %s",
		conv.MessageCount(), noun, conv.UpdatedTime().Format("Jan 2 15:04"))

	return m.theme.MetaBar.Width(m.transcriptWidth()).Render(
		left + "  " + m.theme.MetaInfo.Render(info))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport rebuilds the transcript content and pins the view to
// the bottom.
func (m *Model) refreshViewport() {
	conv := m.shelf.Active()
	if conv == nil {
		m.viewport.SetContent("")
		return
	}

	width := m.transcriptWidth()
	var parts []string
	for i := range conv.Messages {
		msg := &conv.Messages[i]
		bubble := components.NewMessageBubble(msg, m.theme)
		bubble.SetWidth(width)
		if m.state == StateRevealing && msg.ID == m.revealMsgID {
			bubble.RevealRunes = m.revealRunes
		}
		parts = append(parts, bubble.View())
	}

	if m.errText != "" {
		parts = append(parts, components.ErrorNotice(m.theme, width, m.errText))
	}

	if len(parts) == 0 {
		empty := m.theme.ShelfEmptyNotice.Render("Say hello to start the conversation.")
		parts = append(parts, empty)
	}

	m.viewport.Width = width
	m.viewport.Height = m.transcriptHeight()
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
	m.viewport.GotoBottom()
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	return m.theme.InputContainer.Width(maxInt(m.width-2, 20)).Render(prompt + m.composer.View())
}

func (m Model) renderStatusBar() string {
	var status string
	switch m.state {
	case StateSending:
		status = m.theme.StatusBusy.Render("sending")
	case StateRevealing:
		status = m.theme.StatusBusy.Render("writing")
	case StateFailed:
		status = m.theme.StatusError.Render("failed")
	default:
		status = m.theme.StatusIdle.Render("ready")
	}

	if m.notice != "" {
		note := m.theme.StatusIdle.Render(m.notice)
		return m.theme.StatusBar.Width(maxInt(m.width-2, 20)).Render(status + "  " + note)
	}

	shortcuts := []struct{ key, desc string }{
		{"Enter", "send"},
		{"C-n", "new"},
		{"C-r", "rename"},
		{"C-f", "search"},
		{"C-x", "delete"},
		{"C-e", "export"},
		{"C-c", "quit"},
	}
	var sb strings.Builder
	for i, s := range shortcuts {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(m.theme.ShortcutKey.Render(s.key))
		sb.WriteString(" ")
		sb.WriteString(m.theme.ShortcutDesc.Render(s.desc))
	}

	return m.theme.StatusBar.Width(maxInt(m.width-2, 20)).Render(status + "  " + sb.String())
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

func (m Model) transcriptWidth() int {
	w := m.width - 4
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		w -= shelfWidth + 1
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) transcriptHeight() int {
	h := m.height - chromeHeight
	if h < minTranscript {
		h = minTranscript
	}
	return h
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
