// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript message as a styled bubble.
// User messages sit right-aligned in blue, bot messages left-aligned
// in purple.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool

	// RevealRunes limits how much of the text is shown, for the
	// progressive reply reveal. Negative means show everything.
	RevealRunes int

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		RevealRunes:   -1,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message == nil {
		return ""
	}
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderBotBubble()
	default:
		return b.renderBotBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render("you")
	if b.ShowTimestamp {
		header += " " + b.renderTimestamp()
	}

	// Right-align the bubble with left margin.
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(
		lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// BOT BUBBLE - Purple tones, left-aligned
// ==========================================================================

func (b *MessageBubble) renderBotBubble() string {
	content := b.Message.Text
	revealing := false
	if b.RevealRunes >= 0 && b.RevealRunes < util.RuneLen(content) {
		content = util.TruncateRunesNoEllipsis(content, b.RevealRunes)
		revealing = true
	}
	if revealing {
		content += b.renderRevealCursor()
	}
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.BotBubble.Width(contentWidth).Render(wrapped)

	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	header := roleStyle.Render("bot")
	if b.ShowTimestamp && !revealing {
		header += " " + b.renderTimestamp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// renderRevealCursor renders the cursor shown while a reply is being
// revealed.
func (b *MessageBubble) renderRevealCursor() string {
	cursorStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Blink(true)
	return cursorStyle.Render("_")
}

// renderTimestamp renders the message time, dimmed.
func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.Time()
	var label string
	if time.Since(ts) < 24*time.Hour {
		label = ts.Format("15:04")
	} else {
		label = ts.Format("Jan 2 15:04")
	}
	return lipgloss.NewStyle().Foreground(styles.TextMuted).Render(label)
}

// =============================================================================
// ERROR NOTICE
// =============================================================================

// ErrorNotice renders a failed-send notice inline in the transcript.
func ErrorNotice(theme *styles.Theme, width int, detail string) string {
	if detail == "" {
		detail = "Send failed"
	}
	maxContentWidth := width - 8
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(styles.StatusIndicators.Error+" "+detail, maxContentWidth)
	return theme.ErrorBubble.Render(wrapped)
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if util.RuneLen(currentLine)+1+util.RuneLen(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the width of the longest line in runes.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.RuneLen(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
