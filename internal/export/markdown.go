// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders a conversation as a Markdown transcript.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts a conversation to Markdown.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, ErrEmptyConversation
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(conv.DisplayTitle())))
	sb.WriteString(fmt.Sprintf("- **Created**: %s\n", conv.CreatedTime().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- **Updated**: %s\n", conv.UpdatedTime().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- **Messages**: %d\n\n", len(conv.Messages)))
	sb.WriteString("---\n\n")

	for i, msg := range conv.Messages {
		sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
			roleLabel(msg.Role),
			msg.Time().Format("2006-01-02 15:04:05")))
		sb.WriteString(escapeMarkdown(msg.Text))
		sb.WriteString("\n\n")
		if i < len(conv.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// roleLabel returns the transcript label for a role.
func roleLabel(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "[User]"
	case model.RoleAssistant:
		return "[Assistant]"
	default:
		return "[Unknown]"
	}
}

// escapeMarkdown neutralizes heading and quote markers at line starts
// so message text cannot restructure the document.
func escapeMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ">") {
			lines[i] = "\\" + line
		}
	}
	return strings.Join(lines, "\n")
}
