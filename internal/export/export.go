// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// ErrEmptyConversation is returned when a conversation has no messages
// to export.
var ErrEmptyConversation = errors.New("conversation has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a conversation into a target format.
type Exporter interface {
	// Export converts a conversation to the target format.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the extension for the format (e.g. ".md").
	FileExtension() string
}

// =============================================================================
// FILE EXPORT
// =============================================================================

// ToFile renders a conversation with the given exporter and writes it
// into dir. The filename is derived from the conversation title and the
// current time. Returns the written path.
func ToFile(conv *model.Conversation, exporter Exporter, dir string) (string, error) {
	if conv == nil {
		return "", errors.New("conversation is nil")
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	name := fmt.Sprintf("%s_%s%s",
		sanitizeFilename(conv.DisplayTitle()),
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)

	path := filepath.Join(dir, name)
	if err := util.AtomicWriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Markdown renders conv as Markdown and writes it into dir.
func Markdown(conv *model.Conversation, dir string) (string, error) {
	return ToFile(conv, NewMarkdownExporter(), dir)
}

// JSON renders conv as JSON and writes it into dir.
func JSON(conv *model.Conversation, dir string) (string, error) {
	return ToFile(conv, NewJSONExporter(), dir)
}

// =============================================================================
// HELPERS
// =============================================================================

// sanitizeFilename replaces characters that are unsafe in filenames on
// common platforms and caps the length.
func sanitizeFilename(s string) string {
	const maxRunes = 50
	s = util.TruncateRunesNoEllipsis(s, maxRunes)

	var out []rune
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out = append(out, '_')
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			out = append(out, '-')
		case r < 32 || r == 127:
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "conversation"
	}
	return string(out)
}
