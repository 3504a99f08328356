// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders the complete conversation record as indented
// JSON. The output uses the same shape as the storage layer, so an
// exported file can be inspected or re-imported without translation.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a conversation to JSON.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, ErrEmptyConversation
	}
	return json.MarshalIndent(conv, "", "  ")
}

// FileExtension returns the extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
