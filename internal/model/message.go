// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Bot"
	default:
		return string(r)
	}
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation. Text is
// immutable once created; transcript rendering relies on that.
type Message struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
	Ts   int64  `json:"ts"` // Milliseconds since epoch
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
		Ts:   time.Now().UnixMilli(),
	}
}

// Time returns the creation timestamp as a time.Time.
func (m Message) Time() time.Time {
	return time.UnixMilli(m.Ts)
}
