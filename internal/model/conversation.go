// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/util"
)

// DefaultTitle is the placeholder title for conversations that have not
// been named, either explicitly or by their first user message.
const DefaultTitle = "New chat"

// TitleMaxRunes is the maximum length of an auto-derived title.
const TitleMaxRunes = 40

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a titled, timestamped, ordered sequence of
// messages. Messages preserve insertion order and are never reordered.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt int64     `json:"createdAt"` // Milliseconds since epoch
	UpdatedAt int64     `json:"updatedAt"` // Advances on every mutation
	Messages  []Message `json:"messages"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation(title string) *Conversation {
	now := time.Now().UnixMilli()
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the conversation and touches UpdatedAt.
// If this is the first message, the role is user, and the title is
// still the default, the title is derived from the message text.
func (c *Conversation) Append(role Role, text string) Message {
	msg := NewMessage(role, text)
	c.Messages = append(c.Messages, msg)
	c.Touch()

	if role == RoleUser && len(c.Messages) == 1 && c.HasDefaultTitle() {
		if t := DeriveTitle(text); t != "" {
			c.Title = t
		}
	}
	return msg
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// DeriveTitle builds a conversation title from message text: whitespace
// collapsed, truncated to TitleMaxRunes characters, no ellipsis.
func DeriveTitle(text string) string {
	return util.TruncateRunesNoEllipsis(util.CollapseWhitespace(text), TitleMaxRunes)
}

// SetTitle sets the conversation title and touches UpdatedAt.
// The title is trimmed via whitespace collapse first; an empty result
// leaves the existing title untouched (the timestamp still advances,
// matching touch-on-activity semantics).
func (c *Conversation) SetTitle(title string) {
	if t := util.CollapseWhitespace(title); t != "" {
		c.Title = t
	}
	c.Touch()
}

// DisplayTitle returns the conversation title or the default placeholder.
func (c *Conversation) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

// HasDefaultTitle reports whether the title is empty or the placeholder.
func (c *Conversation) HasDefaultTitle() bool {
	return c.Title == "" || c.Title == DefaultTitle
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// Touch advances UpdatedAt to now.
func (c *Conversation) Touch() {
	c.UpdatedAt = time.Now().UnixMilli()
}

// UpdatedTime returns UpdatedAt as a time.Time.
func (c *Conversation) UpdatedTime() time.Time {
	return time.UnixMilli(c.UpdatedAt)
}

// CreatedTime returns CreatedAt as a time.Time.
func (c *Conversation) CreatedTime() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]Message, len(c.Messages)),
	}
	copy(clone.Messages, c.Messages)
	return clone
}

// Normalize repairs a conversation loaded from storage: missing IDs are
// regenerated and nil message slices replaced, so partially hand-edited
// or older shelf files stay usable.
func (c *Conversation) Normalize() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Messages == nil {
		c.Messages = make([]Message, 0)
	}
	now := time.Now().UnixMilli()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	if c.UpdatedAt == 0 {
		c.UpdatedAt = c.CreatedAt
	}
}
