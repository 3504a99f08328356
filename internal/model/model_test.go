// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation("")

	if conv.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if conv.CreatedAt == 0 || conv.UpdatedAt == 0 {
		t.Error("Expected timestamps to be set")
	}
	if conv.Messages == nil || len(conv.Messages) != 0 {
		t.Error("Expected empty non-nil message slice")
	}
	if conv.DisplayTitle() != DefaultTitle {
		t.Errorf("DisplayTitle = %q, want %q", conv.DisplayTitle(), DefaultTitle)
	}
}

func TestConversation_Append(t *testing.T) {
	conv := NewConversation("")
	before := conv.UpdatedAt

	msg := conv.Append(RoleUser, "hello")

	if msg.ID == "" {
		t.Error("Expected message to get an ID")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if conv.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", conv.MessageCount())
	}
	if conv.UpdatedAt < before {
		t.Error("UpdatedAt went backwards")
	}
}

func TestConversation_TitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation("")
	conv.Append(RoleUser, "plan my weekend trip")

	if conv.Title != "plan my weekend trip" {
		t.Errorf("Title = %q, want the first user message", conv.Title)
	}
}

func TestConversation_TitleCollapsedAndTruncated(t *testing.T) {
	text := "  hello   world  this is long enough to truncate at forty chars exactly here "
	conv := NewConversation("")
	conv.Append(RoleUser, text)

	collapsed := "hello world this is long enough to truncate at forty chars exactly here"
	want := string([]rune(collapsed)[:TitleMaxRunes])
	if conv.Title != want {
		t.Errorf("Title = %q, want %q", conv.Title, want)
	}
	if len([]rune(conv.Title)) != TitleMaxRunes {
		t.Errorf("Title length = %d runes, want %d", len([]rune(conv.Title)), TitleMaxRunes)
	}
}

func TestConversation_TitleNotOverwritten(t *testing.T) {
	conv := NewConversation("")
	conv.SetTitle("Trip Plan")
	conv.Append(RoleUser, "something else entirely")

	if conv.Title != "Trip Plan" {
		t.Errorf("Title = %q, explicit title should survive first message", conv.Title)
	}
}

func TestConversation_TitleNotDerivedFromAssistant(t *testing.T) {
	conv := NewConversation("")
	conv.Append(RoleAssistant, "welcome aboard")

	if !conv.HasDefaultTitle() {
		t.Errorf("Title = %q, assistant messages must not set the title", conv.Title)
	}
}

func TestConversation_SetTitle(t *testing.T) {
	conv := NewConversation("")

	conv.SetTitle(" Trip Plan ")
	if conv.Title != "Trip Plan" {
		t.Errorf("Title = %q, want trimmed %q", conv.Title, "Trip Plan")
	}

	conv.SetTitle("")
	if conv.Title != "Trip Plan" {
		t.Errorf("Title = %q, empty rename must leave title untouched", conv.Title)
	}

	conv.SetTitle("   ")
	if conv.Title != "Trip Plan" {
		t.Errorf("Title = %q, whitespace rename must leave title untouched", conv.Title)
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation("original")
	conv.Append(RoleUser, "one")

	clone := conv.Clone()
	clone.Append(RoleAssistant, "two")
	clone.Title = "changed"

	if conv.MessageCount() != 1 {
		t.Errorf("Original message count = %d after clone mutation, want 1", conv.MessageCount())
	}
	if conv.Title != "original" {
		t.Errorf("Original title = %q after clone mutation", conv.Title)
	}
}

func TestConversation_Normalize(t *testing.T) {
	conv := &Conversation{}
	conv.Normalize()

	if conv.ID == "" {
		t.Error("Normalize should assign an ID")
	}
	if conv.Messages == nil {
		t.Error("Normalize should allocate the message slice")
	}
	if conv.CreatedAt == 0 || conv.UpdatedAt == 0 {
		t.Error("Normalize should backfill timestamps")
	}
}

// =============================================================================
// SERIALIZATION TESTS
// =============================================================================

func TestConversation_JSONShape(t *testing.T) {
	conv := NewConversation("")
	conv.Append(RoleUser, "hi")

	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, field := range []string{`"id"`, `"title"`, `"createdAt"`, `"updatedAt"`, `"messages"`, `"role"`, `"text"`, `"ts"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("serialized conversation missing field %s: %s", field, data)
		}
	}
}

func TestConversation_JSONRoundTrip(t *testing.T) {
	conv := NewConversation("")
	conv.Append(RoleUser, "hello")
	conv.Append(RoleAssistant, "hi there")

	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var loaded Conversation
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if loaded.ID != conv.ID || loaded.Title != conv.Title {
		t.Error("identity fields do not round-trip")
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("Messages count = %d, want 2", len(loaded.Messages))
	}
	if loaded.Messages[0].Text != "hello" || loaded.Messages[1].Text != "hi there" {
		t.Error("message order or text lost in round trip")
	}
	if loaded.Messages[0].Role != RoleUser || loaded.Messages[1].Role != RoleAssistant {
		t.Error("roles lost in round trip")
	}
}

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser display = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Bot" {
		t.Errorf("RoleAssistant display = %q", RoleAssistant.DisplayName())
	}
}

func TestRole_IsValid(t *testing.T) {
	if !RoleUser.IsValid() || !RoleAssistant.IsValid() {
		t.Error("known roles should be valid")
	}
	if Role("system").IsValid() {
		t.Error("unknown role should be invalid")
	}
}
