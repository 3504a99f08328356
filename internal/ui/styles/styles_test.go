// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// A few representative styles should render without panicking.
	for name, render := range map[string]func() string{
		"UserBubble":      func() string { return theme.UserBubble.Render("hi") },
		"BotBubble":       func() string { return theme.BotBubble.Render("hi") },
		"ShelfItemActive": func() string { return theme.ShelfItemActive.Render("Trip Plan") },
		"LoginBox":        func() string { return theme.LoginBox.Render("login") },
	} {
		if render() == "" {
			t.Errorf("%s rendered empty output", name)
		}
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestFrameSequence(t *testing.T) {
	seq := FrameSequence{Frames: []string{"a", "b", "c"}}

	if seq.Len() != 3 {
		t.Errorf("Len() = %d, want 3", seq.Len())
	}
	if seq.FrameAt(0) != "a" || seq.FrameAt(1) != "b" || seq.FrameAt(2) != "c" {
		t.Error("FrameAt returned wrong frames")
	}
	// Wraps around.
	if seq.FrameAt(3) != "a" || seq.FrameAt(7) != "b" {
		t.Error("FrameAt should wrap around")
	}

	var empty FrameSequence
	if empty.FrameAt(0) != "" {
		t.Error("empty sequence should return empty frame")
	}
}

func TestRenderHelpers(t *testing.T) {
	if got := RenderSuccess("saved"); !strings.Contains(got, "[OK]") || !strings.Contains(got, "saved") {
		t.Errorf("RenderSuccess = %q", got)
	}
	if got := RenderError("failed"); !strings.Contains(got, "[X]") {
		t.Errorf("RenderError = %q", got)
	}
	if got := RenderWarning("careful"); !strings.Contains(got, "[!]") {
		t.Errorf("RenderWarning = %q", got)
	}
}
