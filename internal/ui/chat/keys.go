// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit     key.Binding
	NewChat    key.Binding
	DeleteChat key.Binding
	Rename     key.Binding
	Search     key.Binding
	Export     key.Binding
	PrevChat   key.Binding
	NextChat   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		DeleteChat: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "delete chat"),
		),
		Rename: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "rename"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "search"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export"),
		),
		PrevChat: key.NewBinding(
			key.WithKeys("ctrl+left", "ctrl+p"),
			key.WithHelp("C-left", "previous chat"),
		),
		NextChat: key.NewBinding(
			key.WithKeys("ctrl+right", "ctrl+o"),
			key.WithHelp("C-right", "next chat"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
