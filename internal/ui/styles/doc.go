// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the emochat TUI.
//
// The package is organized into:
//
//   - colors.go: The adaptive color palette. Every color is a
//     lipgloss.AdaptiveColor with light and dark variants so the UI
//     reads well on any terminal background.
//   - theme.go: The Theme struct bundling every configured
//     lipgloss.Style the views use, plus responsive layout modes.
//   - animations.go: Frame sequences and timing for animated elements
//     such as the bot sprite and the typing cursor.
//
// Views never construct ad-hoc styles; they pull them from a Theme so
// the whole application restyles from one place.
package styles
