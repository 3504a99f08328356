// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the emochat
// TUI: message bubbles for the transcript and the animated bot sprite.
//
// Components are plain view helpers. They hold no application state
// beyond what they render; the chat model owns the data and feeds it in.
// The one exception is BotSprite, which runs its own frame timer via
// Bubble Tea tick messages and guards against stale timers with a
// generation counter.
package components
