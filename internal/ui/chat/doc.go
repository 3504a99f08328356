// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view for the emochat TUI.
//
// The view is split across files following the Bubble Tea
// model/update/view convention:
//
//   - model.go: the Model struct, construction, and focus management
//   - keys.go: keyboard bindings
//   - messages.go: the tea.Msg types the view exchanges with its
//     commands
//   - pipeline.go: the send pipeline. A submit moves the pipeline
//     idle -> sending -> (revealing | failed) -> idle. Exactly one
//     request is in flight at a time; re-submits while sending are
//     ignored, and rapid double submits are absorbed by a rate
//     limiter. There is no automatic retry.
//   - update.go: message routing and key handling
//   - view.go: rendering (bookshelf, transcript, meta strip, sprite,
//     composer, status bar)
//
// The conversation data lives in storage.Shelf; the view never holds
// its own copy. Every mutation goes through the shelf so persistence
// and eviction stay consistent.
package chat
