// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// AuthExpiredMsg tells the root model the server rejected the session
// mid-chat. The root swaps back to the login gate when it sees this.
type AuthExpiredMsg struct{}

// sendResultMsg carries the outcome of one send request.
type sendResultMsg struct {
	// convoID identifies the conversation the request belonged to, so
	// a reply still lands in the right transcript after a switch.
	convoID string
	reply   string
	err     error
	// authExpired marks a 401/403 rejection.
	authExpired bool
}

// revealTickMsg advances the progressive reply reveal by one step.
// Gen guards against ticks from an abandoned reveal.
type revealTickMsg struct {
	Gen int
}

// settleMsg returns the pipeline to idle after the post-send pause.
type settleMsg struct {
	Gen int
}
