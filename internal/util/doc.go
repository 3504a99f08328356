// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the chat front end:
// crash-safe file writes and rune/width-aware string manipulation.
//
// Persistence goes through AtomicWriteFile so a crash mid-save leaves
// either the old shelf file or the new complete one, never a torn write.
// The string helpers are rune-based throughout; conversation titles and
// bookshelf labels regularly contain multi-byte characters and must not
// be cut mid-character.
package util
