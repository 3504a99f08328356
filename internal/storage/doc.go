// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the conversation shelf: an in-memory ordered
// collection of conversations backed by a single JSON file on disk.
//
// The shelf owns creation, rename, delete, message append, active
// selection, and capacity eviction. Every mutation persists
// synchronously before the UI re-renders. Two invariants hold at all
// times:
//
//   - at most MaxConversations conversations persist; the
//     least-recently-updated are evicted first
//   - whenever the shelf is open there is a resolvable active
//     conversation; if the active id goes stale a fresh conversation is
//     created and made active
//
// Corrupt or missing shelf files degrade to an empty shelf (which then
// synthesizes one default conversation). A failed write is logged and
// otherwise ignored; the in-memory state stays authoritative until the
// next successful save.
package storage
