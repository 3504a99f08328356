// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and
// messages.
//
// Conversations serialize to the same JSON shape the persistence layer
// stores on disk: millisecond epoch timestamps and lowercase field
// names (id, title, createdAt, updatedAt, messages). A saved shelf
// therefore round-trips through encoding/json without a separate
// storage representation.
package model
