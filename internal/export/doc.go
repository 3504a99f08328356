// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to disk as Markdown
// or JSON. Markdown output is a human-readable transcript with a
// metadata header; JSON output is the complete conversation record and
// round-trips through the storage layer unchanged.
package export
