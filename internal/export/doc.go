// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes a session transcript to alternate formats.
//
// # Supported Formats
//
//   - Markdown: structured markup with per-turn headings and cost lines
//   - JSON: machine-readable record that round-trips through ParseJSON
//   - Text: plain narrative, also the fallback for unrecognized names
//
// Every format renders the full transcript in conversation order plus
// the final running cost, and an empty session produces a valid
// empty-transcript document rather than an error. Exporting never
// mutates the session.
package export
