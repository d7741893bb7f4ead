// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat view for the JohnAssist TUI.
//
// The view owns the process's single Session ledger and drives the
// request-response loop: a submitted prompt becomes a user turn, one
// completion call goes out, and the result either appends a costed
// assistant turn or surfaces a classified error message. Exactly one
// call is in flight at a time; input is ignored until it resolves.
//
// Slash commands (/export, /cost, /help, /quit) run locally against the
// ledger and the exporter.
package chat
