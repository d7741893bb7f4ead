// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation
// transcript and its cost ledger.
//
// # Key Types
//
//   - Role: turn author (user or assistant)
//   - Turn: one immutable exchange unit with optional cost
//   - Session: the append-only transcript plus running cost total
//
// # Invariants
//
// Turns are strictly ordered by creation time and never edited or
// removed. Session.RunningCost always equals the sum of the costs of
// the turns in the transcript. Only assistant turns produced by a
// successful completion call carry a cost.
package model
