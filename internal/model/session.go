// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// SESSION LEDGER
// =============================================================================

// Session is the ledger for one conversation: the ordered transcript plus
// the running cost total. There is exactly one Session per process, created
// empty at startup and discarded at exit; nothing is persisted.
//
// The ledger is append-only. Insertion order is conversation order and is
// replayed verbatim to the completion service, so no operation exists to
// edit, remove, or reorder turns.
//
// Access is single-writer, single-reader by architecture (one interactive
// loop per process), so no lock is held here. A future multi-session
// adaptation must give each session its own Session instance instead of
// sharing one.
type Session struct {
	CreatedAt time.Time

	turns     []Turn
	totalCost float64
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		CreatedAt: time.Now(),
		turns:     make([]Turn, 0),
	}
}

// AppendUser appends a user turn. User turns carry no cost and the
// running total is unchanged. Always succeeds.
func (s *Session) AppendUser(content string) Turn {
	turn := NewUserTurn(content)
	s.turns = append(s.turns, turn)
	return turn
}

// AppendAssistant appends an assistant turn with its completion cost and
// adds the cost to the running total in the same call, so no caller ever
// observes the turn without the updated total or vice versa.
func (s *Session) AppendAssistant(content string, cost float64) Turn {
	turn := NewAssistantTurn(content, cost)
	s.turns = append(s.turns, turn)
	s.totalCost += cost
	return turn
}

// RunningCost returns the session's total cost so far. It equals the sum
// of the costs of every turn currently in the transcript and never
// decreases.
func (s *Session) RunningCost() float64 {
	return s.totalCost
}

// Transcript returns the turns in conversation order. The returned slice
// is a copy; mutating it does not affect the ledger.
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns in the transcript.
func (s *Session) Len() int {
	return len(s.turns)
}

// IsEmpty reports whether no turns have been appended yet.
func (s *Session) IsEmpty() bool {
	return len(s.turns) == 0
}

// LastTurn returns the most recent turn, or a zero Turn and false when
// the session is empty.
func (s *Session) LastTurn() (Turn, bool) {
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}
