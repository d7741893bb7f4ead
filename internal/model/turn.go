// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// turn.go - the data structures for the conversation
// transcript and its cost ledger.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the author of a turn. The system preamble is a fixed
// directive sent with the first completion request, not a stored turn,
// so there is no system role here.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one exchange unit in the transcript. Turns are immutable once
// appended: the ledger never edits, reorders, or removes them.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Cost is the dollar cost of producing this turn. It is set only on
	// assistant turns whose completion call succeeded, never on user
	// turns, and never retroactively.
	Cost *float64 `json:"cost,omitempty"`
}

// NewUserTurn creates a user turn. User turns never carry a cost.
func NewUserTurn(content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantTurn creates an assistant turn with its completion cost.
func NewAssistantTurn(content string, cost float64) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Cost:      &cost,
	}
}

// HasCost reports whether a cost is attached to this turn.
func (t Turn) HasCost() bool {
	return t.Cost != nil
}

// CostValue returns the attached cost, or 0 when absent.
func (t Turn) CostValue() float64 {
	if t.Cost == nil {
		return 0
	}
	return *t.Cost
}
