// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/ConfigMage/JohnAssist/internal/anthropic"

// =============================================================================
// BUBBLE TEA MESSAGES
// =============================================================================

// completionMsg carries a successful gateway result back into Update.
type completionMsg struct {
	completion *anthropic.Completion
}

// completionErrMsg carries a classified gateway failure back into Update.
// The ledger is left untouched for the interaction that produced it.
type completionErrMsg struct {
	classified anthropic.Classified
}

// statusMsg sets a transient status line (export results, cost queries).
type statusMsg struct {
	text string
}
