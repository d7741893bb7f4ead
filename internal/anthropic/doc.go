// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic is the gateway to Anthropic's Messages API.
//
// # Key Types
//
//   - Client: issues completion and key-probe calls
//   - Completer: the interface callers depend on
//   - Completion, Usage: the successful result of one call
//   - Classified, Kind: a failure mapped to a fixed user-facing message
//
// # Behavior
//
// Every completion is exactly one outbound request: no retries, no
// partial results. An empty response body counts as a failure even when
// the HTTP call succeeded. Failures are terminal for the interaction
// that caused them; the caller surfaces Classify's message and leaves
// the ledger alone.
package anthropic
