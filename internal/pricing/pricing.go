// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pricing computes the dollar cost of completion calls from
// token usage counts.
package pricing

import "fmt"

// Per-1K-token rates for Claude 3.5 Sonnet, in US dollars.
const (
	// RateInputPer1K is the cost per 1000 input (prompt) tokens.
	RateInputPer1K = 0.015

	// RateOutputPer1K is the cost per 1000 output (completion) tokens.
	RateOutputPer1K = 0.075
)

// Cost returns the dollar cost of a single completion call.
//
// The result carries full float64 precision; rounding to four decimal
// places is a display concern (see FormatUSD), never applied here.
// Token counts must be non-negative; negative values are a caller bug
// and are clamped to zero rather than producing a negative charge.
func Cost(inputTokens, outputTokens int) float64 {
	if inputTokens < 0 {
		inputTokens = 0
	}
	if outputTokens < 0 {
		outputTokens = 0
	}

	inputCost := float64(inputTokens) / 1000 * RateInputPer1K
	outputCost := float64(outputTokens) / 1000 * RateOutputPer1K
	return inputCost + outputCost
}

// FormatUSD renders a dollar amount for display, fixed to four decimal
// places (e.g. "$0.0005").
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.4f", amount)
}
