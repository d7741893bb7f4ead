// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anthropic

import "fmt"

// =============================================================================
// WIRE TYPES (Anthropic Messages API)
// =============================================================================

// ChatMessage is a single role/content pair in a messages request.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// messagesRequest is the request body for POST /v1/messages.
type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []ChatMessage `json:"messages"`
}

// messagesResponse is the success body from POST /v1/messages.
type messagesResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      Usage  `json:"usage"`
}

// text returns the concatenated text blocks of the response content.
func (r *messagesResponse) text() string {
	var out string
	for _, block := range r.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out
}

// apiErrorResponse is the error body the API returns on non-2xx status.
type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// Usage holds the token counts the API reported for one call. It is a
// transient value: the caller converts it to a cost immediately and
// discards it.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Completion is the successful result of one completion call.
type Completion struct {
	Text  string
	Usage Usage
}

// APIError is a failure reported by the Anthropic API. Its text carries
// the provider's error type and message, which Classify matches against.
type APIError struct {
	Type    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("anthropic error [%s] (HTTP %d): %s", e.Type, e.Status, e.Message)
	}
	return fmt.Sprintf("anthropic error (HTTP %d): %s", e.Status, e.Message)
}
