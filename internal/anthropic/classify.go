// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anthropic

import (
	"errors"
	"strings"
)

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// Kind is the closed set of user-facing failure categories.
type Kind string

const (
	KindRateLimited         Kind = "rate_limited"
	KindInvalidRequestModel Kind = "invalid_request_model"
	KindInvalidRequest      Kind = "invalid_request"
	KindAuthFailed          Kind = "auth_failed"
	KindEmptyResponse       Kind = "empty_response"
	KindUnknown             Kind = "unknown"
)

// Classified is a failure mapped to a category and a rendered message.
// The message is shown to the user verbatim, exactly once per failed
// interaction.
type Classified struct {
	Kind    Kind
	Message string
}

// Fixed user-facing messages per category.
const (
	msgRateLimited         = "Rate limit exceeded. Please wait a moment before trying again."
	msgInvalidRequestModel = "Please check your API access permissions for the configured model."
	msgInvalidRequest      = "Please check your input and try again."
	msgAuthFailed          = "Authentication failed. Please verify your API key."
	msgUnknownPrefix       = "An unexpected error occurred: "
)

// Classify maps any completion failure to a category and message. It is
// total and never fails: unmatched errors land in KindUnknown with the
// raw description attached.
//
// Matching is case-insensitive substring inspection of the error text,
// in precedence order: rate limiting, invalid request referencing the
// model, invalid request, authentication, then unknown. The first match
// wins. This is best-effort triage of an opaque failure channel, not
// protocol-level error-code inspection, and it is fragile to wording
// changes on the provider side; if the API ever exposes stable error
// codes end to end, only this file needs to change.
func Classify(err error) Classified {
	if errors.Is(err, ErrEmptyResponse) {
		return Classified{Kind: KindEmptyResponse, Message: err.Error()}
	}

	raw := err.Error()
	desc := strings.ToLower(raw)

	switch {
	case strings.Contains(desc, "rate_limit") || strings.Contains(desc, "rate limit"):
		return Classified{Kind: KindRateLimited, Message: msgRateLimited}

	case strings.Contains(desc, "invalid_request") && strings.Contains(desc, "model"):
		return Classified{Kind: KindInvalidRequestModel, Message: msgInvalidRequestModel}

	case strings.Contains(desc, "invalid_request"):
		return Classified{Kind: KindInvalidRequest, Message: msgInvalidRequest}

	case strings.Contains(desc, "authentication"):
		return Classified{Kind: KindAuthFailed, Message: msgAuthFailed}

	default:
		return Classified{Kind: KindUnknown, Message: msgUnknownPrefix + raw}
	}
}
