// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// client.go - HTTP client for the Anthropic Messages API.
//
// One completion call per interaction, no retries. Responses are
// validated here: a 200 with no text is still a failure.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ConfigMage/JohnAssist/internal/model"
)

// Configuration constants for the Anthropic API.
const (
	// DefaultBaseURL is the base URL for the Anthropic API.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is the model every completion call uses.
	DefaultModel = "claude-3-5-sonnet-20241022"

	// apiVersion is the required anthropic-version header value.
	apiVersion = "2023-06-01"

	// DefaultTimeout bounds a single HTTP request. The session core has
	// no timeout of its own; this belongs to the transport.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize caps the response body read (10MB).
	MaxResponseSize = 10 * 1024 * 1024
)

// SystemPreamble is the fixed directive sent with the very first
// completion call of a session. It is never stored in the transcript.
const SystemPreamble = `You are an educational assistant focused on helping users build chatbots.
You provide clear, detailed explanations and adapt your teaching style to the user's experience level.
Break down complex concepts into manageable parts and provide practical examples when helpful.
When explaining technical concepts, provide context and build understanding incrementally.`

// ErrEmptyResponse is raised by the gateway itself when the API call
// succeeded but returned no text. It is a data-validity failure distinct
// from transport and provider failures.
var ErrEmptyResponse = errors.New("received empty response from Claude")

// ErrNotConfigured indicates the API key is not set.
var ErrNotConfigured = errors.New("Anthropic API key not configured")

// Completer is the completion interface the UI and CLI depend on, so
// tests can substitute a fake for the live gateway.
type Completer interface {
	Complete(ctx context.Context, turns []model.Turn, maxTokens int, temperature float64) (*Completion, error)
}

// Client talks to the Anthropic Messages API. It is stateless across
// calls (no session-affine state) and safe to share between sessions.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a client with the given API key. An empty key still
// yields a usable client; calls then fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithModel sets the model used for completion calls.
func (c *Client) WithModel(m string) *Client {
	if m != "" {
		c.model = m
	}
	return c
}

// WithTimeout sets the HTTP request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// =============================================================================
// COMPLETION
// =============================================================================

// Complete issues exactly one completion request for the transcript and
// returns the generated text plus reported token usage.
//
// The transcript is replayed verbatim in order. When it holds exactly one
// turn (the first exchange of the session), the fixed system preamble is
// attached; later calls omit it, matching the one-time directive rule.
//
// There are no retries and no partial results: one attempt, then either a
// Completion or an error for Classify. An HTTP 200 with no text is still
// a failure (ErrEmptyResponse); response validity is the gateway's job,
// not the provider's. The ledger is never touched here; the caller
// decides what to append based on the result.
func (c *Client) Complete(ctx context.Context, turns []model.Turn, maxTokens int, temperature float64) (*Completion, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	req := messagesRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages:    toChatMessages(turns),
	}
	if len(turns) == 1 {
		req.System = SystemPreamble
	}

	resp, err := c.postMessages(ctx, req)
	if err != nil {
		return nil, err
	}

	text := resp.text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Completion{Text: text, Usage: resp.Usage}, nil
}

// ValidateKey performs a minimal one-token probe call and reports whether
// the key was accepted.
//
// A successful probe is treated as proof of full API access, which is a
// known heuristic weakness: the key could validate here and a later call
// could still fail on model-specific permissions or budget. Preserved as
// is.
func (c *Client) ValidateKey(ctx context.Context) bool {
	if !c.IsConfigured() {
		return false
	}

	req := messagesRequest{
		Model:     c.model,
		MaxTokens: 1,
		Messages:  []ChatMessage{{Role: "user", Content: "test"}},
	}

	_, err := c.postMessages(ctx, req)
	return err == nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// postMessages performs one POST /v1/messages round trip.
func (c *Client) postMessages(ctx context.Context, reqBody messagesRequest) (*messagesResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	// Log method and path only: headers carry the key, bodies carry
	// conversation content.
	log.Printf("API Request: %s %s", httpReq.Method, httpReq.URL.Path)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer httpResp.Body.Close()

	log.Printf("API Response: %d %s (%v)", httpResp.StatusCode, httpResp.Status, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, parseAPIError(httpResp.StatusCode, body)
	}

	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// parseAPIError converts a non-2xx body into an *APIError, falling back
// to the raw body when the error envelope does not parse.
func parseAPIError(status int, body []byte) error {
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{
			Type:    envelope.Error.Type,
			Message: envelope.Error.Message,
			Status:  status,
		}
	}
	return &APIError{
		Message: strings.TrimSpace(string(body)),
		Status:  status,
	}
}

// toChatMessages converts ledger turns to wire messages in order.
func toChatMessages(turns []model.Turn) []ChatMessage {
	messages := make([]ChatMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, ChatMessage{
			Role:    turn.Role.String(),
			Content: turn.Content,
		})
	}
	return messages
}
