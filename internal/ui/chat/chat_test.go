// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConfigMage/JohnAssist/internal/anthropic"
	"github.com/ConfigMage/JohnAssist/internal/config"
	"github.com/ConfigMage/JohnAssist/internal/model"
)

// fakeCompleter records the call it receives and replies with a canned
// completion or error.
type fakeCompleter struct {
	completion *anthropic.Completion
	err        error
	gotTurns   []model.Turn
	gotMax     int
	gotTemp    float64
	callCount  int
}

func (f *fakeCompleter) Complete(_ context.Context, turns []model.Turn, maxTokens int, temperature float64) (*anthropic.Completion, error) {
	f.callCount++
	f.gotTurns = turns
	f.gotMax = maxTokens
	f.gotTemp = temperature
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}

// newTestModel builds a sized chat model around the fake.
func newTestModel(t *testing.T, fake *fakeCompleter) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ExportDir = t.TempDir()

	m := New(cfg, fake, anthropic.DefaultModel)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

// submit types content and presses Enter, returning the updated model
// and the command produced.
func submit(t *testing.T, m Model, content string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(content)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

// runCompletion drains the batched submit command down to the gateway
// result message and applies it.
func runCompletion(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("submit produced no command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", msg)
	}

	for _, sub := range batch {
		result := sub()
		switch result.(type) {
		case completionMsg, completionErrMsg:
			updated, _ := m.Update(result)
			return updated.(Model)
		}
	}
	t.Fatal("no completion result in batch")
	return m
}

func TestChat_SuccessfulExchange(t *testing.T) {
	fake := &fakeCompleter{
		completion: &anthropic.Completion{
			Text:  "Hi there",
			Usage: anthropic.Usage{InputTokens: 10, OutputTokens: 5},
		},
	}
	m := newTestModel(t, fake)

	m, cmd := submit(t, m, "Hello")

	if m.state != StateWaiting {
		t.Errorf("state after submit: got %v, want StateWaiting", m.state)
	}
	if m.session.Len() != 1 {
		t.Fatalf("transcript after submit: got %d turns, want 1", m.session.Len())
	}

	m = runCompletion(t, m, cmd)

	if fake.callCount != 1 {
		t.Errorf("gateway calls: got %d, want exactly 1", fake.callCount)
	}
	if len(fake.gotTurns) != 1 || fake.gotTurns[0].Content != "Hello" {
		t.Errorf("gateway got transcript %+v", fake.gotTurns)
	}
	if fake.gotMax != config.DefaultMaxTokens {
		t.Errorf("max tokens: got %d, want %d", fake.gotMax, config.DefaultMaxTokens)
	}
	if fake.gotTemp != config.DefaultTemperature {
		t.Errorf("temperature: got %v, want %v", fake.gotTemp, config.DefaultTemperature)
	}

	// Success appends the assistant turn with its cost: +2 total.
	if m.session.Len() != 2 {
		t.Fatalf("transcript after success: got %d turns, want 2", m.session.Len())
	}
	want := 0.000525 // (10/1000)*0.015 + (5/1000)*0.075
	if got := m.session.RunningCost(); got != want {
		t.Errorf("running cost: got %v, want %v", got, want)
	}
	if m.state != StateReady {
		t.Errorf("state after success: got %v, want StateReady", m.state)
	}
}

func TestChat_FailedExchangeLeavesLedgerAlone(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("authentication error: invalid key")}
	m := newTestModel(t, fake)

	m, cmd := submit(t, m, "Hello")
	m = runCompletion(t, m, cmd)

	// Failure appends nothing: the user turn stands alone.
	if m.session.Len() != 1 {
		t.Fatalf("transcript after failure: got %d turns, want 1", m.session.Len())
	}
	if m.session.RunningCost() != 0 {
		t.Errorf("running cost after failure: got %v, want 0", m.session.RunningCost())
	}
	if m.lastError == nil {
		t.Fatal("classified error must be surfaced")
	}
	if m.lastError.Message != "Authentication failed. Please verify your API key." {
		t.Errorf("error message: got %q", m.lastError.Message)
	}
	if m.state != StateError {
		t.Errorf("state after failure: got %v, want StateError", m.state)
	}
}

func TestChat_NextInteractionAfterFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate_limit_error")}
	m := newTestModel(t, fake)

	m, cmd := submit(t, m, "first")
	m = runCompletion(t, m, cmd)

	// The ledger is neither reset nor locked by the failure.
	fake.err = nil
	fake.completion = &anthropic.Completion{
		Text:  "recovered",
		Usage: anthropic.Usage{InputTokens: 4, OutputTokens: 2},
	}

	m, cmd = submit(t, m, "second")
	m = runCompletion(t, m, cmd)

	if m.session.Len() != 3 {
		t.Fatalf("transcript: got %d turns, want 3 (failed user, user, assistant)", m.session.Len())
	}
	if m.lastError != nil {
		t.Error("error must clear on the next interaction")
	}
}

func TestChat_IgnoresSubmitWhileWaiting(t *testing.T) {
	fake := &fakeCompleter{
		completion: &anthropic.Completion{Text: "x", Usage: anthropic.Usage{}},
	}
	m := newTestModel(t, fake)

	m, _ = submit(t, m, "first")
	if m.state != StateWaiting {
		t.Fatalf("state: got %v, want StateWaiting", m.state)
	}

	m, cmd := submit(t, m, "second while waiting")
	if cmd != nil {
		t.Error("submit while waiting must be ignored")
	}
	if m.session.Len() != 1 {
		t.Errorf("transcript: got %d turns, want 1", m.session.Len())
	}
}

func TestChat_ExportCommand(t *testing.T) {
	fake := &fakeCompleter{
		completion: &anthropic.Completion{
			Text:  "answer",
			Usage: anthropic.Usage{InputTokens: 10, OutputTokens: 5},
		},
	}
	m := newTestModel(t, fake)
	m, cmd := submit(t, m, "question")
	m = runCompletion(t, m, cmd)

	m, cmd = submit(t, m, "/export json")
	if fake.callCount != 1 {
		t.Error("slash commands must not reach the gateway")
	}

	msg := cmd()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	if !strings.HasPrefix(status.text, "Exported to ") {
		t.Fatalf("unexpected status: %q", status.text)
	}

	path := strings.TrimPrefix(status.text, "Exported to ")
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("export path: got %q, want .json suffix", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestChat_CostCommand(t *testing.T) {
	fake := &fakeCompleter{
		completion: &anthropic.Completion{
			Text:  "answer",
			Usage: anthropic.Usage{InputTokens: 1000, OutputTokens: 1000},
		},
	}
	m := newTestModel(t, fake)
	m, cmd := submit(t, m, "question")
	m = runCompletion(t, m, cmd)

	m, _ = submit(t, m, "/cost")
	if !strings.Contains(m.status, "$0.0900") {
		t.Errorf("cost status: got %q, want it to contain $0.0900", m.status)
	}
}

func TestChat_UnknownCommand(t *testing.T) {
	m := newTestModel(t, &fakeCompleter{})
	m, _ = submit(t, m, "/frobnicate")
	if !strings.Contains(m.status, "Unknown command") {
		t.Errorf("status: got %q", m.status)
	}
}

func TestChat_ViewportUsesChatKeyMap(t *testing.T) {
	m := newTestModel(t, &fakeCompleter{})

	keys := DefaultKeyMap()
	pairs := []struct {
		name string
		want []string
		got  []string
	}{
		{"up", keys.Up.Keys(), m.viewport.KeyMap.Up.Keys()},
		{"down", keys.Down.Keys(), m.viewport.KeyMap.Down.Keys()},
		{"page up", keys.PageUp.Keys(), m.viewport.KeyMap.PageUp.Keys()},
		{"page down", keys.PageDown.Keys(), m.viewport.KeyMap.PageDown.Keys()},
	}
	for _, p := range pairs {
		if strings.Join(p.got, ",") != strings.Join(p.want, ",") {
			t.Errorf("%s binding: got %v, want %v", p.name, p.got, p.want)
		}
	}
}

func TestChat_PlaceholderStyled(t *testing.T) {
	m := newTestModel(t, &fakeCompleter{})

	got := m.input.PlaceholderStyle.GetForeground()
	want := m.theme.InputPlaceholder.GetForeground()
	if got != want {
		t.Errorf("placeholder foreground: got %v, want %v", got, want)
	}
}

func TestChat_ExportCommandFormatCaseInsensitive(t *testing.T) {
	fake := &fakeCompleter{
		completion: &anthropic.Completion{
			Text:  "answer",
			Usage: anthropic.Usage{InputTokens: 10, OutputTokens: 5},
		},
	}
	m := newTestModel(t, fake)
	m, cmd := submit(t, m, "question")
	m = runCompletion(t, m, cmd)

	_, cmd = submit(t, m, "/export MARKDOWN")
	status, ok := cmd().(statusMsg)
	if !ok {
		t.Fatal("expected a statusMsg")
	}
	path := strings.TrimPrefix(status.text, "Exported to ")
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("export path: got %q, want .md suffix", path)
	}
}

func TestChat_EmptyInputIgnored(t *testing.T) {
	m := newTestModel(t, &fakeCompleter{})
	m, cmd := submit(t, m, "   ")
	if cmd != nil {
		t.Error("blank input must not produce a command")
	}
	if m.session.Len() != 0 {
		t.Errorf("transcript: got %d turns, want 0", m.session.Len())
	}
}
