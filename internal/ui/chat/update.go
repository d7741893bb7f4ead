// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/ConfigMage/JohnAssist/internal/anthropic"
	"github.com/ConfigMage/JohnAssist/internal/pricing"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Help):
			m.showHelp = !m.showHelp
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keyMap.Submit):
			return m.handleSubmit()
		}

	case completionMsg:
		// Success: compute the turn's cost and append the assistant
		// turn with it; the running total updates in the same call.
		usage := msg.completion.Usage
		cost := pricing.Cost(usage.InputTokens, usage.OutputTokens)
		m.session.AppendAssistant(msg.completion.Text, cost)
		m.lastUsage = &usage
		m.lastError = nil
		m.state = StateReady
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case completionErrMsg:
		// Failure: surface the classified message and leave the ledger
		// as it stands (user turn kept, no assistant turn, total
		// unchanged). The next interaction is unaffected.
		classified := msg.classified
		m.lastError = &classified
		m.state = StateError
		m.refreshViewport()
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case spinner.TickMsg:
		if m.state == StateWaiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Route remaining messages to the focused components.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleSubmit processes the Enter key: a slash command runs locally, any
// other text becomes a user turn followed by one completion call.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state == StateWaiting {
		// One call at a time; ignore input until it resolves.
		return m, nil
	}

	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	m.lastError = nil

	if strings.HasPrefix(content, "/") {
		return m.handleCommand(content)
	}

	m.session.AppendUser(content)
	m.state = StateWaiting
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.completeCmd())
}

// completeCmd issues the single outbound completion call for the current
// transcript. The snapshot is taken here so the command closure carries
// no reference to the live ledger.
func (m *Model) completeCmd() tea.Cmd {
	transcript := m.session.Transcript()
	completer := m.completer
	maxTokens := m.cfg.MaxTokens
	temperature := m.cfg.Temperature

	return func() tea.Msg {
		completion, err := completer.Complete(context.Background(), transcript, maxTokens, temperature)
		if err != nil {
			return completionErrMsg{classified: anthropic.Classify(err)}
		}
		return completionMsg{completion: completion}
	}
}

// resize recomputes component dimensions for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 2
	inputHeight := 1
	statusHeight := 2
	viewportHeight := height - headerHeight - inputHeight - statusHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = newViewport(width, viewportHeight, m.keyMap)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.input.Width = width - 4

	// Re-create the markdown renderer at the new wrap width.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		m.renderer = nil
	} else {
		m.renderer = renderer
	}

	m.refreshViewport()
	m.viewport.GotoBottom()
}
