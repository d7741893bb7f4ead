// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConfigMage/JohnAssist/internal/export"
	"github.com/ConfigMage/JohnAssist/internal/pricing"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleCommand dispatches a /command entered at the prompt. Commands
// run locally; none of them touches the completion gateway.
func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/help":
		m.showHelp = !m.showHelp
		m.refreshViewport()
		return m, nil

	case "/cost":
		m.status = "Current Session Cost: " + pricing.FormatUSD(m.session.RunningCost())
		return m, nil

	case "/export":
		return m, m.exportCmd(args)

	default:
		m.status = fmt.Sprintf("Unknown command %s (try /help)", command)
		return m, nil
	}
}

// exportCmd writes the transcript in the requested format. An
// unrecognized format name falls back to plain text, matching
// export.ParseFormat.
func (m *Model) exportCmd(args []string) tea.Cmd {
	format := export.FormatText
	if len(args) > 0 {
		format = export.ParseFormat(args[0])
	}

	session := m.session
	dir := m.cfg.ExportDir

	return func() tea.Msg {
		path, err := export.WriteFile(session, format, dir)
		if err != nil {
			return statusMsg{text: "Export failed: " + err.Error()}
		}
		return statusMsg{text: "Exported to " + path}
	}
}
