// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/mattn/go-runewidth"

	"github.com/ConfigMage/JohnAssist/internal/model"
	"github.com/ConfigMage/JohnAssist/internal/pricing"
)

// newViewport creates the transcript viewport with scrolling driven by
// the chat key map.
func newViewport(width, height int, keys KeyMap) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	vp.KeyMap = viewport.KeyMap{
		Up:       keys.Up,
		Down:     keys.Down,
		PageUp:   keys.PageUp,
		PageDown: keys.PageDown,
	}
	return vp
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.lastError != nil {
		sb.WriteString(m.renderError())
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderInput())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

// renderHeader draws the title line.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("JohnAssist")
	modelName := m.theme.HeaderModel.Render(m.modelName)
	return m.theme.Header.Width(m.width).Render(title + "  " + modelName)
}

// renderInput draws the prompt line.
func (m Model) renderInput() string {
	return m.theme.InputPrompt.Render("> ") + m.input.View()
}

// renderError draws the classified error box. The message is shown
// verbatim, exactly one per failed interaction.
func (m Model) renderError() string {
	title := m.theme.ErrorTitle.Render("Error")
	return m.theme.ErrorBox.Width(m.width - 2).Render(title + "  " + m.lastError.Message)
}

// renderStatusBar draws the bottom bar: state, running cost, and any
// transient status text, truncated to the terminal width.
func (m Model) renderStatusBar() string {
	var state string
	switch m.state {
	case StateWaiting:
		state = m.spinner.View() + m.theme.StatusState.Render(" thinking")
	case StateError:
		state = m.theme.ErrorTitle.Render("error")
	default:
		state = "ready"
	}

	cost := m.theme.StatusCost.Render("Session Cost: " + pricing.FormatUSD(m.session.RunningCost()))

	line := state + "  │  " + cost
	if m.status != "" {
		line += "  │  " + m.theme.StatusMsg.Render(m.status)
	}
	line += "  │  " + m.theme.HelpText.Render("C-g help · C-c quit")

	return m.theme.StatusBar.Width(m.width).Render(runewidth.Truncate(line, m.width*2, "…"))
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	if m.showHelp {
		m.viewport.SetContent(helpText())
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

// renderTranscript renders every turn in conversation order.
func (m *Model) renderTranscript() string {
	turns := m.session.Transcript()
	if len(turns) == 0 {
		return m.theme.HelpText.Render("Start the conversation below. Type /help for commands.")
	}

	var sb strings.Builder
	for i, turn := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderTurn(turn, i == len(turns)-1))
	}

	if m.state == StateWaiting {
		sb.WriteString("\n")
		sb.WriteString(m.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName()))
		sb.WriteString("\n")
		sb.WriteString(m.theme.HelpText.Render("…"))
	}

	return sb.String()
}

// renderTurn renders one turn with its role label, content, and cost
// caption. Assistant content goes through the markdown renderer; user
// content stays raw.
func (m *Model) renderTurn(turn model.Turn, isLast bool) string {
	var sb strings.Builder

	switch turn.Role {
	case model.RoleUser:
		sb.WriteString(m.theme.UserLabel.Render(turn.Role.DisplayName()))
		sb.WriteString("\n")
		sb.WriteString(m.theme.MessageBody.Render(turn.Content))
		sb.WriteString("\n")

	case model.RoleAssistant:
		sb.WriteString(m.theme.AssistantLabel.Render(turn.Role.DisplayName()))
		sb.WriteString("\n")
		sb.WriteString(m.renderMarkdown(turn.Content))
		sb.WriteString("\n")

		if turn.HasCost() {
			caption := "Cost: " + pricing.FormatUSD(turn.CostValue())
			if isLast && m.lastUsage != nil {
				caption = fmt.Sprintf("Tokens used - Input: %d, Output: %d, %s",
					m.lastUsage.InputTokens, m.lastUsage.OutputTokens, caption)
			}
			sb.WriteString(m.theme.CostCaption.Render(caption))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// renderMarkdown renders assistant markdown for the terminal, falling
// back to the raw content when the renderer is unavailable or fails.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return m.theme.MessageBody.Render(content)
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return m.theme.MessageBody.Render(content)
	}
	return strings.TrimRight(rendered, "\n")
}

// helpText is the /help and C-g overlay content.
func helpText() string {
	return strings.TrimSpace(`
Commands

  /export [markdown|json|text]   export the transcript (default: text)
  /cost                          show the running session cost
  /help                          toggle this help
  /quit                          exit

Keys

  Enter        send message
  Up/Down      scroll transcript
  PgUp/PgDn    page transcript
  C-g          toggle help
  C-c          quit
`)
}
