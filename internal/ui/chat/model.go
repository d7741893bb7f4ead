// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - the Bubble Tea model for the chat view.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/ConfigMage/JohnAssist/internal/anthropic"
	"github.com/ConfigMage/JohnAssist/internal/config"
	"github.com/ConfigMage/JohnAssist/internal/model"
	"github.com/ConfigMage/JohnAssist/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Completion call in flight
	StateError                // Showing a classified error
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It owns the single
// Session ledger for the process and blocks each interaction until the
// in-flight completion resolves: at most one outbound call at a time,
// no background work, no cancellation of a call in flight.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Ledger and gateway
	session   *model.Session
	completer anthropic.Completer
	cfg       *config.Config
	modelName string

	// Last successful call's usage, for the token caption.
	lastUsage *anthropic.Usage

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Markdown rendering for assistant turns
	renderer *glamour.TermRenderer

	// Feedback
	lastError *anthropic.Classified
	status    string
	showHelp  bool
}

// New creates the chat model. The session starts empty and lives until
// the process exits.
func New(cfg *config.Config, completer anthropic.Completer, modelName string) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "What would you like to learn about chatbot development?"
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 0
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		state:     StateReady,
		theme:     theme,
		session:   model.NewSession(),
		completer: completer,
		cfg:       cfg,
		modelName: modelName,
		input:     input,
		spinner:   sp,
		keyMap:    DefaultKeyMap(),
	}
}

// Session exposes the ledger for export and inspection.
func (m *Model) Session() *model.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
