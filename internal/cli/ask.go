// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the JohnAssist CLI.
//
// Handles the "johnassist ask" command which sends one question to
// Claude and prints the answer to stdout.
//
// Examples:
//   johnassist ask "How do I add memory to a chatbot?"
//   johnassist ask --export markdown "Explain prompt caching"
//   echo "What is RAG?" | johnassist ask

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ConfigMage/JohnAssist/internal/anthropic"
	"github.com/ConfigMage/JohnAssist/internal/config"
	"github.com/ConfigMage/JohnAssist/internal/export"
	"github.com/ConfigMage/JohnAssist/internal/model"
	"github.com/ConfigMage/JohnAssist/internal/pricing"
	"github.com/ConfigMage/JohnAssist/internal/ui/styles"
)

var (
	costStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	separatorStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay)

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(styles.TextSecondary)

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(styles.Emerald)
)

// markdownRenderer is the glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response with markdown rendering when stdout
// is a TTY, plain text otherwise so piped output stays clean.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Print(response)
	}
}

// HandleAskCommand handles the "ask" command: one question, one answer.
func HandleAskCommand(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	question := args.Query

	// With no question on the command line, accept piped stdin.
	if question == "" && !IsTTY() {
		reader := bufio.NewReader(os.Stdin)
		data, err := io.ReadAll(reader)
		if err == nil && len(data) > 0 {
			question = strings.TrimSpace(string(data))
		}
	}

	if question == "" {
		return fmt.Errorf("no question provided. Usage: johnassist ask \"your question\"")
	}

	client := anthropic.NewClient(cfg.APIKey)
	if cfg.Model != "" {
		client = client.WithModel(cfg.Model)
	}
	if !client.IsConfigured() {
		return fmt.Errorf("no API key configured. Set ANTHROPIC_API_KEY or api_key in %s", config.ConfigPath())
	}

	if args.Validate && !client.ValidateKey(context.Background()) {
		return errors.New("API key validation failed. Please verify your API key.")
	}

	return askOnce(client, cfg, question, args.ExportFormat)
}

// askOnce runs a single exchange on a fresh session and prints the
// answer with its cost summary. A completion failure is returned as the
// classified message alone; the caller prints it, so a failed
// interaction surfaces exactly one error string.
func askOnce(completer anthropic.Completer, cfg *config.Config, question, exportFormat string) error {
	session := model.NewSession()
	session.AppendUser(question)

	completion, err := completer.Complete(context.Background(), session.Transcript(), cfg.MaxTokens, cfg.Temperature)
	if err != nil {
		return errors.New(anthropic.Classify(err).Message)
	}

	cost := pricing.Cost(completion.Usage.InputTokens, completion.Usage.OutputTokens)
	session.AppendAssistant(completion.Text, cost)

	displayResponse(completion.Text)
	fmt.Println()

	displayCostSummary(completion.Usage, cost)

	if exportFormat != "" {
		format := export.ParseFormat(exportFormat)
		path, err := export.WriteFile(session, format, cfg.ExportDir)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", costStyle.Render("Exported:"), path)
	}

	return nil
}

// displayCostSummary shows token usage and cost after the response.
func displayCostSummary(usage anthropic.Usage, cost float64) {
	separator := strings.Repeat("─", 45)
	fmt.Fprintln(os.Stderr, separatorStyle.Render(separator))

	fmt.Fprintf(os.Stderr, "%s %s | %s %s | %s %s\n",
		summaryLabelStyle.Render("Input:"),
		summaryValueStyle.Render(fmt.Sprintf("%d", usage.InputTokens)),
		summaryLabelStyle.Render("Output:"),
		summaryValueStyle.Render(fmt.Sprintf("%d", usage.OutputTokens)),
		summaryLabelStyle.Render("Cost:"),
		summaryValueStyle.Render(pricing.FormatUSD(cost)))
}
