// JohnAssist - an interactive terminal tutor for chatbot development.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ConfigMage/JohnAssist/internal/anthropic"
	"github.com/ConfigMage/JohnAssist/internal/cli"
	"github.com/ConfigMage/JohnAssist/internal/config"
	"github.com/ConfigMage/JohnAssist/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		if err := cli.HandleAskCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI starts the interactive chat interface.
func runTUI(args cli.Args) {
	if err := cli.RequiresTTY("chat"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := anthropic.NewClient(cfg.APIKey)
	if cfg.Model != "" {
		client = client.WithModel(cfg.Model)
	}

	if !client.IsConfigured() {
		fmt.Fprintf(os.Stderr, "No API key configured.\n")
		fmt.Fprintf(os.Stderr, "Set ANTHROPIC_API_KEY or add api_key to %s\n", config.ConfigPath())
		os.Exit(1)
	}

	// Probe the key once before entering the alternate screen so a bad
	// credential fails fast with a readable message.
	if args.Validate && !client.ValidateKey(context.Background()) {
		fmt.Fprintln(os.Stderr, "Error: API key validation failed. Please verify your API key.")
		os.Exit(1)
	}

	m := chat.New(cfg, client, client.Model())

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running johnassist: %v\n", err)
		os.Exit(1)
	}
}
