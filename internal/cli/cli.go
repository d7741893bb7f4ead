// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli handles command-line parsing and the non-TUI command
// handlers for JohnAssist.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information, synced from main at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies the requested top-level command.
type Command int

const (
	// CmdTUI launches the interactive chat (the default).
	CmdTUI Command = iota
	// CmdAsk runs a single exchange and prints the result.
	CmdAsk
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
)

// Args carries parsed flags and positional arguments.
type Args struct {
	// Raw is everything after the command name.
	Raw []string

	// Query is the prompt for the ask command.
	Query string

	// ExportFormat, when set on ask, writes the exchange transcript in
	// the named format after printing the answer.
	ExportFormat string

	// Validate forces a one-token key probe before the first real call.
	Validate bool
}

// Parse reads os.Args and returns the command plus its arguments.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

// parse is the testable core of Parse.
func parse(argv []string) (Command, Args) {
	args := Args{}

	if len(argv) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(argv[0])
	rest := argv[1:]
	args.Raw = rest

	switch cmd {
	case "tui", "chat":
		for _, a := range rest {
			if a == "--validate" {
				args.Validate = true
			}
		}
		return CmdTUI, args

	case "ask":
		parseAskArgs(&args, rest)
		return CmdAsk, args

	case "version", "--version", "-v":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		// An unrecognized first argument is treated as an ask query, so
		// `johnassist "how do I ..."` does the obvious thing.
		parseAskArgs(&args, argv)
		return CmdAsk, args
	}
}

// parseAskArgs separates ask flags from the query words.
func parseAskArgs(args *Args, rest []string) {
	var queryParts []string

	i := 0
	for i < len(rest) {
		switch rest[i] {
		case "--export", "-e":
			if i+1 < len(rest) {
				args.ExportFormat = rest[i+1]
				i += 2
				continue
			}
			i++
		case "--validate":
			args.Validate = true
			i++
		default:
			queryParts = append(queryParts, rest[i])
			i++
		}
	}

	args.Query = strings.Join(queryParts, " ")
}

// PrintUsage writes the top-level usage text.
func PrintUsage() {
	fmt.Print(`JohnAssist - interactive chatbot-building tutor

Usage:
  johnassist              Start the interactive chat TUI
  johnassist ask [flags] "question"
                          Ask a single question and print the answer
  johnassist version      Print version information
  johnassist help         Show this help

Ask flags:
  -e, --export FORMAT     Also export the transcript (markdown, json, text)
      --validate          Probe the API key before sending the question

Configuration:
  ~/.johnassist/config.toml   api_key, model, max_tokens, temperature,
                              export_dir
  ANTHROPIC_API_KEY           overrides api_key
  JOHNASSIST_MODEL            overrides model
`)
}

// PrintVersion writes version information.
func PrintVersion() {
	fmt.Printf("johnassist %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
