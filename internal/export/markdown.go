// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ConfigMage/JohnAssist/internal/model"
	"github.com/ConfigMage/JohnAssist/internal/pricing"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders the transcript as structured markup: one
// heading per turn, the content with code fences neutralized, and an
// italicized cost line on assistant turns.
type MarkdownExporter struct{}

var roleTitleCaser = cases.Title(language.English)

// Export converts the session to Markdown.
func (e *MarkdownExporter) Export(session *model.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}

	var sb strings.Builder
	sb.WriteString("# " + sessionTitle + "\n\n")

	for _, turn := range session.Transcript() {
		sb.WriteString(fmt.Sprintf("## %s\n\n", roleTitleCaser.String(turn.Role.String())))

		// Triple backticks in the content would open or close fenced
		// blocks in the surrounding document; swap them for tildes.
		content := strings.ReplaceAll(turn.Content, "```", "~~~")
		sb.WriteString(content)
		sb.WriteString("\n\n")

		if turn.HasCost() {
			sb.WriteString(fmt.Sprintf("*Cost: %s*\n\n", pricing.FormatUSD(turn.CostValue())))
		}
	}

	sb.WriteString(fmt.Sprintf("**Total Session Cost: %s**\n", pricing.FormatUSD(session.RunningCost())))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}
