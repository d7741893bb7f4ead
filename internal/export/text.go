// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/ConfigMage/JohnAssist/internal/model"
	"github.com/ConfigMage/JohnAssist/internal/pricing"
)

// =============================================================================
// PLAIN TEXT EXPORTER
// =============================================================================

// TextExporter renders the transcript as a plain narrative: bracketed
// upper-cased role labels, raw content, and cost lines where present.
type TextExporter struct{}

// Export converts the session to plain text.
func (e *TextExporter) Export(session *model.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}

	var sb strings.Builder
	sb.WriteString("=== " + sessionTitle + " ===\n\n")

	for _, turn := range session.Transcript() {
		sb.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(turn.Role.String())))
		sb.WriteString(turn.Content)
		sb.WriteString("\n\n")

		if turn.HasCost() {
			sb.WriteString(fmt.Sprintf("Cost: %s\n\n", pricing.FormatUSD(turn.CostValue())))
		}
	}

	sb.WriteString(fmt.Sprintf("\nTotal Session Cost: %s\n", pricing.FormatUSD(session.RunningCost())))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
