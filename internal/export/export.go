// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - format registry and file writing for transcript exports.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ConfigMage/JohnAssist/internal/model"
)

// sessionTitle heads every export document.
const sessionTitle = "Chatbot Development Learning Session"

// =============================================================================
// FORMAT
// =============================================================================

// Format is the closed set of export formats.
type Format int

const (
	// FormatText is plain narrative output and the fallback for
	// unrecognized format names (documented default, not an error).
	FormatText Format = iota

	// FormatMarkdown is structured markup output.
	FormatMarkdown

	// FormatJSON is the machine-readable record.
	FormatJSON
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatJSON:
		return "json"
	default:
		return "text"
	}
}

// ParseFormat maps a format name to a Format, ignoring case so every
// entry point resolves names the same way. Unrecognized names fall back
// to FormatText.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "markdown", "md":
		return FormatMarkdown
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// =============================================================================
// EXPORTER INTERFACE
// =============================================================================

// Exporter renders a session into one target format.
type Exporter interface {
	// Export serializes the session. It reads the transcript and the
	// running cost and never modifies either.
	Export(session *model.Session) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g. ".md").
	FileExtension() string

	// MimeType returns the MIME type of the exported format.
	MimeType() string
}

// For returns the exporter for the given format.
func For(format Format) Exporter {
	switch format {
	case FormatMarkdown:
		return &MarkdownExporter{}
	case FormatJSON:
		return &JSONExporter{}
	default:
		return &TextExporter{}
	}
}

// Export renders the session in the given format.
func Export(session *model.Session, format Format) ([]byte, error) {
	return For(format).Export(session)
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// WriteFile exports the session and writes it to dir under a
// timestamped filename. Returns the output path.
func WriteFile(session *model.Session, format Format, dir string) (string, error) {
	exporter := For(format)

	content, err := exporter.Export(session)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("johnassist_session_%s%s",
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)

	outputPath := filepath.Join(dir, filename)
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}
