// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ConfigMage/JohnAssist/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// Document is the machine-readable export record: the full transcript,
// the running total, and the export timestamp. It round-trips losslessly
// through ParseJSON.
type Document struct {
	Conversation []DocumentTurn `json:"conversation"`
	TotalCost    float64        `json:"total_cost"`
	ExportTime   string         `json:"export_time"`
}

// DocumentTurn is one transcript entry in a Document. Cost is null for
// turns that carry no cost.
type DocumentTurn struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Cost    *float64 `json:"cost"`
}

// JSONExporter renders the transcript as a single JSON document.
// JSON exports always contain the complete transcript so the output is
// a faithful, re-parseable record of the session.
type JSONExporter struct{}

// Export converts the session to indented JSON.
func (e *JSONExporter) Export(session *model.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}

	turns := session.Transcript()
	doc := Document{
		Conversation: make([]DocumentTurn, 0, len(turns)),
		TotalCost:    session.RunningCost(),
		ExportTime:   time.Now().Format("2006-01-02 15:04:05"),
	}

	for _, turn := range turns {
		doc.Conversation = append(doc.Conversation, DocumentTurn{
			Role:    turn.Role.String(),
			Content: turn.Content,
			Cost:    turn.Cost,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// ParseJSON decodes a document produced by JSONExporter.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse export document: %w", err)
	}
	return &doc, nil
}
