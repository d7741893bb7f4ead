// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConfigMage/JohnAssist/internal/model"
)

// sampleSession builds a two-exchange session with known costs.
func sampleSession() *model.Session {
	s := model.NewSession()
	s.AppendUser("How do I start building a chatbot?")
	s.AppendAssistant("Start with a simple echo loop:\n```go\nfmt.Println(input)\n```", 0.000525)
	s.AppendUser("Thanks!")
	return s
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"json", FormatJSON},
		{"text", FormatText},
		{"txt", FormatText},
		{"", FormatText},
		{"yaml", FormatText}, // unrecognized falls back to text
		{"Markdown", FormatMarkdown},
		{"JSON", FormatJSON},
		{"MD", FormatMarkdown},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.name); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMarkdownExport(t *testing.T) {
	out, err := Export(sampleSession(), FormatMarkdown)
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "# Chatbot Development Learning Session\n"))
	assert.Contains(t, doc, "## User\n")
	assert.Contains(t, doc, "## Assistant\n")
	assert.Contains(t, doc, "*Cost: $0.0005*")
	assert.Contains(t, doc, "**Total Session Cost: $0.0005**")

	// Code fences are neutralized so they cannot break the document.
	assert.NotContains(t, doc, "```")
	assert.Contains(t, doc, "~~~go")

	// Turn order is preserved.
	userIdx := strings.Index(doc, "How do I start")
	asstIdx := strings.Index(doc, "Start with a simple")
	thanksIdx := strings.Index(doc, "Thanks!")
	assert.True(t, userIdx < asstIdx && asstIdx < thanksIdx)
}

func TestTextExport(t *testing.T) {
	out, err := Export(sampleSession(), FormatText)
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "=== Chatbot Development Learning Session ===\n"))
	assert.Contains(t, doc, "[USER]\n")
	assert.Contains(t, doc, "[ASSISTANT]\n")
	assert.Contains(t, doc, "Cost: $0.0005\n")
	assert.Contains(t, doc, "Total Session Cost: $0.0005")

	// Plain narrative keeps content raw, fences included.
	assert.Contains(t, doc, "```go")
}

func TestJSONExportRoundTrip(t *testing.T) {
	session := sampleSession()

	out, err := Export(session, FormatJSON)
	require.NoError(t, err)

	doc, err := ParseJSON(out)
	require.NoError(t, err)

	turns := session.Transcript()
	require.Len(t, doc.Conversation, len(turns))

	for i, got := range doc.Conversation {
		assert.Equal(t, turns[i].Role.String(), got.Role, "turn %d role", i)
		assert.Equal(t, turns[i].Content, got.Content, "turn %d content", i)
		if turns[i].HasCost() {
			require.NotNil(t, got.Cost, "turn %d cost", i)
			assert.Equal(t, turns[i].CostValue(), *got.Cost, "turn %d cost value", i)
		} else {
			assert.Nil(t, got.Cost, "turn %d cost must be null", i)
		}
	}

	assert.Equal(t, session.RunningCost(), doc.TotalCost)
	assert.NotEmpty(t, doc.ExportTime)
}

func TestExport_EmptySession(t *testing.T) {
	empty := model.NewSession()

	for _, format := range []Format{FormatMarkdown, FormatJSON, FormatText} {
		t.Run(format.String(), func(t *testing.T) {
			out, err := Export(empty, format)
			require.NoError(t, err, "empty session must export, not error")
			require.NotEmpty(t, out)

			switch format {
			case FormatJSON:
				doc, err := ParseJSON(out)
				require.NoError(t, err)
				assert.Empty(t, doc.Conversation)
				assert.Equal(t, 0.0, doc.TotalCost)
			default:
				assert.Contains(t, string(out), "$0.0000")
			}
		})
	}
}

func TestExport_DoesNotMutateSession(t *testing.T) {
	session := sampleSession()
	lenBefore := session.Len()
	costBefore := session.RunningCost()

	for _, format := range []Format{FormatMarkdown, FormatJSON, FormatText} {
		_, err := Export(session, format)
		require.NoError(t, err)
	}

	assert.Equal(t, lenBefore, session.Len())
	assert.Equal(t, costBefore, session.RunningCost())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(sampleSession(), FormatMarkdown, dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".md"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Chatbot Development Learning Session")
}

func TestExporterMetadata(t *testing.T) {
	tests := []struct {
		format Format
		ext    string
		mime   string
	}{
		{FormatMarkdown, ".md", "text/markdown"},
		{FormatJSON, ".json", "application/json"},
		{FormatText, ".txt", "text/plain"},
	}
	for _, tt := range tests {
		e := For(tt.format)
		assert.Equal(t, tt.ext, e.FileExtension())
		assert.Equal(t, tt.mime, e.MimeType())
	}
}
