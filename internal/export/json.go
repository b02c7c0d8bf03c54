// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/storage"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports chats to JSON. Options only affect the export
// timestamp; the stored documents are always written in full.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// jsonDocument is the exported shape.
type jsonDocument struct {
	Session   storage.Session `json:"session"`
	Path      string          `json:"path"`
	Messages  []jsonMessage   `json:"messages"`
	CodeLines int             `json:"code_lines"`
	Exported  time.Time       `json:"exported"`
}

type jsonMessage struct {
	*model.Message
	// Segments is set for AI replies only.
	Segments []segment.Segment `json:"segments,omitempty"`
}

// Export converts a chat to JSON format.
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	out := jsonDocument{
		Session:  doc.Session,
		Path:     doc.Session.Path(),
		Messages: make([]jsonMessage, 0, len(doc.Messages)),
		Exported: e.options.now().UTC(),
	}
	for _, msg := range doc.Messages {
		jm := jsonMessage{Message: msg}
		if msg.IsAI() {
			jm.Segments = segment.Parse(msg.DisplayText()).NonBlank()
			for _, seg := range jm.Segments {
				if seg.IsCode() {
					out.CodeLines += render.CountLines(seg.Content)
				}
			}
		}
		out.Messages = append(out.Messages, jm)
	}

	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
