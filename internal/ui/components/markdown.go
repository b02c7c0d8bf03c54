// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders markdown segments with glamour. The underlying renderer is
// rebuilt only when the width or stylesheet changes.
type Markdown struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewMarkdown creates a renderer using the named glamour stylesheet.
func NewMarkdown(style string) *Markdown {
	return &Markdown{style: style}
}

// SetStyle switches the glamour stylesheet.
func (m *Markdown) SetStyle(style string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if style != m.style {
		m.style = style
		m.renderer = nil
	}
}

// Render renders md wrapped to width. If glamour fails the text is
// word-wrapped as is.
func (m *Markdown) Render(md string, width int) string {
	if width < 10 {
		width = 10
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Warn().Err(err).Msg("markdown renderer unavailable")
			return wordwrap.String(md, width)
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(md)
	if err != nil {
		return wordwrap.String(md, width)
	}
	return strings.Trim(out, "\n")
}
