// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// =============================================================================
// PREVIEW PANE - Full code of the selected response
// =============================================================================

// EmptyPreviewText is shown until a response is selected.
const EmptyPreviewText = "You can just code things"

// Preview shows the code of the selected response.
type Preview struct {
	// Segments are the code segments of the selected response
	Segments []segment.Segment
	Width    int
	Height   int

	// Offset scrolls the code body
	Offset int

	theme *styles.Theme
}

// NewPreview creates an empty preview pane.
func NewPreview(theme *styles.Theme) *Preview {
	return &Preview{theme: theme}
}

// Empty reports whether there is nothing to show.
func (p *Preview) Empty() bool {
	return len(p.Segments) == 0
}

// Scroll moves the body by delta rows.
func (p *Preview) Scroll(delta int) {
	p.Offset += delta
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// View renders the pane.
func (p *Preview) View() string {
	width := maxInt(p.Width, 20)
	inner := width - 3

	style := p.theme.PreviewPane.Width(width)
	if p.Height > 0 {
		style = style.Height(p.Height)
	}

	if p.Empty() {
		body := p.theme.PreviewEmpty.Render(EmptyPreviewText)
		if p.Height > 0 {
			body = lipgloss.Place(inner, p.Height, lipgloss.Center, lipgloss.Center, body)
		}
		return style.Render(body)
	}

	var parts []string
	for _, seg := range p.Segments {
		block := NewCodeBlock(seg.Language, seg.Content, p.theme)
		block.MaxWidth = inner
		parts = append(parts, block.Render())
	}
	body := strings.Split(strings.Join(parts, "\n\n"), "\n")

	title := p.theme.PreviewTitle.Render(render.CopyLabel) + " " +
		p.theme.KeyHint.Render(render.LinesLabel(countCode(p.Segments)))

	rows := len(body)
	if p.Height > 2 {
		rows = p.Height - 2
	}
	if p.Offset > len(body)-1 {
		p.Offset = maxInt(len(body)-1, 0)
	}
	end := p.Offset + rows
	if end > len(body) {
		end = len(body)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(body[p.Offset:end], "\n")))
}

func countCode(segs []segment.Segment) int {
	n := 0
	for _, s := range segs {
		n += render.CountLines(s.Content)
	}
	return n
}
