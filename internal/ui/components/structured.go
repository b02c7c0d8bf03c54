// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// =============================================================================
// STRUCTURED MESSAGE - AI replies as markdown and code cards
// =============================================================================

// StructuredMessage renders one AI message from its DisplayModel.
type StructuredMessage struct {
	Model render.DisplayModel
	Width int

	// Focus is the Visible index of the keyboard-focused code segment, or -1
	Focus int

	// Tick drives the streaming cursor and the selected dot
	Tick int

	// Stats is shown under finished messages when non-empty
	Stats string

	markdown *Markdown
	theme    *styles.Theme
}

// RenderedMessage is the output of a render pass.
type RenderedMessage struct {
	Text string

	// CodeRows maps the Visible index of each code segment to the row its
	// card starts on, relative to the first row of Text.
	CodeRows map[int]int

	// CardHeights maps the same indexes to card heights in rows.
	CardHeights map[int]int
}

// Height returns the number of rows in Text.
func (r RenderedMessage) Height() int {
	if r.Text == "" {
		return 0
	}
	return strings.Count(r.Text, "\n") + 1
}

// NewStructuredMessage creates a renderer for dm.
func NewStructuredMessage(dm render.DisplayModel, md *Markdown, theme *styles.Theme) StructuredMessage {
	return StructuredMessage{
		Model:    dm,
		Width:    80,
		Focus:    -1,
		markdown: md,
		theme:    theme,
	}
}

// Render lays out the label, the visible segments in order and the
// streaming cursor.
func (s StructuredMessage) Render() RenderedMessage {
	out := RenderedMessage{
		CodeRows:    make(map[int]int),
		CardHeights: make(map[int]int),
	}

	blocks := []string{s.theme.AILabel.Render(model.TypeAI.DisplayName())}
	row := 1

	if s.Model.ShowPlaceholder {
		blocks = append(blocks, s.theme.Placeholder.Render(render.Placeholder))
	}

	for i, seg := range s.Model.Visible {
		var block string
		switch seg.Type {
		case segment.Markdown:
			block = s.renderMarkdown(seg.Content)
		case segment.Code:
			card := NewCodeSegmentCard(seg, s.Model, s.theme)
			card.Width = s.Width
			card.Focused = i == s.Focus
			card.Tick = s.Tick
			block = card.View()
			out.CodeRows[i] = row
			out.CardHeights[i] = lipgloss.Height(block)
		default:
			continue
		}
		blocks = append(blocks, block)
		row += lipgloss.Height(block)
	}

	if s.Model.ShowStreamingIndicator {
		blocks = append(blocks, s.theme.StreamingCursor.Render(styles.Frame(styles.StreamingCursor, s.Tick)))
	} else if s.Stats != "" {
		blocks = append(blocks, s.theme.Stats.Render(s.Stats))
	}

	out.Text = strings.Join(blocks, "\n")
	return out
}

func (s StructuredMessage) renderMarkdown(content string) string {
	if s.markdown == nil {
		return wordWrap(content, s.Width)
	}
	return s.markdown.Render(content, s.Width)
}

// =============================================================================
// USER MESSAGE
// =============================================================================

// RenderUserMessage renders a user prompt as a right-aligned bubble.
func RenderUserMessage(msg *model.Message, width int, theme *styles.Theme) string {
	content := msg.DisplayText()
	if content == "" {
		content = "..."
	}

	maxContentWidth := width * 3 / 4
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth-2)
	bubble := theme.UserBubble.Render(wrapped)
	label := theme.UserLabel.Render(model.TypeUser.DisplayName())

	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}
