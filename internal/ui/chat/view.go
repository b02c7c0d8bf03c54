// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file composes the screen: header, sidebar, transcript with the
// sticky bar laid over it, input, preview pane and status bar.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/ui/components"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
	"github.com/jeranaias/vibes-tui/internal/util"
)

const (
	// headerHeight is the header line plus its bottom border.
	headerHeight = 2
	statusHeight = 1
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// renderChat renders the complete chat screen.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := m.bodyHeight()
	var row string
	switch {
	case m.sidebarOpen && !m.showSidebar:
		// Narrow terminals give the whole body to the list.
		sb := *m.sidebar
		sb.Height = body
		row = lipgloss.NewStyle().Width(m.width).Height(body).Render(sb.View())

	default:
		var cols []string
		if m.showSidebar {
			cols = append(cols, m.sidebar.View())
		}
		cols = append(cols, m.renderChatColumn(body))
		if m.previewWidth > 0 {
			cols = append(cols, m.preview.View())
		}
		row = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		clipHeight(row, body),
		m.status.View(),
	)
}

// renderChatColumn renders the transcript and input, or the full screen
// preview when it replaces them.
func (m *Model) renderChatColumn(body int) string {
	col := lipgloss.NewStyle().Width(m.chatWidth).Height(body)
	if m.previewFullScreen() {
		return col.Render(m.preview.View())
	}

	var top string
	if m.conv == nil || m.conv.Len() == 0 {
		top = m.renderWelcome()
	} else {
		top = m.overlaySticky(m.viewport.View())
	}
	return col.Render(lipgloss.JoinVertical(lipgloss.Left, top, m.input.View()))
}

// renderWelcome fills the transcript area with the welcome screen and the
// style the first reply will use.
func (m *Model) renderWelcome() string {
	h := m.viewport.Height
	style := m.theme.KeyHint.Render(util.TruncateWidth("style: "+m.stylePrompt(), max(m.chatWidth-2, 10)))

	w := m.welcome
	w.SetSize(m.chatWidth, max(h-1, 1))
	return lipgloss.JoinVertical(lipgloss.Left,
		w.View(),
		lipgloss.PlaceHorizontal(m.chatWidth, lipgloss.Center, style),
	)
}

// =============================================================================
// STICKY BAR
// =============================================================================

// overlaySticky replaces the top rows of the transcript with the pinned
// card. The viewport keeps its height so scrolling does not shift.
func (m *Model) overlaySticky(view string) string {
	bar := m.renderStickyBar(m.chatWidth)
	if bar == "" {
		return view
	}
	barLines := strings.Split(bar, "\n")
	lines := strings.Split(view, "\n")
	if len(barLines) >= len(lines) {
		return view
	}
	copy(lines, barLines)
	return strings.Join(lines, "\n")
}

// stickyBarHeight returns the rows the sticky bar covers, or 0 when no
// card is pinned.
func (m *Model) stickyBarHeight() int {
	bar := m.renderStickyBar(m.chatWidth)
	if bar == "" {
		return 0
	}
	return lipgloss.Height(bar)
}

// renderStickyBar renders the collapsed copy of the pinned card. The bar
// only shows while the card's message still reaches the top of the view.
func (m *Model) renderStickyBar(width int) string {
	region, ok := m.pins.Current()
	if !ok || m.conv == nil || region.End <= m.viewport.YOffset {
		return ""
	}
	msg := m.conv.FindByID(region.Key.MessageID)
	if msg == nil {
		return ""
	}
	dm := m.displayModel(msg)
	if region.Key.Index < 0 || region.Key.Index >= len(dm.Visible) {
		return ""
	}

	card := components.NewCodeSegmentCard(dm.Visible[region.Key.Index], dm, m.theme)
	card.Pinned = true
	card.Width = width
	card.Focused = m.focusKey == region.Key
	if dm.IsStreaming || dm.IsSelected {
		card.Tick = m.tick
	}
	return m.theme.StickyBar.Width(width).Render(card.View())
}

// =============================================================================
// HELPERS
// =============================================================================

// clipHeight cuts s to at most n rows.
func clipHeight(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// layoutName is logged on resize.
func layoutName(mode styles.LayoutMode) string {
	switch mode {
	case styles.LayoutNarrow:
		return "narrow"
	case styles.LayoutWide:
		return "wide"
	default:
		return "medium"
	}
}
