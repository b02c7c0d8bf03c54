// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/vibes-tui/internal/ui/styles"
	"github.com/jeranaias/vibes-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Sidebar toggle, chat title, new chat
// =============================================================================

// Brand is the product name shown in the header and welcome screen.
const Brand = "vibes"

// Header is the title bar above the chat.
type Header struct {
	Title     string
	ModelName string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTitle updates the chat title.
func (h *Header) SetTitle(title string) {
	h.Title = title
}

// SetModel updates the current model name
func (h *Header) SetModel(model string) {
	h.ModelName = model
}

// View renders the header. The title is centered and truncated to fit
// between the sidebar hint and the new chat hint.
func (h *Header) View() string {
	width := h.Width
	if width < 30 {
		width = 30
	}
	inner := width - 2

	left := h.theme.KeyHint.Render("☰ ^s") + " " + GradientTitle(Brand, styles.Accent.Dark, styles.AccentAlt.Dark)
	right := h.theme.KeyHint.Render("new chat ^n")
	if h.ModelName != "" && inner > 70 {
		right = h.theme.HeaderSubtitle.Render(h.ModelName) + "  " + right
	}

	titleWidth := inner - lipgloss.Width(left) - lipgloss.Width(right) - 2
	title := ""
	if titleWidth > 3 && h.Title != "" {
		title = h.theme.HeaderTitle.Render(util.TruncateWidth(h.Title, titleWidth))
	}

	leftPad := (inner-lipgloss.Width(title))/2 - lipgloss.Width(left)
	if leftPad < 1 {
		leftPad = 1
	}
	line := left + strings.Repeat(" ", leftPad) + title
	rightPad := inner - lipgloss.Width(line) - lipgloss.Width(right)
	if rightPad < 1 {
		rightPad = 1
	}
	line += strings.Repeat(" ", rightPad) + right

	return h.theme.Header.Width(width).Render(line)
}

// GradientTitle renders text with a per-rune color blend between two hex
// colors. Invalid colors fall back to plain bold text.
func GradientTitle(text, startHex, endHex string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	start, err1 := colorful.Hex(startHex)
	end, err2 := colorful.Hex(endHex)
	if err1 != nil || err2 != nil || len(runes) < 3 {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(startHex)).Render(text)
	}

	var sb strings.Builder
	n := len(runes)
	for i, r := range runes {
		c := start.BlendLab(end, float64(i)/float64(n-1)).Clamped()
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return sb.String()
}
