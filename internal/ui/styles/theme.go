// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styles for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble      lipgloss.Style
	UserLabel       lipgloss.Style
	AILabel         lipgloss.Style
	Placeholder     lipgloss.Style
	StreamingCursor lipgloss.Style
	Stats           lipgloss.Style

	// ==========================================================================
	// CODE SEGMENT CARDS
	// ==========================================================================

	CodeCard        lipgloss.Style
	CodeCardFocused lipgloss.Style
	CodeCardPinned  lipgloss.Style
	CodeLines       lipgloss.Style
	CopyButton      lipgloss.Style
	CodePreview     lipgloss.Style
	CodePreviewLine lipgloss.Style
	CodeMore        lipgloss.Style

	DotProcessing lipgloss.Style
	DotSelected   lipgloss.Style
	DotIdle       lipgloss.Style

	// StickyBar frames the pinned card above the viewport
	StickyBar lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style
	SidebarFavorite lipgloss.Style
	SidebarEmpty    lipgloss.Style

	// ==========================================================================
	// PREVIEW PANE
	// ==========================================================================

	PreviewPane  lipgloss.Style
	PreviewTitle lipgloss.Style
	PreviewEmpty lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPlaceholder lipgloss.Style
	StatusBar        lipgloss.Style
	KeyHint          lipgloss.Style
	Toast            lipgloss.Style
	ErrorText        lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto"). Auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	isDark := true
	switch mode {
	case "light":
		isDark = false
	case "dark":
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// GlamourStyle names the glamour stylesheet matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ChromaStyle names the chroma stylesheet matching the theme.
func (t *Theme) ChromaStyle() string {
	if t.IsDark {
		return "catppuccin-mocha"
	}
	return "catppuccin-latte"
}

func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Decorative).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.AILabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	t.Placeholder = lipgloss.NewStyle().
		Italic(true).
		Foreground(TextSecondary)

	t.StreamingCursor = lipgloss.NewStyle().
		Foreground(Accent)

	t.Stats = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Code segment cards
	t.CodeCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Decorative).
		Background(Background01).
		Padding(0, 1)

	t.CodeCardFocused = t.CodeCard.
		BorderForeground(Accent)

	t.CodeCardPinned = t.CodeCard.
		BorderStyle(lipgloss.ThickBorder())

	t.CodeLines = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CopyButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Background02).
		Padding(0, 1)

	t.CodePreview = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Decorative).
		Background(Background00).
		Padding(0, 1)

	t.CodePreviewLine = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CodeMore = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.DotProcessing = lipgloss.NewStyle().Foreground(ProcessingBorder)
	t.DotSelected = lipgloss.NewStyle().Foreground(SelectedBorder).Bold(true)
	t.DotIdle = lipgloss.NewStyle().Foreground(IdleBorder)

	t.StickyBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Accent)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Decorative).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginBottom(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SidebarSelected = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	t.SidebarFavorite = lipgloss.NewStyle().
		Foreground(Amber)

	t.SidebarEmpty = lipgloss.NewStyle().
		Italic(true).
		Foreground(TextMuted)

	// Preview pane
	t.PreviewPane = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Decorative).
		Padding(0, 1)

	t.PreviewTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(AccentAlt)

	t.PreviewEmpty = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		Background(PastelPink).
		Padding(1, 2)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Decorative).
		Padding(0, 1)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Toast = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 80 {
		return LayoutNarrow
	}
	if t.Width < 130 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode. Narrow shows the
// chat alone, medium adds the sidebar and wide adds the preview pane.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 80 columns
	LayoutMedium                   // 80-130 columns
	LayoutWide                     // >= 130 columns
)
