// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN - Shown while a chat has no messages
// =============================================================================

const (
	// Tagline sits under the logo.
	Tagline = "Generate apps in seconds."

	// CommunityText points at the community and the builder repo.
	CommunityText = "Share your apps with the Discord community (https://discord.gg/DbSXGqvxFc)\n" +
		"and fork the builder repo (https://github.com/fireproof-storage/vibes.diy)."
)

// Welcome renders the empty-chat screen.
type Welcome struct {
	width  int
	height int
	theme  *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{theme: theme}
}

// SetSize sets the area the screen is centered in.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the logo, the tagline and the links, centered.
func (w Welcome) View() string {
	tagline := lipgloss.NewStyle().
		Italic(true).
		Foreground(styles.TextSecondary).
		MarginTop(1).
		Render(Tagline)

	links := lipgloss.NewStyle().
		Italic(true).
		Foreground(styles.TextMuted).
		MarginTop(1).
		Align(lipgloss.Center).
		Render(wordWrap(CommunityText, maxInt(w.width-4, 20)))

	block := lipgloss.JoinVertical(lipgloss.Center, w.renderLogo(), tagline, links)
	if w.width <= 0 || w.height <= 0 {
		return block
	}
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, block)
}

// renderLogo picks the ASCII logo that fits.
func (w Welcome) renderLogo() string {
	if w.width >= 40 {
		logo := `        _ _
 __   _(_) |__   ___  ___
 \ \ / / | '_ \ / _ \/ __|
  \ V /| | |_) |  __/\__ \
   \_/ |_|_.__/ \___||___/`
		return lipgloss.NewStyle().Bold(true).Foreground(styles.TextSecondary).Render(logo)
	}
	return GradientTitle(Brand, styles.Accent.Dark, styles.AccentAlt.Dark)
}
