// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Accent - Primary accent, hover borders, streaming cursor
var Accent = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F472B6"}

// AccentAlt - Secondary accent, copy button when pressed
var AccentAlt = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// PastelPink - Soft highlight behind the brand
var PastelPink = lipgloss.AdaptiveColor{Light: "#FCE7F3", Dark: "#831843"}

// =============================================================================
// CODE SEGMENT STATUS DOT
// =============================================================================

// Processing - Code still arriving
var ProcessingBorder = lipgloss.AdaptiveColor{Light: "#FB923C", Dark: "#F97316"}
var ProcessingFill = lipgloss.AdaptiveColor{Light: "#FED7AA", Dark: "#FDBA74"}

// Selected - Code belongs to the response shown in the preview
var SelectedBorder = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#4ADE80"}
var SelectedFill = lipgloss.AdaptiveColor{Light: "#86EFAC", Dark: "#BBF7D0"}

// Idle - Complete, not selected
var IdleBorder = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
var IdleFill = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#6B7280"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Background00 - Code preview well
var Background00 = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"}

// Background01 - Cards and panels
var Background01 = lipgloss.AdaptiveColor{Light: "#F9FAFB", Dark: "#1A1A1A"}

// Background02 - Buttons
var Background02 = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#262626"}

// Decorative - Card and pane borders
var Decorative = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#333333"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}

// TextSecondary - Labels, line counts, placeholders
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A3A3A3"}

// TextMuted - Hints, truncation marks
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#737373"}

// =============================================================================
// MESSAGE COLORS
// =============================================================================

var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#262626"}
var UserBubbleFg = TextPrimary

// =============================================================================
// FEEDBACK COLORS
// =============================================================================

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Emerald - Success
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Favorites, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// StatusIndicators are ASCII markers shown next to colored status text so
// the state reads without color.
var StatusIndicators = struct {
	Success string
	Error   string
	Warning string
}{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}
