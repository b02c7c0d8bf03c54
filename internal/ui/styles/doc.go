// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the vibes TUI.

All colors use Lip Gloss AdaptiveColor so they follow the terminal's light or
dark background.

# Colors (colors.go)

  - Accent, AccentAlt - Brand, focus borders, streaming cursor
  - Processing*, Selected*, Idle* - The code segment status dot
  - Background00..02, Decorative - Layered surfaces and borders
  - TextPrimary, TextSecondary, TextMuted - Text hierarchy

# Theme (theme.go)

Theme bundles every lipgloss.Style the components use and reports the
matching glamour and chroma stylesheets:

	theme := styles.NewTheme(cfg.UI.Theme)
	card := theme.CodeCard.Render(body)

The layout mode decides which panes are visible:

	LayoutNarrow - chat only
	LayoutMedium - sidebar and chat
	LayoutWide   - sidebar, chat and preview

# Animation (animations.go)

Frame-based effects are driven by a single tick of AnimationInterval:

	cursor := styles.Frame(styles.StreamingCursor, tick)
*/
package styles
