// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/storage"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
	"github.com/jeranaias/vibes-tui/internal/util"
)

// =============================================================================
// SESSION SIDEBAR
// =============================================================================

// SidebarWidth is the fixed width of the session list.
const SidebarWidth = 32

// Sidebar lists saved sessions, newest first.
type Sidebar struct {
	Sessions      []storage.Session
	Cursor        int
	ActiveID      string
	JustFavorites bool
	Height        int
	theme         *styles.Theme
}

// NewSidebar creates an empty sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// SetSessions replaces the list and keeps the cursor in range.
func (s *Sidebar) SetSessions(sessions []storage.Session) {
	s.Sessions = sessions
	s.clamp()
}

// Move shifts the cursor by delta.
func (s *Sidebar) Move(delta int) {
	s.Cursor += delta
	s.clamp()
}

// Current returns the session under the cursor.
func (s *Sidebar) Current() (storage.Session, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Sessions) {
		return storage.Session{}, false
	}
	return s.Sessions[s.Cursor], true
}

func (s *Sidebar) clamp() {
	if s.Cursor >= len(s.Sessions) {
		s.Cursor = len(s.Sessions) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	inner := SidebarWidth - 3

	star := "☆"
	if s.JustFavorites {
		star = "★"
	}
	heading := s.theme.SidebarTitle.Render(storage.SidebarTitle(len(s.Sessions), s.JustFavorites))
	filter := s.theme.SidebarFavorite.Render(star)
	gap := inner - lipgloss.Width(heading) - lipgloss.Width(filter)
	if gap < 1 {
		gap = 1
	}
	lines := []string{
		heading + strings.Repeat(" ", gap) + filter,
		s.theme.KeyHint.Render("f: " + storage.FilterLabel(s.JustFavorites)),
		"",
	}

	if len(s.Sessions) == 0 {
		lines = append(lines, s.theme.SidebarEmpty.Render(storage.EmptyListText(s.JustFavorites)))
	}

	// Each session takes three rows: title, date and a spacer.
	visible := len(s.Sessions)
	if s.Height > 0 {
		visible = maxInt((s.Height-len(lines))/3, 1)
	}
	start := 0
	if s.Cursor >= visible {
		start = s.Cursor - visible + 1
	}

	for i := start; i < len(s.Sessions) && i < start+visible; i++ {
		sess := s.Sessions[i]
		lines = append(lines, s.renderItem(sess, i == s.Cursor, inner)...)
	}

	style := s.theme.Sidebar.Width(SidebarWidth)
	if s.Height > 0 {
		style = style.Height(s.Height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (s *Sidebar) renderItem(sess storage.Session, selected bool, width int) []string {
	star := s.theme.KeyHint.Render("☆")
	if sess.Favorite {
		star = s.theme.SidebarFavorite.Render("★")
	}

	marker := "  "
	titleStyle := s.theme.SidebarItem
	if selected {
		marker = "> "
		titleStyle = s.theme.SidebarSelected
	}
	if sess.ID == s.ActiveID {
		titleStyle = titleStyle.Underline(true)
	}

	title := util.TruncateWidth(sess.DisplayTitle(), width-4)
	gap := width - 2 - util.StringWidth(title) - 1
	if gap < 1 {
		gap = 1
	}

	return []string{
		marker + titleStyle.Render(title) + strings.Repeat(" ", gap) + star,
		"  " + s.theme.KeyHint.Render(sess.CreatedAt.Local().Format("1/2/2006")),
		"",
	}
}
