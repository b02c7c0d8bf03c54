// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusPreparing
	StatusStreaming
	StatusError
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusPreparing:
		return "Loading docs..."
	case StatusStreaming:
		return "Generating..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Busy reports whether the spinner should run.
func (s Status) Busy() bool {
	return s == StatusPreparing || s == StatusStreaming
}

// StatusBar is the bottom line: status, toasts and key hints.
type StatusBar struct {
	Status Status
	Width  int

	// Hints are shown on the right, most important first
	Hints []string

	spinner spinner.Model
	toasts  *ToastManager
	theme   *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme, toasts *ToastManager) *StatusBar {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	return &StatusBar{
		Status:  StatusReady,
		Width:   80,
		spinner: sp,
		toasts:  toasts,
		theme:   theme,
	}
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the status and returns the spinner tick when it starts.
func (s *StatusBar) SetStatus(status Status) tea.Cmd {
	wasBusy := s.Status.Busy()
	s.Status = status
	if status.Busy() && !wasBusy {
		return s.spinner.Tick
	}
	return nil
}

// Update advances the spinner.
func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !s.Status.Busy() {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the bar. A toast replaces the status text while it lasts.
func (s *StatusBar) View() string {
	var left string
	if s.toasts != nil {
		if toasts := s.toasts.Toasts(); len(toasts) > 0 {
			left = RenderToast(toasts[0], s.Width/2)
		}
	}
	if left == "" {
		switch {
		case s.Status.Busy():
			left = s.spinner.View() + " " + s.theme.StatusBar.Render(s.Status.String())
		case s.Status == StatusError:
			left = s.theme.ErrorText.Render(s.Status.String())
		default:
			left = s.theme.StatusBar.Render(s.Status.String())
		}
	}

	// Drop hints from the end until they fit.
	hints := s.Hints
	right := ""
	for len(hints) > 0 {
		right = s.theme.KeyHint.Render(strings.Join(hints, "  "))
		if lipgloss.Width(left)+lipgloss.Width(right)+2 <= s.Width {
			break
		}
		hints = hints[:len(hints)-1]
		right = ""
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
