// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings and the hints shown for each focus
// area in the status bar.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	// Scrolling
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Input
	Submit key.Binding
	Cancel key.Binding

	// Code segments
	NextCode key.Binding
	PrevCode key.Binding
	Activate key.Binding
	Copy     key.Binding
	CopyAll  key.Binding

	// Panels
	TogglePreview  key.Binding
	ToggleSidebar  key.Binding
	NewChat        key.Binding
	FilterFaves    key.Binding
	ToggleFavorite key.Binding
	DeleteSession  key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to bottom"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextCode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next code"),
		),
		PrevCode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev code"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy code"),
		),
		CopyAll: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy message"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "preview"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "sessions"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		FilterFaves: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "faves"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "star"),
		),
		DeleteSession: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextCode, k.ToggleSidebar, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Submit, k.Cancel, k.Quit},
		{k.NextCode, k.PrevCode, k.Activate, k.Copy, k.CopyAll},
		{k.TogglePreview, k.ToggleSidebar, k.NewChat},
		{k.FilterFaves, k.ToggleFavorite, k.DeleteSession},
	}
}

// =============================================================================
// CONTEXT HINTS
// =============================================================================

// Focus is the area receiving key presses.
type Focus int

const (
	FocusInput      Focus = iota // typing a prompt
	FocusTranscript              // moving between code segments
	FocusSidebar                 // browsing sessions
)

// String implements fmt.Stringer.
func (f Focus) String() string {
	switch f {
	case FocusTranscript:
		return "transcript"
	case FocusSidebar:
		return "sidebar"
	default:
		return "input"
	}
}

// Hints returns the status bar hints for a focus area, most useful first.
func (k KeyMap) Hints(f Focus, streaming bool) []string {
	var bindings []key.Binding
	switch f {
	case FocusTranscript:
		bindings = []key.Binding{k.Activate, k.Copy, k.CopyAll, k.NextCode, k.TogglePreview, k.Cancel}
	case FocusSidebar:
		bindings = []key.Binding{k.Activate, k.ToggleFavorite, k.FilterFaves, k.DeleteSession, k.Cancel}
	default:
		if streaming {
			bindings = []key.Binding{withHelp(k.Cancel, "stop"), k.NextCode, k.ToggleSidebar}
		} else {
			bindings = []key.Binding{k.Submit, k.NextCode, k.ToggleSidebar, k.NewChat}
		}
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return hints
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
