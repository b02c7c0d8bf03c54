// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// =============================================================================
// CHAT INPUT
// =============================================================================

// InputPlaceholder invites the first prompt.
const InputPlaceholder = "I want to build..."

const (
	inputMinRows = 2
	inputMaxRows = 6
)

// ChatInput is the prompt box under the chat. It grows with its content up
// to a limit and is disabled while a reply streams.
type ChatInput struct {
	area     textarea.Model
	width    int
	disabled bool
	theme    *styles.Theme
}

// NewChatInput creates a focused input.
func NewChatInput(theme *styles.Theme) *ChatInput {
	ta := textarea.New()
	ta.Placeholder = InputPlaceholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 8192
	ta.SetHeight(inputMinRows)
	// Enter sends; alt+enter inserts a newline.
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = theme.InputPlaceholder
	ta.BlurredStyle.Placeholder = theme.InputPlaceholder
	ta.Focus()

	return &ChatInput{area: ta, width: 80, theme: theme}
}

// SetWidth sets the outer width.
func (i *ChatInput) SetWidth(width int) {
	i.width = width
	i.area.SetWidth(maxInt(width-4, 10))
}

// SetDisabled blocks edits while a reply streams.
func (i *ChatInput) SetDisabled(disabled bool) {
	i.disabled = disabled
	if disabled {
		i.area.Blur()
	} else {
		i.area.Focus()
	}
}

// Disabled reports whether input is blocked.
func (i *ChatInput) Disabled() bool {
	return i.disabled
}

// Focused reports whether keys go to the input.
func (i *ChatInput) Focused() bool {
	return i.area.Focused()
}

// Focus gives the input the keyboard.
func (i *ChatInput) Focus() tea.Cmd {
	if i.disabled {
		return nil
	}
	return i.area.Focus()
}

// Blur releases the keyboard.
func (i *ChatInput) Blur() {
	i.area.Blur()
}

// Value returns the current text.
func (i *ChatInput) Value() string {
	return i.area.Value()
}

// SetValue replaces the text.
func (i *ChatInput) SetValue(v string) {
	i.area.SetValue(v)
	i.resize()
}

// Reset clears the input.
func (i *ChatInput) Reset() {
	i.area.Reset()
	i.resize()
}

// Submit returns the trimmed prompt and clears the box. ok is false when
// there is nothing to send or input is disabled.
func (i *ChatInput) Submit() (prompt string, ok bool) {
	if i.disabled {
		return "", false
	}
	prompt = strings.TrimSpace(i.area.Value())
	if prompt == "" {
		return "", false
	}
	i.Reset()
	return prompt, true
}

// Update forwards messages to the textarea.
func (i *ChatInput) Update(msg tea.Msg) tea.Cmd {
	if i.disabled {
		return nil
	}
	var cmd tea.Cmd
	i.area, cmd = i.area.Update(msg)
	i.resize()
	return cmd
}

func (i *ChatInput) resize() {
	rows := i.area.LineCount()
	if rows < inputMinRows {
		rows = inputMinRows
	}
	if rows > inputMaxRows {
		rows = inputMaxRows
	}
	i.area.SetHeight(rows)
}

// Height returns the rows View occupies.
func (i *ChatInput) Height() int {
	return i.area.Height() + 2
}

// View renders the input box.
func (i *ChatInput) View() string {
	style := i.theme.InputContainer.Width(i.width - 2)
	if i.Focused() {
		style = style.BorderForeground(styles.Accent)
	}
	if i.disabled {
		style = style.Foreground(styles.TextMuted)
	}
	return style.Render(i.area.View())
}
