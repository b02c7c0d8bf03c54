// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/ui/components"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// copyHitWidth is how far from a card's right edge a click lands on the
// copy label.
const copyHitWidth = 12

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout()
	m.optimizer.ForceUpdate()
	log.Debug().
		Int("width", m.width).
		Int("height", m.height).
		Str("layout", layoutName(m.mode)).
		Msg("resized")
	return m, m.refresh()
}

// layout sizes every component for the current window and panel state.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)
	m.mode = m.theme.GetLayoutMode()

	chat := m.width
	m.showSidebar = m.sidebarOpen && m.mode != styles.LayoutNarrow
	if m.showSidebar {
		chat -= components.SidebarWidth
	}
	m.previewWidth = 0
	if m.mode == styles.LayoutWide {
		m.previewWidth = chat * 2 / 5
		chat -= m.previewWidth
	}
	m.chatWidth = max(chat, 20)

	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.input.SetWidth(m.chatWidth)

	body := m.bodyHeight()
	m.viewport.Width = m.chatWidth
	m.viewport.Height = max(body-m.input.Height(), 1)
	m.sidebar.Height = body
	m.preview.Height = body
	m.preview.Width = m.previewWidth
	if m.previewFullScreen() {
		m.preview.Width = m.chatWidth
	}
	m.welcome.SetSize(m.chatWidth, m.viewport.Height)
}

// bodyHeight is the height between the header and the status bar.
func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-statusHeight, 3)
}

// previewFullScreen reports whether the preview replaces the chat column.
func (m *Model) previewFullScreen() bool {
	return m.selection.PreviewShown && m.mode != styles.LayoutWide
}

// chatLeft is the screen column where the chat column starts.
func (m *Model) chatLeft() int {
	if m.showSidebar {
		return components.SidebarWidth
	}
	return 0
}

// =============================================================================
// REFRESH
// =============================================================================

// refresh re-renders the transcript and keeps the viewport, the sticky
// regions and the preview in step with it.
func (m *Model) refresh() tea.Cmd {
	var cmds []tea.Cmd

	follow := m.viewport.AtBottom()
	m.transcript = m.buildTranscript()
	if m.optimizer.ShouldUpdate(m.transcript.Content) {
		m.viewport.SetContent(m.transcript.Content)
		if follow && m.streamID != "" {
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.pins.Sync(m.transcript.Regions)...)
		m.optimizer.MarkClean()
	}
	m.pins.Scroll(m.viewport.YOffset)

	if _, ok := m.transcript.Region(m.focusKey); !ok && m.focusKey.MessageID != "" {
		m.focusKey = RegionKey{}
	}
	m.syncPreview()
	m.syncChrome()

	return tea.Batch(cmds...)
}

// scrolled pushes the viewport offset to the sticky tracker.
func (m *Model) scrolled() tea.Cmd {
	m.pins.Scroll(m.viewport.YOffset)
	return nil
}

// syncPreview shows the code of the selected response, or of the latest
// reply when nothing is selected.
func (m *Model) syncPreview() {
	m.preview.Segments = nil
	if m.conv == nil {
		return
	}
	msg := m.conv.FindByID(m.selection.SelectedResponseID)
	if msg == nil {
		msg = m.conv.LastAI()
	}
	if msg == nil {
		return
	}
	m.displayModel(msg)
	m.preview.Segments = m.renders.For(msg.ID).Segments().CodeSegments()
}

// syncChrome updates the header, input and status bar.
func (m *Model) syncChrome() {
	title := ""
	if m.conv != nil {
		title = m.conv.DisplayTitle()
	}
	if title == "" {
		title = "New chat"
	}
	m.header.SetTitle(title)
	m.input.SetDisabled(m.streamID != "")
	m.status.Hints = m.keys.Hints(m.focus, m.streamID != "")
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleSidebar):
		return m.toggleSidebar()

	case key.Matches(msg, m.keys.NewChat):
		return m.newChat()

	case key.Matches(msg, m.keys.TogglePreview):
		m.selection.PreviewShown = !m.selection.PreviewShown
		m.layout()
		return m, m.refresh()
	}

	switch m.focus {
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	case FocusTranscript:
		return m.handleTranscriptKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keys.Cancel):
		if m.selection.PreviewShown {
			m.selection.PreviewShown = false
			m.layout()
			return m, m.refresh()
		}
		if m.cancelMgr.cancel() {
			log.Debug().Str("message", m.streamID).Msg("stream cancelled")
		}
		return m, nil

	case key.Matches(msg, m.keys.NextCode):
		return m.cycleCode(1)

	case key.Matches(msg, m.keys.PrevCode):
		return m.cycleCode(-1)

	case msg.Type == tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, m.scrolled()

	case msg.Type == tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, m.scrolled()
	}

	before := m.input.Height()
	cmd := m.input.Update(msg)
	if m.input.Height() != before {
		m.layout()
	}
	return m, cmd
}

func (m Model) handleTranscriptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	full := m.previewFullScreen()

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if full {
			m.selection.PreviewShown = false
			m.layout()
			return m, m.refresh()
		}
		return m, m.setFocus(FocusInput)

	case key.Matches(msg, m.keys.NextCode):
		return m.cycleCode(1)

	case key.Matches(msg, m.keys.PrevCode):
		return m.cycleCode(-1)

	case key.Matches(msg, m.keys.Activate):
		if k, ok := m.FocusedCode(); ok {
			m.clickCode(k)
			m.layout()
		}
		return m, m.refresh()

	case key.Matches(msg, m.keys.Copy):
		if k, ok := m.FocusedCode(); ok {
			return m, m.copyCode(k, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyAll):
		if k, ok := m.FocusedCode(); ok {
			return m, m.copyCode(k, true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if full {
			m.preview.Scroll(-1)
			return m, nil
		}
		m.viewport.LineUp(1)
		return m, m.scrolled()

	case key.Matches(msg, m.keys.Down):
		if full {
			m.preview.Scroll(1)
			return m, nil
		}
		m.viewport.LineDown(1)
		return m, m.scrolled()

	case key.Matches(msg, m.keys.PageUp):
		if full {
			m.preview.Scroll(-m.preview.Height / 2)
			return m, nil
		}
		m.viewport.ViewUp()
		return m, m.scrolled()

	case key.Matches(msg, m.keys.PageDown):
		if full {
			m.preview.Scroll(m.preview.Height / 2)
			return m, nil
		}
		m.viewport.ViewDown()
		return m, m.scrolled()

	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, m.scrolled()

	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, m.scrolled()

	case msg.Type == tea.KeyRunes:
		// Typing goes back to the prompt.
		focusCmd := m.setFocus(FocusInput)
		return m, tea.Batch(focusCmd, m.input.Update(msg))
	}
	return m, nil
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.toggleSidebar()

	case key.Matches(msg, m.keys.Up):
		m.sidebar.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.sidebar.Move(1)

	case key.Matches(msg, m.keys.Activate):
		sess, ok := m.sidebar.Current()
		if !ok {
			return m, nil
		}
		m.sidebarOpen = false
		focusCmd := m.setFocus(FocusInput)
		m.layout()
		return m, tea.Batch(focusCmd, m.openSessionCmd(sess.ID))

	case key.Matches(msg, m.keys.FilterFaves):
		m.sidebar.JustFavorites = !m.sidebar.JustFavorites
		m.sidebar.Cursor = 0
		return m, m.loadSessionsCmd()

	case key.Matches(msg, m.keys.ToggleFavorite):
		if sess, ok := m.sidebar.Current(); ok {
			return m, m.toggleFavoriteCmd(sess.ID)
		}

	case key.Matches(msg, m.keys.DeleteSession):
		if sess, ok := m.sidebar.Current(); ok {
			return m, m.deleteSessionCmd(sess.ID)
		}
	}
	return m, nil
}

// setFocus moves keyboard focus. Leaving the transcript clears the focused
// code segment.
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	if f == FocusInput {
		m.focusKey = RegionKey{}
		cmd = m.input.Focus()
	} else {
		m.input.Blur()
	}
	return tea.Batch(cmd, m.refresh())
}

// =============================================================================
// CODE SEGMENTS
// =============================================================================

// cycleCode moves focus through the code cards. From the input it starts at
// the newest card.
func (m Model) cycleCode(delta int) (tea.Model, tea.Cmd) {
	regions := m.transcript.Regions
	if len(regions) == 0 {
		return m, nil
	}

	idx := -1
	for i, r := range regions {
		if r.Key == m.focusKey {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(regions) - 1
	} else {
		idx = (idx + delta + len(regions)) % len(regions)
	}

	m.focusKey = regions[idx].Key
	m.focus = FocusTranscript
	m.input.Blur()
	m.ensureVisible(regions[idx])
	return m, m.refresh()
}

// ensureVisible scrolls the viewport so a card is fully on screen.
func (m *Model) ensureVisible(r CodeRegion) {
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height
	if r.Top < top || r.Top+r.Height > bottom {
		m.viewport.SetYOffset(max(r.Top-1, 0))
		m.scrolled()
	}
}

// clickCode activates a code segment: the first click selects its message,
// a click on the selected message opens the preview.
func (m *Model) clickCode(k RegionKey) {
	if m.conv == nil {
		return
	}
	msg := m.conv.FindByID(k.MessageID)
	if msg == nil {
		return
	}
	m.displayModel(msg).Click(m.selection.Callbacks())
}

// copyCode copies a code segment, or the whole message when whole is set.
func (m *Model) copyCode(k RegionKey, whole bool) tea.Cmd {
	if m.conv == nil {
		return nil
	}
	msg := m.conv.FindByID(k.MessageID)
	if msg == nil {
		return nil
	}
	dm := m.displayModel(msg)
	if k.Index < 0 || k.Index >= len(dm.Visible) {
		return nil
	}

	if _, err := render.Copy(m.clipboard, dm.Visible[k.Index], dm.RawText, whole); err != nil {
		return m.showError("Copy failed", err)
	}
	if whole && dm.RawText != "" {
		return m.showToast("Copied full message")
	}
	return m.showToast("Copied " + render.CopyLabel)
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		if m.previewFullScreen() {
			if msg.Type == tea.MouseWheelUp {
				m.preview.Scroll(-3)
			} else {
				m.preview.Scroll(3)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, tea.Batch(cmd, m.scrolled())

	case tea.MouseLeft:
		return m.handleClick(msg)
	}
	return m, nil
}

// handleClick maps a click in the chat column onto a code card. A click on
// the card's copy label copies it; shift copies the whole message.
func (m Model) handleClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.previewFullScreen() || (m.sidebarOpen && !m.showSidebar) {
		return m, nil
	}
	x := msg.X - m.chatLeft()
	y := msg.Y - headerHeight
	if x < 0 || x >= m.chatWidth || y < 0 || y >= m.viewport.Height {
		return m, nil
	}

	var (
		region CodeRegion
		row    int // row within the card
		ok     bool
	)
	if pinned, has := m.pins.Current(); has && y < m.stickyBarHeight() {
		region, row, ok = pinned, y, true
	} else {
		abs := m.viewport.YOffset + y
		region, ok = m.transcript.RegionAt(abs)
		row = abs - region.Top
	}
	if !ok {
		return m, nil
	}

	m.focusKey = region.Key
	m.focus = FocusTranscript
	m.input.Blur()

	if row == 1 && x >= m.chatWidth-copyHitWidth {
		return m, tea.Batch(m.copyCode(region.Key, msg.Shift), m.refresh())
	}
	m.clickCode(region.Key)
	m.layout()
	return m, m.refresh()
}

// =============================================================================
// PANELS
// =============================================================================

func (m Model) toggleSidebar() (tea.Model, tea.Cmd) {
	m.sidebarOpen = !m.sidebarOpen
	var cmds []tea.Cmd
	if m.sidebarOpen {
		m.focus = FocusSidebar
		m.input.Blur()
		if m.session != nil {
			m.sidebar.ActiveID = m.session.ID
		}
		cmds = append(cmds, m.loadSessionsCmd())
	} else {
		cmds = append(cmds, m.setFocus(FocusInput))
	}
	m.layout()
	m.optimizer.ForceUpdate()
	cmds = append(cmds, m.refresh())
	return m, tea.Batch(cmds...)
}

// newChat stops any stream and starts an empty, unsaved chat.
func (m Model) newChat() (tea.Model, tea.Cmd) {
	m.cancelMgr.cancel()
	m.resetChat()
	m.sidebarOpen = false
	focusCmd := m.setFocus(FocusInput)
	m.layout()
	return m, tea.Batch(focusCmd, m.refresh())
}

// resetChat clears everything tied to the current chat. Sticky
// subscriptions of the old messages are released here.
func (m *Model) resetChat() {
	m.session = nil
	m.conv = nil
	m.streamID = ""
	m.buffer.Reset()
	m.renders.Reset()
	m.views = make(map[string]messageView)
	m.pins.Reset()
	m.optimizer.ForceUpdate()
	m.focusKey = RegionKey{}
	*m.selection = render.Selection{}
	m.preview.Offset = 0
	m.viewport.GotoTop()
	m.status.SetStatus(components.StatusReady)
}

// =============================================================================
// FEEDBACK
// =============================================================================

func (m *Model) showToast(text string) tea.Cmd {
	m.toasts.AddSuccess(text)
	return m.armToasts()
}

func (m *Model) showError(prefix string, err error) tea.Cmd {
	log.Error().Err(err).Msg(prefix)
	m.toasts.AddError(prefix + ": " + err.Error())
	return m.armToasts()
}

func (m *Model) armToasts() tea.Cmd {
	if m.toastsLive {
		return nil
	}
	m.toastsLive = true
	return components.ToastTickCmd()
}
