// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/vibes-tui/internal/ui/components"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// storeTimeout bounds every store call made from the UI.
const storeTimeout = 5 * time.Second

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func (m *Model) loadSessionsCmd() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	justFavorites := m.sidebar.JustFavorites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		sessions, err := store.ListSessions(ctx, justFavorites)
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m *Model) openSessionCmd(id string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		sess, err := store.GetSession(ctx, id)
		if err != nil {
			return SessionOpenedMsg{Err: err}
		}
		conv, err := store.LoadConversation(ctx, id)
		return SessionOpenedMsg{Session: sess, Conversation: conv, Err: err}
	}
}

func (m *Model) toggleFavoriteCmd(id string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		fav, err := store.ToggleFavorite(ctx, id)
		return FavoriteToggledMsg{SessionID: id, Favorite: fav, Err: err}
	}
}

func (m *Model) deleteSessionCmd(id string) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return SessionDeletedMsg{SessionID: id, Err: store.DeleteSession(ctx, id)}
	}
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

func (m Model) handleSessionsLoaded(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.showError("Could not list chats", msg.Err)
	}
	m.sidebar.SetSessions(msg.Sessions)
	if m.session != nil {
		m.sidebar.ActiveID = m.session.ID
	}
	return m, nil
}

// handleSessionOpened replaces the chat with a stored one.
func (m Model) handleSessionOpened(msg SessionOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.showError("Could not open chat", msg.Err)
	}

	m.cancelMgr.cancel()
	m.resetChat()
	m.session = msg.Session
	m.conv = msg.Conversation
	m.sidebar.ActiveID = msg.Session.ID

	log.Info().
		Str("session", msg.Session.ID).
		Int("messages", msg.Conversation.Len()).
		Msg("session opened")

	cmd := m.refresh()
	m.viewport.GotoBottom()
	m.scrolled()
	return m, cmd
}

func (m Model) handleFavoriteToggled(msg FavoriteToggledMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.showError("Could not star chat", msg.Err)
	}
	if m.session != nil && m.session.ID == msg.SessionID {
		m.session.Favorite = msg.Favorite
	}
	return m, m.loadSessionsCmd()
}

func (m Model) handleSessionDeleted(msg SessionDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.showError("Could not delete chat", msg.Err)
	}
	cmds := []tea.Cmd{m.loadSessionsCmd()}
	if m.session != nil && m.session.ID == msg.SessionID {
		m.cancelMgr.cancel()
		m.resetChat()
		cmds = append(cmds, m.refresh())
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// handleConfigReloaded applies a configuration edited on disk. The sticky
// observer is rebuilt so offset and mode changes take effect at once.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}
	old := m.cfg
	m.cfg = cfg

	var cmds []tea.Cmd
	if cfg.UI.Theme != old.UI.Theme {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.markdown.SetStyle(m.theme.GlamourStyle())
		cmds = append(cmds, m.rebuildComponents())
	}
	if cfg.UI.StickyOffset != old.UI.StickyOffset ||
		cfg.UI.StickyMode != old.UI.StickyMode ||
		cfg.UI.PollIntervalMs != old.UI.PollIntervalMs {
		if err := m.pins.Close(); err != nil {
			log.Warn().Err(err).Msg("closing sticky observer")
		}
		m.pins = newPinTracker(stickyOptions(cfg))
	}
	m.buffer.SetBatchSize(cfg.Stream.BatchSize)
	m.buffer.SetMaxFPS(cfg.Stream.MaxFPS)
	if rs, ok := m.streamer.(*ReplayStreamer); ok && cfg.Stream.ReplayRate != old.Stream.ReplayRate {
		rs.SetRate(cfg.Stream.ReplayRate)
	}
	m.header.SetModel(cfg.Model)

	m.views = make(map[string]messageView)
	m.optimizer.ForceUpdate()
	m.layout()
	cmds = append(cmds, m.refresh(), m.showToast("Config reloaded"))
	return m, tea.Batch(cmds...)
}

// rebuildComponents recreates the themed components, keeping their state.
func (m *Model) rebuildComponents() tea.Cmd {
	header := components.NewHeader(m.theme)
	header.SetModel(m.header.ModelName)
	header.SetTitle(m.header.Title)
	m.header = header

	value := m.input.Value()
	focused := m.input.Focused()
	m.input = components.NewChatInput(m.theme)
	m.input.SetValue(value)
	if !focused {
		m.input.Blur()
	}

	sidebar := components.NewSidebar(m.theme)
	sidebar.SetSessions(m.sidebar.Sessions)
	sidebar.Cursor = m.sidebar.Cursor
	sidebar.ActiveID = m.sidebar.ActiveID
	sidebar.JustFavorites = m.sidebar.JustFavorites
	m.sidebar = sidebar

	m.preview = components.NewPreview(m.theme)
	m.welcome = components.NewWelcome(m.theme)

	status := components.NewStatusBar(m.theme, m.toasts)
	cmd := status.SetStatus(m.status.Status)
	m.status = status
	return cmd
}
