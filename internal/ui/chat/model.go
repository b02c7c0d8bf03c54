// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vibes-tui/internal/config"
	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/prompts"
	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/sticky"
	"github.com/jeranaias/vibes-tui/internal/storage"
	"github.com/jeranaias/vibes-tui/internal/ui/components"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options wires a Model to its collaborators. Store and Prompts may be nil:
// without a store nothing is persisted, without a builder replies stream
// with no system prompt.
type Options struct {
	Config    *config.Config
	Theme     *styles.Theme
	Store     *storage.Store
	Prompts   *prompts.Builder
	Streamer  Streamer
	Clipboard render.Clipboard

	// SessionID resumes a stored chat on start.
	SessionID string
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	cfg       *config.Config
	theme     *styles.Theme
	store     *storage.Store
	prompts   *prompts.Builder
	streamer  Streamer
	clipboard render.Clipboard
	keys      KeyMap

	// Dimensions
	width        int
	height       int
	mode         styles.LayoutMode
	chatWidth    int
	previewWidth int
	showSidebar  bool

	// Chat state
	session     *storage.Session
	conv        *model.Conversation
	resumeID    string
	streamID    string
	buffer      *StreamingBuffer
	cancelMgr   *cancelManager
	sidebarOpen bool

	// Derived view state
	renders    *render.Cache
	views      map[string]messageView
	selection  *render.Selection
	focus      Focus
	focusKey   RegionKey
	transcript transcript
	pins       *pinTracker
	optimizer  *ViewportOptimizer
	tick       int
	toastsLive bool

	// Components
	viewport viewport.Model
	markdown *components.Markdown
	header   *components.Header
	input    *components.ChatInput
	sidebar  *components.Sidebar
	preview  *components.Preview
	status   *components.StatusBar
	toasts   *components.ToastManager
	welcome  components.Welcome
}

// New creates a chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}
	streamer := opts.Streamer
	if streamer == nil {
		streamer = NewReplayStreamer("", cfg.Stream.ReplayRate)
	}
	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = render.SystemClipboard{}
	}

	toasts := components.NewToastManager()
	header := components.NewHeader(theme)
	header.SetModel(cfg.Model)
	header.SetTitle(model.DefaultTitle)

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return Model{
		cfg:       cfg,
		theme:     theme,
		store:     opts.Store,
		prompts:   opts.Prompts,
		streamer:  streamer,
		clipboard: clipboard,
		keys:      DefaultKeyMap(),

		resumeID:  opts.SessionID,
		buffer:    NewStreamingBufferWithConfig(cfg.Stream.BatchSize, cfg.Stream.MaxFPS),
		cancelMgr: newCancelManager(),

		renders:   render.NewCache(),
		views:     make(map[string]messageView),
		selection: &render.Selection{},
		pins:      newPinTracker(stickyOptions(cfg)),
		optimizer: NewViewportOptimizer(),

		viewport: vp,
		markdown: components.NewMarkdown(theme.GlamourStyle()),
		header:   header,
		input:    components.NewChatInput(theme),
		sidebar:  components.NewSidebar(theme),
		preview:  components.NewPreview(theme),
		status:   components.NewStatusBar(theme, toasts),
		toasts:   toasts,
		welcome:  components.NewWelcome(theme),
	}
}

// stickyOptions maps the UI config onto the sticky observer.
func stickyOptions(cfg *config.Config) sticky.Options {
	offset := cfg.UI.StickyOffset
	if offset < 1 {
		offset = 1
	}
	return sticky.Options{
		SentinelOffset: offset,
		PollInterval:   cfg.PollInterval(),
		ForcePolling:   cfg.UI.StickyMode == "poll",
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the input cursor, the animation clock and the session list.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.input.Focus(),
		animTickCmd(),
		m.loadSessionsCmd(),
	}
	if m.resumeID != "" {
		cmds = append(cmds, m.openSessionCmd(m.resumeID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case PromptReadyMsg:
		return m.handlePromptReady(msg)

	case StreamTickMsg:
		return m.handleStreamTick(msg)

	case StreamCompleteMsg:
		return m.handleStreamComplete(msg)

	case SessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case SessionOpenedMsg:
		return m.handleSessionOpened(msg)

	case FavoriteToggledMsg:
		return m.handleFavoriteToggled(msg)

	case SessionDeletedMsg:
		return m.handleSessionDeleted(msg)

	case SaveErrorMsg:
		return m, m.showError("Save failed", msg.Err)

	case StickyMsg:
		return m, m.pins.Apply(msg)

	case AnimTickMsg:
		m.tick++
		return m, tea.Batch(m.refresh(), animTickCmd())

	case components.ToastTickMsg:
		m.toastsLive = m.toasts.Tick(msg.Time)
		if m.toastsLive {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		return m, m.status.Update(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)
	}

	return m, m.input.Update(msg)
}

// View renders the chat.
func (m Model) View() string {
	return m.renderChat()
}

// Close releases sticky subscriptions and stops any running stream.
func (m *Model) Close() error {
	m.cancelMgr.cancel()
	return m.pins.Close()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the open chat, or nil before the first prompt.
func (m *Model) Conversation() *model.Conversation {
	return m.conv
}

// Session returns the open session, or nil.
func (m *Model) Session() *storage.Session {
	return m.session
}

// SelectedResponseID returns the explicitly selected AI message.
func (m *Model) SelectedResponseID() string {
	return m.selection.SelectedResponseID
}

// PreviewShown reports whether the preview was requested.
func (m *Model) PreviewShown() bool {
	return m.selection.PreviewShown
}

// Focus returns the focused area.
func (m *Model) Focus() Focus {
	return m.focus
}

// FocusedCode returns the focused code segment, if any.
func (m *Model) FocusedCode() (RegionKey, bool) {
	return m.focusKey, m.focusKey.MessageID != ""
}

// IsStreaming reports whether a reply is in progress.
func (m *Model) IsStreaming() bool {
	return m.streamID != ""
}

// SidebarOpen reports whether the session list is open.
func (m *Model) SidebarOpen() bool {
	return m.sidebarOpen
}

// PinnedCode returns the code segment shown in the sticky bar.
func (m *Model) PinnedCode() (RegionKey, bool) {
	r, ok := m.pins.Current()
	return r.Key, ok
}

// =============================================================================
// TICKS
// =============================================================================

func animTickCmd() tea.Cmd {
	return tea.Tick(styles.AnimationInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg{Time: t}
	})
}
