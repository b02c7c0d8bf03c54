// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vibes-tui/internal/config"
	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/storage"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestModel(t *testing.T, width int) (Model, *storage.Store, *fakeClipboard) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "vibes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cb := &fakeClipboard{}
	m := New(Options{
		Config:    config.Default(),
		Store:     store,
		Streamer:  NewReplayStreamer("", 0),
		Clipboard: cb,
	})
	t.Cleanup(func() { _ = m.Close() })

	m, _ = update(m, tea.WindowSizeMsg{Width: width, Height: 40})
	return m, store, cb
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sendPrompt submits prompt and completes the reply with text, driving the
// model through the same messages the runtime would deliver.
func sendPrompt(t *testing.T, m Model, prompt, text string) Model {
	t.Helper()
	m.input.SetValue(prompt)
	m, _ = update(m, keyMsg("enter"))
	require.True(t, m.IsStreaming())

	aiID := m.streamID
	m, _ = update(m, PromptReadyMsg{MessageID: aiID})
	require.True(t, m.IsStreaming())

	for _, tok := range Tokenize(text) {
		m.buffer.Write(tok)
	}
	stats := model.NewStatistics()
	stats.Finalize(len(Tokenize(text)))
	m, _ = update(m, StreamCompleteMsg{MessageID: aiID, Stats: stats})
	require.False(t, m.IsStreaming())
	return m
}

// =============================================================================
// TESTS
// =============================================================================

func TestModel_InitialView(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, "Loading...", m.View())

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Generate apps in seconds.")
	assert.Equal(t, FocusInput, m.Focus())
	assert.Nil(t, m.Conversation())
}

func TestModel_SubmitAndStream(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	reply := DemoReply("Idea board")

	m.input.SetValue("Idea board")
	m, _ = update(m, keyMsg("enter"))

	conv := m.Conversation()
	require.NotNil(t, conv)
	require.Equal(t, 2, conv.Len())
	assert.Equal(t, model.TypeUser, conv.Messages[0].Type)
	assert.True(t, conv.Messages[1].IsStreaming)
	assert.Equal(t, "Idea board", m.Session().Title)

	// A second submit while streaming is ignored.
	m.input.SetValue("again")
	m, _ = update(m, keyMsg("enter"))
	assert.Equal(t, 2, conv.Len())

	aiID := m.streamID
	m, _ = update(m, PromptReadyMsg{MessageID: aiID})

	// Enough tokens to pass the batch threshold.
	toks := Tokenize(reply)
	half := len(toks) / 2
	for _, tok := range toks[:half] {
		m.buffer.Write(tok)
	}
	m, _ = update(m, StreamTickMsg{})
	ai := conv.FindByID(aiID)
	assert.Equal(t, strings.Join(toks[:half], ""), ai.DisplayText())

	for _, tok := range toks[half:] {
		m.buffer.Write(tok)
	}
	m, _ = update(m, StreamCompleteMsg{MessageID: aiID, Stats: model.NewStatistics()})

	assert.False(t, ai.IsStreaming)
	assert.Equal(t, reply, ai.DisplayText())
	// The reply opens with a title, so its card is the second visible segment.
	require.Len(t, m.transcript.Regions, 1)
	assert.Equal(t, RegionKey{MessageID: aiID, Index: 1}, m.transcript.Regions[0].Key)
	assert.Contains(t, m.View(), "App.jsx")
}

func TestModel_StaleStreamMessagesIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m.input.SetValue("first")
	m, _ = update(m, keyMsg("enter"))

	m, cmd := update(m, StreamCompleteMsg{MessageID: "someone-else"})
	assert.Nil(t, cmd)
	assert.True(t, m.IsStreaming())

	m, cmd = update(m, PromptReadyMsg{MessageID: "someone-else"})
	assert.Nil(t, cmd)
	assert.True(t, m.IsStreaming())
}

func TestModel_PromptErrorEndsReply(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m.input.SetValue("docs please")
	m, _ = update(m, keyMsg("enter"))
	aiID := m.streamID

	m, _ = update(m, PromptReadyMsg{MessageID: aiID, Err: errors.New("offline")})
	assert.False(t, m.IsStreaming())

	ai := m.Conversation().FindByID(aiID)
	require.NotNil(t, ai)
	assert.False(t, ai.IsStreaming)
	assert.True(t, ai.IsEmpty())
}

func TestModel_CancelStream(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m.input.SetValue("stop me")
	m, _ = update(m, keyMsg("enter"))
	aiID := m.streamID
	m, _ = update(m, PromptReadyMsg{MessageID: aiID})

	m, _ = update(m, keyMsg("esc"))
	m, _ = update(m, StreamCompleteMsg{MessageID: aiID, Err: context.Canceled})
	assert.False(t, m.IsStreaming())
	assert.Equal(t, "Reply stopped", m.toasts.Toasts()[0].Message)
}

func TestModel_SelectThenPreview(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m = sendPrompt(t, m, "Idea board", DemoReply("Idea board"))
	aiID := m.Conversation().LastAI().ID

	// Tab from the input focuses the newest card.
	m, _ = update(m, keyMsg("tab"))
	key, ok := m.FocusedCode()
	require.True(t, ok)
	assert.Equal(t, aiID, key.MessageID)
	assert.Equal(t, FocusTranscript, m.Focus())

	// First activation selects only.
	m, _ = update(m, keyMsg("enter"))
	assert.Equal(t, aiID, m.SelectedResponseID())
	assert.False(t, m.PreviewShown())

	// Second activation on the selected message opens the preview.
	m, _ = update(m, keyMsg("enter"))
	assert.True(t, m.PreviewShown())
	assert.True(t, m.previewFullScreen())
	assert.Contains(t, m.View(), "App.jsx")

	// Esc closes it again.
	m, _ = update(m, keyMsg("esc"))
	assert.False(t, m.PreviewShown())
	assert.Equal(t, aiID, m.SelectedResponseID())
}

func TestModel_PreviewFollowsLatestReply(t *testing.T) {
	m, _, _ := newTestModel(t, 140)
	require.Greater(t, m.previewWidth, 0)
	assert.True(t, m.preview.Empty())

	m = sendPrompt(t, m, "Idea board", DemoReply("Idea board"))
	require.False(t, m.preview.Empty())
	assert.Contains(t, m.preview.Segments[0].Content, "useFireproof")
}

func TestModel_CopyKeys(t *testing.T) {
	m, _, cb := newTestModel(t, 100)
	reply := DemoReply("Idea board")
	m = sendPrompt(t, m, "Idea board", reply)

	m, _ = update(m, keyMsg("tab"))
	m, _ = update(m, keyMsg("y"))
	assert.Contains(t, cb.text, "export default function App()")
	assert.NotContains(t, cb.text, "```")
	assert.Equal(t, "Copied App.jsx", m.toasts.Toasts()[0].Message)

	m, _ = update(m, keyMsg("Y"))
	assert.Equal(t, reply, cb.text)

	cb.err = errors.New("no clipboard")
	m, _ = update(m, keyMsg("y"))
	// Newest toast first.
	assert.Contains(t, m.toasts.Toasts()[0].Message, "Copy failed")
}

func TestModel_NewChatResets(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m = sendPrompt(t, m, "Idea board", DemoReply("Idea board"))
	m, _ = update(m, keyMsg("tab"))
	m, _ = update(m, keyMsg("enter"))
	require.NotEmpty(t, m.SelectedResponseID())
	require.Equal(t, 1, m.pins.Active())

	m, _ = update(m, keyMsg("ctrl+n"))
	assert.Nil(t, m.Conversation())
	assert.Nil(t, m.Session())
	assert.Empty(t, m.SelectedResponseID())
	assert.Equal(t, 0, m.pins.Active())
	assert.Equal(t, FocusInput, m.Focus())
	_, ok := m.FocusedCode()
	assert.False(t, ok)
}

func TestModel_TypingInTranscriptFocusesInput(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m = sendPrompt(t, m, "Idea board", DemoReply("Idea board"))

	m, _ = update(m, keyMsg("tab"))
	require.Equal(t, FocusTranscript, m.Focus())

	m, _ = update(m, keyMsg("h"))
	assert.Equal(t, FocusInput, m.Focus())
	assert.Equal(t, "h", m.input.Value())
}

func TestModel_SidebarSessions(t *testing.T) {
	m, store, _ := newTestModel(t, 100)
	ctx := context.Background()

	sess := storage.NewSession()
	sess.Title = "Recipe box"
	require.NoError(t, store.PutSession(ctx, sess))
	conv := model.NewConversation(sess.ID)
	require.NoError(t, store.PutMessage(ctx, conv.AddUserMessage("Recipe box")))

	m, _ = update(m, keyMsg("ctrl+s"))
	assert.True(t, m.SidebarOpen())
	assert.Equal(t, FocusSidebar, m.Focus())

	m, _ = update(m, m.loadSessionsCmd()())
	require.Len(t, m.sidebar.Sessions, 1)

	// Star it.
	m, cmd := update(m, keyMsg("*"))
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	starred, err := store.ListSessions(ctx, true)
	require.NoError(t, err)
	require.Len(t, starred, 1)
	assert.Equal(t, sess.ID, starred[0].ID)

	// Favorites filter.
	m, cmd = update(m, keyMsg("f"))
	assert.True(t, m.sidebar.JustFavorites)
	m, _ = update(m, cmd())
	assert.Len(t, m.sidebar.Sessions, 1)

	// Open it.
	m, _ = update(m, m.openSessionCmd(sess.ID)())
	require.NotNil(t, m.Conversation())
	assert.Equal(t, sess.ID, m.Session().ID)
	assert.Equal(t, 1, m.Conversation().Len())

	// Delete it; the open chat goes with it.
	m, _ = update(m, SessionDeletedMsg{SessionID: sess.ID})
	assert.Nil(t, m.Conversation())
}

func TestModel_NarrowSidebarTakesBody(t *testing.T) {
	m, _, _ := newTestModel(t, 60)
	m, _ = update(m, keyMsg("ctrl+s"))
	assert.True(t, m.SidebarOpen())
	assert.False(t, m.showSidebar)
	assert.Contains(t, m.View(), storage.EmptyListText(false))
}

func TestModel_ConfigReload(t *testing.T) {
	m, _, _ := newTestModel(t, 100)

	cfg := config.Default()
	cfg.UI.Theme = "light"
	cfg.UI.StickyOffset = 3
	cfg.Stream.BatchSize = 5
	m, _ = update(m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, cfg, m.cfg)
	batch, _, _ := m.buffer.GetConfig()
	assert.Equal(t, 5, batch)
	assert.Equal(t, "Config reloaded", m.toasts.Toasts()[0].Message)
}
