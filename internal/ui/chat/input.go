// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file handles prompt submission and the life of a reply: system
// prompt assembly, streaming, and saving the finished message.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/prompts"
	"github.com/jeranaias/vibes-tui/internal/storage"
	"github.com/jeranaias/vibes-tui/internal/ui/components"
)

// =============================================================================
// SUBMIT
// =============================================================================

// submitInput sends the prompt: the user message and an empty streaming
// reply are added, then the system prompt is assembled.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.streamID != "" {
		return m, nil
	}
	text, ok := m.input.Submit()
	if !ok {
		return m, nil
	}

	if m.conv == nil {
		m.session = storage.NewSession()
		m.conv = model.NewConversation(m.session.ID)
	}
	userMsg := m.conv.AddUserMessage(text)
	aiMsg := m.conv.StartAIMessage()
	m.streamID = aiMsg.ID
	m.session.Title = m.conv.Title

	log.Info().
		Str("session", m.session.ID).
		Str("message", aiMsg.ID).
		Int("prompt_len", len(text)).
		Msg("prompt submitted")

	m.layout()
	cmds := []tea.Cmd{
		m.status.SetStatus(components.StatusPreparing),
		m.saveCmd(*m.session, userMsg),
		m.buildPromptCmd(aiMsg.ID, *m.session),
		m.refresh(),
	}
	m.viewport.GotoBottom()
	m.scrolled()
	return m, tea.Batch(cmds...)
}

// buildPromptCmd assembles the system prompt off the UI goroutine.
func (m *Model) buildPromptCmd(messageID string, sess storage.Session) tea.Cmd {
	builder := m.prompts
	modelName := m.cfg.Model
	return func() tea.Msg {
		if builder == nil {
			return PromptReadyMsg{MessageID: messageID}
		}
		prompt, err := builder.MakeBaseSystemPrompt(context.Background(), modelName, &sess)
		return PromptReadyMsg{MessageID: messageID, Prompt: prompt, Err: err}
	}
}

// =============================================================================
// STREAM LIFECYCLE
// =============================================================================

func (m Model) handlePromptReady(msg PromptReadyMsg) (tea.Model, tea.Cmd) {
	if msg.MessageID != m.streamID || m.conv == nil {
		return m, nil
	}
	aiMsg := m.conv.FindByID(msg.MessageID)
	if aiMsg == nil {
		return m, nil
	}

	if msg.Err != nil {
		// The reply never starts; the empty message shows the placeholder.
		aiMsg.FinalizeStream(nil)
		m.streamID = ""
		m.status.SetStatus(components.StatusError)
		return m, tea.Batch(m.showError("Could not load docs", msg.Err), m.refresh())
	}

	req := Request{
		Model:        m.cfg.Model,
		SystemPrompt: msg.Prompt,
		History:      append([]*model.Message(nil), m.conv.Messages[:len(m.conv.Messages)-1]...),
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)
	m.buffer = NewStreamingBufferWithConfig(m.cfg.Stream.BatchSize, m.cfg.Stream.MaxFPS)

	log.Debug().
		Str("message", msg.MessageID).
		Str("model", req.Model).
		Int("system_prompt_len", len(req.SystemPrompt)).
		Msg("stream started")

	return m, tea.Batch(
		m.status.SetStatus(components.StatusStreaming),
		streamCmd(ctx, m.streamer, req, msg.MessageID, m.buffer),
		streamTickCmd(m.cfg.Stream.MaxFPS),
	)
}

// handleStreamTick moves buffered tokens into the reply once per frame.
func (m Model) handleStreamTick(_ StreamTickMsg) (tea.Model, tea.Cmd) {
	if m.streamID == "" {
		return m, nil
	}
	var cmd tea.Cmd
	if content, ok := m.buffer.Flush(); ok {
		if aiMsg := m.conv.FindByID(m.streamID); aiMsg != nil {
			aiMsg.AppendToken(content)
		}
		cmd = m.refresh()
	}
	return m, tea.Batch(cmd, streamTickCmd(m.cfg.Stream.MaxFPS))
}

func (m Model) handleStreamComplete(msg StreamCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.MessageID != m.streamID || m.conv == nil {
		return m, nil
	}
	aiMsg := m.conv.FindByID(msg.MessageID)
	m.streamID = ""
	m.cancelMgr.cancel()
	if aiMsg == nil {
		return m, nil
	}

	if content, ok := m.buffer.ForceFlush(); ok {
		aiMsg.AppendToken(content)
	}
	aiMsg.FinalizeStream(msg.Stats)

	var cmds []tea.Cmd
	switch {
	case msg.Err == nil:
		cmds = append(cmds, m.status.SetStatus(components.StatusReady))
	case isCancel(msg.Err):
		cmds = append(cmds, m.status.SetStatus(components.StatusReady), m.showToast("Reply stopped"))
	default:
		cmds = append(cmds, m.status.SetStatus(components.StatusError), m.showError("Reply failed", msg.Err))
	}

	if stats := msg.Stats; stats != nil {
		log.Info().
			Str("message", aiMsg.ID).
			Int("tokens", stats.CompletionTokens).
			Dur("ttft", stats.TTFT).
			Dur("duration", stats.TotalDuration).
			Msg("stream complete")
	}

	var save tea.Cmd
	if !aiMsg.IsEmpty() {
		save = m.saveCmd(*m.session, aiMsg)
	}
	cmds = append(cmds, m.refresh(), tea.Sequence(save, m.loadSessionsCmd()))
	return m, tea.Batch(cmds...)
}

// saveCmd stores the session document and a message.
func (m *Model) saveCmd(sess storage.Session, msg *model.Message) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		if err := store.PutSession(ctx, &sess); err != nil {
			return SaveErrorMsg{Err: err}
		}
		if err := store.PutMessage(ctx, msg); err != nil {
			return SaveErrorMsg{Err: err}
		}
		return nil
	}
}

// stylePrompt returns the style the next reply will use.
func (m *Model) stylePrompt() string {
	if m.session != nil && m.session.StylePrompt != "" {
		return m.session.StylePrompt
	}
	if m.prompts != nil && m.prompts.StylePrompt != "" {
		return m.prompts.StylePrompt
	}
	return prompts.DefaultStylePrompt
}
