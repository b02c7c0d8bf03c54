// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat interface:
//   - Streaming: prompt assembly, token pacing and completion
//   - Sessions: listing, opening, favoriting and deleting chats
//   - Sticky: pin transitions of code segments
//   - Animation and configuration reloads
package chat

import (
	"time"

	"github.com/jeranaias/vibes-tui/internal/config"
	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/sticky"
	"github.com/jeranaias/vibes-tui/internal/storage"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// PromptReadyMsg carries the system prompt for a reply that is waiting to
// stream.
type PromptReadyMsg struct {
	MessageID string
	Prompt    string
	Err       error
}

// StreamTickMsg flushes buffered tokens into the streaming message.
type StreamTickMsg struct {
	Time time.Time
}

// StreamCompleteMsg signals that streaming has finished.
type StreamCompleteMsg struct {
	MessageID string
	Stats     *model.Statistics
	Err       error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionsLoadedMsg delivers the sidebar list.
type SessionsLoadedMsg struct {
	Sessions []storage.Session
	Err      error
}

// SessionOpenedMsg delivers a stored chat.
type SessionOpenedMsg struct {
	Session      *storage.Session
	Conversation *model.Conversation
	Err          error
}

// FavoriteToggledMsg reports the new favorite flag of a session.
type FavoriteToggledMsg struct {
	SessionID string
	Favorite  bool
	Err       error
}

// SessionDeletedMsg reports a removed session.
type SessionDeletedMsg struct {
	SessionID string
	Err       error
}

// SaveErrorMsg reports a failed write to the store.
type SaveErrorMsg struct {
	Err error
}

// =============================================================================
// STICKY MESSAGES
// =============================================================================

// StickyMsg reports that a code segment was pinned or released.
type StickyMsg struct {
	Key    RegionKey
	Pinned bool

	sub *sticky.Subscription
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// AnimTickMsg advances the streaming cursor and the selected dot.
type AnimTickMsg struct {
	Time time.Time
}

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}
