// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessage_Streaming(t *testing.T) {
	msg := NewAIMessage()
	require.True(t, msg.IsStreaming)
	assert.True(t, msg.IsEmpty())

	msg.AppendToken("Here is ")
	msg.AppendToken("code:\n```js\n")
	assert.Equal(t, "Here is code:\n```js\n", msg.DisplayText())
	assert.Empty(t, msg.Text, "text is only set on finalize")

	stats := NewStatistics()
	stats.RecordFirstToken()
	stats.Finalize(2)
	msg.FinalizeStream(stats)

	assert.False(t, msg.IsStreaming)
	assert.Equal(t, "Here is code:\n```js\n", msg.Text)
	assert.Equal(t, 2, msg.TokenCount)

	// Late tokens are dropped.
	msg.AppendToken("late")
	assert.Equal(t, "Here is code:\n```js\n", msg.DisplayText())

	// Finalizing twice is a no-op.
	msg.FinalizeStream(nil)
	assert.Equal(t, 2, msg.TokenCount)
}

func TestMessage_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewUserMessage("x").ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("a todo app\nwith   due dates and reminders")
	assert.Equal(t, "a todo app with due dates and reminders", msg.Preview(100))
	assert.Equal(t, "a todo...", msg.Preview(9))
}

func TestMessage_FormatStats(t *testing.T) {
	msg := NewAIMessage()
	msg.FinalizeStream(&Statistics{
		TTFT:             234 * time.Millisecond,
		TotalDuration:    2500 * time.Millisecond,
		CompletionTokens: 128,
		TokensPerSecond:  51.2,
	})
	assert.Equal(t, "2.5s | 128 tokens | 51.2 tok/s | TTFT 234ms", msg.FormatStats())

	assert.Empty(t, NewUserMessage("hi").FormatStats())
}

func TestType_DisplayName(t *testing.T) {
	assert.Equal(t, "You", TypeUser.DisplayName())
	assert.Equal(t, "Vibes", TypeAI.DisplayName())
	assert.Equal(t, "other", Type("other").DisplayName())
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_Flow(t *testing.T) {
	conv := NewConversation("sess-1")
	assert.True(t, conv.IsEmpty())
	assert.Equal(t, DefaultTitle, conv.DisplayTitle())

	user := conv.AddUserMessage("Build me a habit tracker")
	assert.Equal(t, "sess-1", user.SessionID)
	assert.Equal(t, "Build me a habit tracker", conv.Title)

	ai := conv.StartAIMessage()
	assert.True(t, conv.IsStreaming())
	assert.Same(t, ai, conv.Last())
	assert.Same(t, ai, conv.LastAI())
	assert.Same(t, user, conv.FindByID(user.ID))
	assert.Nil(t, conv.FindByID("missing"))

	ai.FinalizeStream(nil)
	assert.False(t, conv.IsStreaming())
	assert.Equal(t, 2, conv.Len())
}

func TestConversation_TitleNotOverwritten(t *testing.T) {
	conv := NewConversation("s")
	conv.SetTitle("Habit Tracker")
	conv.AddUserMessage("something else")
	assert.Equal(t, "Habit Tracker", conv.DisplayTitle())
}

func TestConversation_Prune(t *testing.T) {
	conv := NewConversation("s")
	for i := 0; i < MaxMessages+10; i++ {
		conv.AddMessage(NewUserMessage(strings.Repeat("x", i%5+1)))
	}
	assert.Equal(t, MaxMessages, conv.Len())
}

func TestConversation_EmptyAccessors(t *testing.T) {
	conv := NewConversation("s")
	assert.Nil(t, conv.Last())
	assert.Nil(t, conv.LastAI())
	assert.False(t, conv.IsStreaming())
}
