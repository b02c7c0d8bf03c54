// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/vibes-tui/internal/util"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Type is the sender of a message.
type Type string

const (
	TypeUser Type = "user"
	TypeAI   Type = "ai"
)

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the sender.
func (t Type) DisplayName() string {
	switch t {
	case TypeUser:
		return "You"
	case TypeAI:
		return "Vibes"
	default:
		return string(t)
	}
}

// Message is a single chat message document.
type Message struct {
	ID        string    `json:"_id"`
	SessionID string    `json:"session_id"`
	Type      Type      `json:"type"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"created_at"`

	// Streaming state (not persisted).
	// strings.Builder keeps appends linear while tokens arrive.
	IsStreaming   bool            `json:"-"`
	streamContent strings.Builder `json:"-"`

	// Generation metrics (AI messages only)
	TokenCount    int           `json:"token_count,omitempty"`
	TTFT          time.Duration `json:"ttft_ns,omitempty"`
	TotalDuration time.Duration `json:"total_duration_ns,omitempty"`
	TokensPerSec  float64       `json:"tokens_per_sec,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) *Message {
	return &Message{
		ID:        newID(),
		Type:      TypeUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAIMessage creates an AI message that is still streaming.
func NewAIMessage() *Message {
	return &Message{
		ID:          newID(),
		Type:        TypeAI,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// AppendToken appends a token to a streaming message.
// Tokens arriving after FinalizeStream are dropped.
func (m *Message) AppendToken(token string) {
	if m.IsStreaming {
		m.streamContent.WriteString(token)
	}
}

// FinalizeStream ends streaming and records statistics.
func (m *Message) FinalizeStream(stats *Statistics) {
	if !m.IsStreaming {
		return
	}

	m.Text = m.streamContent.String()
	m.streamContent.Reset()
	m.IsStreaming = false

	if stats != nil {
		m.TTFT = stats.TTFT
		m.TotalDuration = stats.TotalDuration
		m.TokenCount = stats.CompletionTokens
		m.TokensPerSec = stats.TokensPerSecond
	}
}

// DisplayText returns the text so far, streaming or final.
func (m *Message) DisplayText() string {
	if m.IsStreaming {
		return m.streamContent.String()
	}
	return m.Text
}

// Preview returns a one-line preview of at most maxWidth columns.
func (m *Message) Preview(maxWidth int) string {
	line := strings.Join(strings.Fields(m.DisplayText()), " ")
	return util.TruncateWidth(line, maxWidth)
}

// IsEmpty reports whether the message has no text yet.
func (m *Message) IsEmpty() bool {
	return len(m.Text) == 0 && m.streamContent.Len() == 0
}

// IsAI reports whether the message came from the model.
func (m *Message) IsAI() bool {
	return m.Type == TypeAI
}

// FormatStats returns "2.5s | 128 tokens | 51.2 tok/s | TTFT 234ms" for a
// finished AI message, or "".
func (m *Message) FormatStats() string {
	if m.Type != TypeAI || m.TotalDuration == 0 {
		return ""
	}
	return formatStats(m.TotalDuration, m.TokenCount, m.TokensPerSec, m.TTFT)
}

// =============================================================================
// STATISTICS TYPE
// =============================================================================

// Statistics holds timing and token count information for a generation.
type Statistics struct {
	StartTime      time.Time
	FirstTokenTime time.Time
	EndTime        time.Time

	CompletionTokens int

	// Derived on Finalize
	TTFT            time.Duration
	TotalDuration   time.Duration
	TokensPerSecond float64
}

// NewStatistics creates a new Statistics with the start time set.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// RecordFirstToken records when the first token was received.
func (s *Statistics) RecordFirstToken() {
	if s.FirstTokenTime.IsZero() {
		s.FirstTokenTime = time.Now()
		s.TTFT = s.FirstTokenTime.Sub(s.StartTime)
	}
}

// Finalize computes the final statistics.
func (s *Statistics) Finalize(tokenCount int) {
	s.EndTime = time.Now()
	s.CompletionTokens = tokenCount
	s.TotalDuration = s.EndTime.Sub(s.StartTime)

	if s.TotalDuration > 0 {
		s.TokensPerSecond = float64(tokenCount) / s.TotalDuration.Seconds()
	}
}

// Format returns a formatted string of the statistics.
func (s *Statistics) Format() string {
	return formatStats(s.TotalDuration, s.CompletionTokens, s.TokensPerSecond, s.TTFT)
}

// =============================================================================
// HELPERS
// =============================================================================

func newID() string {
	return uuid.NewString()
}

func formatStats(total time.Duration, tokens int, tps float64, ttft time.Duration) string {
	return formatDuration(total) + " | " +
		strconv.Itoa(tokens) + " tokens | " +
		strconv.FormatFloat(tps, 'f', 1, 64) + " tok/s | " +
		"TTFT " + strconv.FormatInt(ttft.Milliseconds(), 10) + "ms"
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	}
	return strconv.FormatFloat(d.Seconds(), 'f', 1, 64) + "s"
}
