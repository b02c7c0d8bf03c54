// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements reply streaming. A Streamer produces tokens on its
// own goroutine; they land in a StreamingBuffer and are flushed into the
// message on a frame tick, so the transcript is re-parsed at most once per
// frame however fast tokens arrive.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/jeranaias/vibes-tui/internal/model"
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

const (
	defaultBatchSize = 15
	defaultMaxFPS    = 30
	maxFPSLimit      = 240
)

// StreamingBuffer batches tokens between frames. It flushes when batchSize
// tokens are pending or a frame interval has passed since the last flush.
//
// Write is called from the streaming goroutine and Flush from the Bubble
// Tea loop, so every operation takes the mutex.
type StreamingBuffer struct {
	mu         sync.Mutex
	buffer     strings.Builder
	tokenCount int
	lastFlush  time.Time

	batchSize  int
	maxFPS     int
	minFlushMs time.Duration
}

// NewStreamingBuffer creates a buffer flushing every 15 tokens or 30 times
// a second.
func NewStreamingBuffer() *StreamingBuffer {
	return NewStreamingBufferWithConfig(defaultBatchSize, defaultMaxFPS)
}

// NewStreamingBufferWithConfig creates a buffer with custom thresholds.
// Out of range values fall back to the defaults.
func NewStreamingBufferWithConfig(batchSize, maxFPS int) *StreamingBuffer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxFPS <= 0 || maxFPS > maxFPSLimit {
		maxFPS = defaultMaxFPS
	}
	return &StreamingBuffer{
		batchSize:  batchSize,
		maxFPS:     maxFPS,
		minFlushMs: frameInterval(maxFPS),
		lastFlush:  time.Now(),
	}
}

// Write adds a token.
func (sb *StreamingBuffer) Write(token string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.buffer.WriteString(token)
	sb.tokenCount++
}

// Flush returns the pending text if a threshold was reached.
func (sb *StreamingBuffer) Flush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.shouldFlushLocked() {
		return "", false
	}
	return sb.drainLocked(), true
}

// ShouldFlush reports whether Flush would return text.
func (sb *StreamingBuffer) ShouldFlush() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.shouldFlushLocked()
}

func (sb *StreamingBuffer) shouldFlushLocked() bool {
	if sb.buffer.Len() == 0 {
		return false
	}
	return sb.tokenCount >= sb.batchSize || time.Since(sb.lastFlush) >= sb.minFlushMs
}

// ForceFlush returns whatever is pending, ignoring thresholds. Used when a
// stream ends.
func (sb *StreamingBuffer) ForceFlush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.buffer.Len() == 0 {
		return "", false
	}
	return sb.drainLocked(), true
}

func (sb *StreamingBuffer) drainLocked() string {
	content := sb.buffer.String()
	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = time.Now()
	return content
}

// Reset drops pending tokens.
func (sb *StreamingBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.buffer.Reset()
	sb.tokenCount = 0
	sb.lastFlush = time.Now()
}

// Pending returns the number of tokens waiting to be flushed.
func (sb *StreamingBuffer) Pending() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.tokenCount
}

// GetConfig returns the current thresholds.
func (sb *StreamingBuffer) GetConfig() (batchSize, maxFPS int, minFlushMs time.Duration) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.batchSize, sb.maxFPS, sb.minFlushMs
}

// SetBatchSize updates the token threshold. Non-positive sizes are ignored.
func (sb *StreamingBuffer) SetBatchSize(size int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if size > 0 {
		sb.batchSize = size
	}
}

// SetMaxFPS updates the frame cap. Out of range values are ignored.
func (sb *StreamingBuffer) SetMaxFPS(fps int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if fps > 0 && fps <= maxFPSLimit {
		sb.maxFPS = fps
		sb.minFlushMs = frameInterval(fps)
	}
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}

// streamTickCmd schedules the next flush one frame from now.
func streamTickCmd(fps int) tea.Cmd {
	if fps <= 0 || fps > maxFPSLimit {
		fps = defaultMaxFPS
	}
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}

// =============================================================================
// STREAMERS
// =============================================================================

// Request is everything a Streamer gets to produce a reply.
type Request struct {
	Model        string
	SystemPrompt string

	// History is the conversation so far, the new prompt last.
	History []*model.Message
}

// Prompt returns the text of the last user message.
func (r Request) Prompt() string {
	for i := len(r.History) - 1; i >= 0; i-- {
		if r.History[i].Type == model.TypeUser {
			return r.History[i].DisplayText()
		}
	}
	return ""
}

// Streamer produces a reply one token at a time. Stream returns when the
// reply is complete or ctx is cancelled.
type Streamer interface {
	Stream(ctx context.Context, req Request, emit func(token string)) error
}

// ReplayStreamer plays back fixed text at a steady token rate. With no text
// it answers every prompt with a small generated app.
type ReplayStreamer struct {
	Text    string
	limiter *rate.Limiter
}

// NewReplayStreamer creates a streamer emitting tokensPerSec tokens a
// second. A non-positive rate streams as fast as the reader keeps up.
func NewReplayStreamer(text string, tokensPerSec float64) *ReplayStreamer {
	return &ReplayStreamer{
		Text:    text,
		limiter: rate.NewLimiter(limitFor(tokensPerSec), 1),
	}
}

// SetRate changes the pace, also for a stream in progress.
func (r *ReplayStreamer) SetRate(tokensPerSec float64) {
	r.limiter.SetLimit(limitFor(tokensPerSec))
}

func limitFor(tokensPerSec float64) rate.Limit {
	if tokensPerSec <= 0 {
		return rate.Inf
	}
	return rate.Limit(tokensPerSec)
}

// LoadReplayStreamer reads the reply from a file.
func LoadReplayStreamer(path string, tokensPerSec float64) (*ReplayStreamer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	return NewReplayStreamer(string(data), tokensPerSec), nil
}

// Stream implements Streamer.
func (r *ReplayStreamer) Stream(ctx context.Context, req Request, emit func(string)) error {
	text := r.Text
	if text == "" {
		text = DemoReply(req.Prompt())
	}
	for _, tok := range Tokenize(text) {
		if err := r.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		emit(tok)
	}
	return nil
}

// Tokenize splits text into word tokens, each keeping the whitespace that
// follows it. Joining the tokens gives back text.
func Tokenize(text string) []string {
	var toks []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if !space && inSpace {
			toks = append(toks, text[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(text) {
		toks = append(toks, text[start:])
	}
	return toks
}

// DemoReply is the canned answer of a ReplayStreamer without text.
func DemoReply(prompt string) string {
	title := strings.TrimSpace(prompt)
	if title == "" {
		title = "Your app"
	}
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("Here is a small app that keeps a list of ideas, saves them with Fireproof and updates live.\n\n")
	sb.WriteString("```jsx\n")
	sb.WriteString(demoComponent)
	sb.WriteString("```\n\n")
	sb.WriteString("Type an idea and press *Add*. Every entry is stored as its own document, so the list survives reloads and syncs between tabs.\n\n")
	sb.WriteString("**Ideas for next steps:**\n\n")
	sb.WriteString("- Tag ideas and filter by tag\n")
	sb.WriteString("- Ask `callAI` to expand an idea into a plan\n")
	sb.WriteString("- Drag ideas to reorder them\n")
	return sb.String()
}

const demoComponent = `import React, { useState } from "react"
import { useFireproof } from "use-fireproof"

export default function App() {
  const { database, useLiveQuery } = useFireproof("ideas")
  const [text, setText] = useState("")
  const ideas = useLiveQuery("createdAt", { descending: true }).docs

  async function add() {
    if (!text.trim()) return
    await database.put({ text, createdAt: Date.now() })
    setText("")
  }

  return (
    <div className="p-4 max-w-md mx-auto">
      <h1 className="text-2xl font-bold">Ideas</h1>
      <div className="flex gap-2 my-4">
        <input className="border flex-1 p-2" value={text} onChange={e => setText(e.target.value)} />
        <button className="bg-pink-300 px-4" onClick={add}>Add</button>
      </div>
      <ul>
        {ideas.map(doc => <li key={doc._id}>{doc.text}</li>)}
      </ul>
    </div>
  )
}
`

// =============================================================================
// STREAM COMMANDS
// =============================================================================

// streamCmd runs streamer on its own goroutine, writing into buf. The
// returned command resolves to StreamCompleteMsg when the stream ends.
func streamCmd(ctx context.Context, streamer Streamer, req Request, messageID string, buf *StreamingBuffer) tea.Cmd {
	done := make(chan StreamCompleteMsg, 1)

	go func() {
		stats := model.NewStatistics()
		tokens := 0
		err := streamer.Stream(ctx, req, func(tok string) {
			if tokens == 0 {
				stats.RecordFirstToken()
			}
			tokens++
			buf.Write(tok)
		})
		stats.Finalize(tokens)
		done <- StreamCompleteMsg{MessageID: messageID, Stats: stats, Err: err}
	}()

	return func() tea.Msg {
		return <-done
	}
}

// isCancel reports whether a stream ended because the user stopped it.
func isCancel(err error) bool {
	return errors.Is(err, context.Canceled)
}
