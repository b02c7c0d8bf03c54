// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"sync"

	"github.com/jeranaias/vibes-tui/internal/segment"
)

// memoKey is everything a message's display depends on.
type memoKey struct {
	text      string
	streaming bool
	messageID string
	selected  string
}

// Renderer caches the DisplayModel of a single message and recomputes it
// only when the text, streaming flag, selection or message identity change.
// A buffer that shrinks is not special: it is a different key and is parsed
// from scratch.
type Renderer struct {
	mu     sync.Mutex
	key    memoKey
	model  DisplayModel
	parsed segment.Result
	valid  bool

	// parses counts real parses, for tests and the debug overlay.
	parses int
}

// NewRenderer creates an empty Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the DisplayModel for the given message state. The second
// return value is true when the model was recomputed.
func (r *Renderer) Render(text string, streaming bool, messageID, selectedID string) (DisplayModel, bool) {
	key := memoKey{text: text, streaming: streaming, messageID: messageID, selected: selectedID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.valid && r.key == key {
		return r.model, false
	}

	// Selection-only changes don't need a re-parse.
	if !r.valid || r.key.text != text {
		r.parsed = segment.Parse(text)
		r.parses++
	}

	r.model = Build(Input{
		Segments:           r.parsed.Segments,
		IsStreaming:        streaming,
		MessageID:          messageID,
		SelectedResponseID: selectedID,
		RawText:            text,
	})
	r.key = key
	r.valid = true
	return r.model, true
}

// Segments returns the last parse result, blank segments included.
func (r *Renderer) Segments() segment.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parsed
}

// Parses returns how many times the buffer has been parsed.
func (r *Renderer) Parses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parses
}

// Invalidate forces the next Render to recompute.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.valid = false
	r.mu.Unlock()
}

// Cache holds one Renderer per message ID.
type Cache struct {
	mu        sync.Mutex
	renderers map[string]*Renderer
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{renderers: make(map[string]*Renderer)}
}

// For returns the Renderer for messageID, creating it on first use.
func (c *Cache) For(messageID string) *Renderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.renderers[messageID]
	if !ok {
		r = NewRenderer()
		c.renderers[messageID] = r
	}
	return r
}

// Forget drops the Renderer for a message that is no longer shown.
func (c *Cache) Forget(messageID string) {
	c.mu.Lock()
	delete(c.renderers, messageID)
	c.mu.Unlock()
}

// Reset drops every Renderer, e.g. when switching sessions.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.renderers = make(map[string]*Renderer)
	c.mu.Unlock()
}

// Len returns the number of cached renderers.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.renderers)
}
