// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file skips redundant viewport updates. Every animation frame asks
// for a transcript refresh; only a changed transcript is pushed into the
// viewport and re-synced with the sticky tracker.
package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// =============================================================================
// VIEWPORT OPTIMIZER
// =============================================================================

// ViewportOptimizer remembers a hash of the last transcript set on the
// viewport.
type ViewportOptimizer struct {
	mu              sync.Mutex
	lastContentHash string
	primed          bool
	dirty           bool
	updateCount     uint64
	skipCount       uint64
}

// NewViewportOptimizer creates an optimizer whose first update always
// proceeds.
func NewViewportOptimizer() *ViewportOptimizer {
	return &ViewportOptimizer{dirty: true}
}

// ShouldUpdate reports whether content differs from the last accepted
// content, and accepts it if so.
func (vo *ViewportOptimizer) ShouldUpdate(content string) bool {
	vo.mu.Lock()
	defer vo.mu.Unlock()

	vo.updateCount++
	hash := hashContent(content)
	if vo.primed && hash == vo.lastContentHash {
		vo.skipCount++
		return false
	}
	vo.lastContentHash = hash
	vo.primed = true
	vo.dirty = true
	return true
}

// MarkClean records that the accepted content was applied.
func (vo *ViewportOptimizer) MarkClean() {
	vo.mu.Lock()
	defer vo.mu.Unlock()
	vo.dirty = false
}

// IsDirty reports whether accepted content is still waiting to be applied.
func (vo *ViewportOptimizer) IsDirty() bool {
	vo.mu.Lock()
	defer vo.mu.Unlock()
	return vo.dirty
}

// ForceUpdate makes the next ShouldUpdate succeed, e.g. after a resize or
// a session switch.
func (vo *ViewportOptimizer) ForceUpdate() {
	vo.mu.Lock()
	defer vo.mu.Unlock()
	vo.primed = false
	vo.dirty = true
}

// GetStats returns the update count, the skipped count and the skipped
// share in percent.
func (vo *ViewportOptimizer) GetStats() (total, skipped uint64, efficiency float64) {
	vo.mu.Lock()
	defer vo.mu.Unlock()
	total, skipped = vo.updateCount, vo.skipCount
	if total > 0 {
		efficiency = float64(skipped) / float64(total) * 100
	}
	return total, skipped, efficiency
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
