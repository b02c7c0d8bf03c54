// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "time"

// =============================================================================
// BLINK AND PULSE
// =============================================================================

// AnimationInterval is the tick that drives every frame-based effect.
const AnimationInterval = 530 * time.Millisecond

// StreamingCursor frames for the indicator after a streaming message.
var StreamingCursor = []string{"▍", " "}

// SelectedDot frames pulse the status dot of the selected response.
var SelectedDot = []string{"●", "◉"}

// Frame returns frames[tick] wrapping around. Empty frames yield "".
func Frame(frames []string, tick int) string {
	if len(frames) == 0 {
		return ""
	}
	if tick < 0 {
		tick = -tick
	}
	return frames[tick%len(frames)]
}

// =============================================================================
// BOX DRAWING
// =============================================================================

// BoxChars for hand-drawn separators.
var BoxChars = struct {
	Horizontal string
	Vertical   string
	Ellipsis   string
}{
	Horizontal: "─",
	Vertical:   "│",
	Ellipsis:   "...",
}
