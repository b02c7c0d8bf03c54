// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// wordWrap wraps text at word boundaries, hard-wrapping words longer than
// width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
