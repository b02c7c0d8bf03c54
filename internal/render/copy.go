// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/vibes-tui/internal/segment"
)

// Clipboard is the write side of a system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// CopyText picks what a copy action puts on the clipboard: the segment's
// own content, or the whole raw message when the modifier is held and raw
// text is available.
func CopyText(seg segment.Segment, raw string, withModifier bool) string {
	if withModifier && raw != "" {
		return raw
	}
	return seg.Content
}

// Copy writes the chosen text to cb and returns it.
func Copy(cb Clipboard, seg segment.Segment, raw string, withModifier bool) (string, error) {
	text := CopyText(seg, raw, withModifier)
	if err := cb.WriteAll(text); err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	return text, nil
}
