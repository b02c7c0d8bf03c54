// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns parsed segments plus UI flags into a DisplayModel.
//
// Everything here is presentation-local state derived from the segment list:
// selection, readiness of code blocks, line counts, placeholder and streaming
// indicator visibility. Build is a pure reducer; Renderer adds per-message
// memoization on top so unchanged messages are not re-parsed on every frame.
package render

import (
	"strings"

	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/util"
)

// Placeholder is shown for a finished message with nothing visible in it.
const Placeholder = "Waiting for response..."

// CopyLabel is the filename shown on every code segment's copy button.
const CopyLabel = "App.jsx"

// PreviewLines is how many lines of a code segment the collapsed card shows.
const PreviewLines = 3

// readyThreshold is the segment count past which code is treated as stable
// while a stream is still running.
const readyThreshold = 2

// Input carries everything the reducer depends on.
type Input struct {
	Segments           []segment.Segment
	IsStreaming        bool
	MessageID          string
	SelectedResponseID string

	// RawText is the unparsed message, used for full-message copy.
	RawText string
}

// DisplayModel is the derived view state of one AI message.
type DisplayModel struct {
	MessageID string
	RawText   string

	// Visible holds the non-blank segments in order.
	Visible []segment.Segment

	HasContent  bool
	CodeReady   bool
	IsSelected  bool
	IsStreaming bool

	// CodeLines is the total line count over all code segments.
	CodeLines int

	ShowPlaceholder        bool
	ShowStreamingIndicator bool
}

// Build derives the DisplayModel for one message. It never fails.
func Build(in Input) DisplayModel {
	dm := DisplayModel{
		MessageID:   in.MessageID,
		RawText:     in.RawText,
		CodeReady:   len(in.Segments) > readyThreshold || !in.IsStreaming,
		IsSelected:  in.MessageID == in.SelectedResponseID,
		IsStreaming: in.IsStreaming,
	}

	dm.Visible = make([]segment.Segment, 0, len(in.Segments))
	for _, s := range in.Segments {
		if s.Type == segment.Code {
			dm.CodeLines += CountLines(s.Content)
		}
		if s.IsBlank() {
			continue
		}
		dm.HasContent = true
		dm.Visible = append(dm.Visible, s)
	}

	dm.ShowPlaceholder = !dm.HasContent && !in.IsStreaming
	dm.ShowStreamingIndicator = in.IsStreaming
	return dm
}

// CountLines returns the number of newline-delimited lines in content.
// A trailing newline opens an empty last line, so "a\n" counts 2.
// Empty content counts 0.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// LinesLabel formats a line count for a code segment header.
func LinesLabel(n int) string {
	if n == 1 {
		return "1 line"
	}
	return util.IntToStr(n) + " lines"
}

// Preview returns the first PreviewLines lines of content and whether
// more lines were cut off.
func Preview(content string) (lines []string, more bool) {
	all := strings.Split(content, "\n")
	if len(all) > PreviewLines {
		return all[:PreviewLines], true
	}
	return all, false
}

// CodeIndexes returns the positions of code segments within Visible.
func (dm DisplayModel) CodeIndexes() []int {
	var idx []int
	for i, s := range dm.Visible {
		if s.Type == segment.Code {
			idx = append(idx, i)
		}
	}
	return idx
}

// Status is the state shown by a code segment's indicator dot.
type Status int

const (
	StatusProcessing Status = iota
	StatusSelected
	StatusDefault
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusSelected:
		return "selected"
	default:
		return "default"
	}
}

// Status picks the indicator state: not-ready wins over selection.
func (dm DisplayModel) Status() Status {
	switch {
	case !dm.CodeReady:
		return StatusProcessing
	case dm.IsSelected:
		return StatusSelected
	default:
		return StatusDefault
	}
}
