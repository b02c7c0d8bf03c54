// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"strings"
)

// Fence is the shortest marker that opens and closes a code block. Longer
// backtick runs also open a block, which then needs a closing run at least
// as long.
const Fence = "```"

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// Type distinguishes prose from code.
type Type string

const (
	Markdown Type = "markdown"
	Code     Type = "code"
)

// Segment is a contiguous run of one type.
type Segment struct {
	Type    Type   `json:"type"`
	Content string `json:"content"`

	// Language is the first word of the fence info string ("js" for ```js).
	// Empty for markdown and for bare fences.
	Language string `json:"language,omitempty"`

	// Info is the raw text after the opening fence, kept so the buffer can
	// be rebuilt exactly.
	Info string `json:"info,omitempty"`

	// OpenFence and CloseFence are the backtick runs around the block when
	// they differ from Fence. CloseFence is empty when it matches the
	// opening run or the block is still open.
	OpenFence  string `json:"open_fence,omitempty"`
	CloseFence string `json:"close_fence,omitempty"`
}

// IsBlank reports whether the segment has no visible content.
func (s Segment) IsBlank() bool {
	return strings.TrimSpace(s.Content) == ""
}

// IsCode reports whether the segment is a code block.
func (s Segment) IsCode() bool {
	return s.Type == Code
}

// Result is the ordered output of one Parse call.
type Result struct {
	Segments []Segment `json:"segments"`
}

// Len returns the number of segments, blank ones included.
func (r Result) Len() int {
	return len(r.Segments)
}

// NonBlank returns the segments a renderer should draw. Whitespace-only
// segments are kept by the parser and dropped here.
func (r Result) NonBlank() []Segment {
	out := make([]Segment, 0, len(r.Segments))
	for _, s := range r.Segments {
		if !s.IsBlank() {
			out = append(out, s)
		}
	}
	return out
}

// CodeSegments returns the code segments in order.
func (r Result) CodeSegments() []Segment {
	var out []Segment
	for _, s := range r.Segments {
		if s.Type == Code {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// PARSER
// =============================================================================

// Parse splits buffer into markdown and code segments.
//
// Fences are runs of three or more backticks at the start of a line. The
// opening fence line, newline included, is consumed and its info string
// recorded on the code segment. The closing fence is the next line-start run
// at least as long as the opening one; only the run itself is consumed, so
// whatever follows on that line (usually the newline) starts the next
// markdown run.
// A fence that is still open at the end of the buffer yields a code segment
// holding everything after it.
//
// Markdown runs of zero length are never emitted. Code segments are emitted
// as soon as a fence opens, even before any code has arrived.
func Parse(buffer string) Result {
	var segs []Segment
	pos := 0

	for pos < len(buffer) {
		open := nextFence(buffer, pos, len(Fence))
		if open < 0 {
			segs = append(segs, Segment{Type: Markdown, Content: buffer[pos:]})
			break
		}
		if open > pos {
			segs = append(segs, Segment{Type: Markdown, Content: buffer[pos:open]})
		}

		// Info line runs to the end of the line. Without a newline the
		// fence is still being typed and there is no code yet.
		fence := buffer[open : open+backticks(buffer, open)]
		infoStart := open + len(fence)
		nl := strings.IndexByte(buffer[infoStart:], '\n')
		if nl < 0 {
			segs = append(segs, codeSegment("", buffer[infoStart:], fence, ""))
			break
		}
		info := buffer[infoStart : infoStart+nl]
		codeStart := infoStart + nl + 1

		end := nextFence(buffer, codeStart, len(fence))
		if end < 0 {
			segs = append(segs, codeSegment(buffer[codeStart:], info, fence, ""))
			break
		}
		closing := buffer[end : end+backticks(buffer, end)]
		segs = append(segs, codeSegment(buffer[codeStart:end], info, fence, closing))
		pos = end + len(closing)
	}

	return Result{Segments: segs}
}

// nextFence returns the index of the next run of at least minLen backticks
// that starts a line at or after from, or -1.
func nextFence(buf string, from, minLen int) int {
	for i := from; i < len(buf); {
		idx := strings.Index(buf[i:], Fence)
		if idx < 0 {
			return -1
		}
		at := i + idx
		n := backticks(buf, at)
		if (at == 0 || buf[at-1] == '\n') && n >= minLen {
			return at
		}
		i = at + n
	}
	return -1
}

// backticks returns the length of the backtick run starting at i.
func backticks(buf string, i int) int {
	n := 0
	for i+n < len(buf) && buf[i+n] == '`' {
		n++
	}
	return n
}

func codeSegment(content, info, open, closing string) Segment {
	seg := Segment{
		Type:     Code,
		Content:  content,
		Language: language(info),
		Info:     info,
	}
	if open != Fence {
		seg.OpenFence = open
	}
	if closing != "" && closing != open {
		seg.CloseFence = closing
	}
	return seg
}

func (s Segment) fences() (open, closing string) {
	open = Fence
	if s.OpenFence != "" {
		open = s.OpenFence
	}
	closing = open
	if s.CloseFence != "" {
		closing = s.CloseFence
	}
	return open, closing
}

func language(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Reconstruct rebuilds the text a slice of segments was parsed from. Every
// code segment is written as a closed fence, so the result equals the input
// of Parse whenever that input ended outside a code block.
func Reconstruct(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Type != Code {
			sb.WriteString(s.Content)
			continue
		}
		open, closing := s.fences()
		sb.WriteString(open)
		sb.WriteString(s.Info)
		sb.WriteByte('\n')
		sb.WriteString(s.Content)
		sb.WriteString(closing)
	}
	return sb.String()
}
