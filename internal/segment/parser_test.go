// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func md(s string) Segment { return Segment{Type: Markdown, Content: s} }

func code(lang, s string) Segment {
	return Segment{Type: Code, Content: s, Language: lang, Info: lang}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "empty buffer",
			input: "",
			want:  nil,
		},
		{
			name:  "plain markdown",
			input: "Just some **prose**.",
			want:  []Segment{md("Just some **prose**.")},
		},
		{
			name:  "markdown code markdown",
			input: "Here is code:\n```js\nconsole.log(1)\n```\nDone.",
			want: []Segment{
				md("Here is code:\n"),
				code("js", "console.log(1)\n"),
				md("\nDone."),
			},
		},
		{
			name:  "unterminated fence",
			input: "```js\nconsole.log(1)",
			want:  []Segment{code("js", "console.log(1)")},
		},
		{
			name:  "fence still being typed",
			input: "Intro\n```js",
			want:  []Segment{md("Intro\n"), code("js", "")},
		},
		{
			name:  "empty code block",
			input: "```\n```",
			want:  []Segment{code("", "")},
		},
		{
			name:  "whitespace only",
			input: "  \n\t",
			want:  []Segment{md("  \n\t")},
		},
		{
			name:  "consecutive fences",
			input: "```js\na\n```\n```css\nb\n```",
			want: []Segment{
				code("js", "a\n"),
				md("\n"),
				code("css", "b\n"),
			},
		},
		{
			name:  "mid-line backticks stay markdown",
			input: "use ```inline``` fences",
			want:  []Segment{md("use ```inline``` fences")},
		},
		{
			name:  "backticks inside code not at line start",
			input: "```md\nwrite ``` here\n```",
			want:  []Segment{code("md", "write ``` here\n")},
		},
		{
			name:  "four backtick fence",
			input: "Intro\n````md\n```js\nx\n```\n````\nOutro",
			want: []Segment{
				md("Intro\n"),
				{Type: Code, Content: "```js\nx\n```\n", Language: "md", Info: "md", OpenFence: "````"},
				md("\nOutro"),
			},
		},
		{
			name:  "closing run longer than opening",
			input: "```js\nx\n`````\nDone.",
			want: []Segment{
				{Type: Code, Content: "x\n", Language: "js", Info: "js", CloseFence: "`````"},
				md("\nDone."),
			},
		},
		{
			name:  "shorter run does not close a long fence",
			input: "````\na\n```",
			want:  []Segment{{Type: Code, Content: "a\n```", OpenFence: "````"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			assert.Equal(t, tt.want, got.Segments)
		})
	}
}

func TestParse_InfoString(t *testing.T) {
	res := Parse("```jsx title=App.jsx\nexport default App\n```")
	require.Len(t, res.Segments, 1)

	seg := res.Segments[0]
	assert.Equal(t, "jsx", seg.Language)
	assert.Equal(t, "jsx title=App.jsx", seg.Info)
	assert.Equal(t, "export default App\n", seg.Content)
}

func TestParse_Idempotent(t *testing.T) {
	input := "# Todo app\n\n```jsx\nfunction App() {}\n```\n\nEnjoy."
	assert.Equal(t, Parse(input), Parse(input))
}

func TestParse_NoZeroLengthMarkdown(t *testing.T) {
	inputs := []string{
		"```js\nx\n```",
		"```js\nx\n```\n```js\ny\n```",
		"a\n```\nb\n```",
	}
	for _, in := range inputs {
		for _, s := range Parse(in).Segments {
			if s.Type == Markdown {
				assert.NotEmpty(t, s.Content, "input %q", in)
			}
		}
	}
}

// Feeding a reply one byte at a time must never rewrite a segment that
// has already been followed by another one.
func TestParse_PrefixStable(t *testing.T) {
	full := "Here is your app:\n```jsx\nimport React from \"react\"\nexport default function App() {}\n```\nRun it and enjoy.\n```css\nbody {}\n```\n"

	var prev Result
	for i := 1; i <= len(full); i++ {
		cur := Parse(full[:i])
		require.GreaterOrEqual(t, cur.Len(), prev.Len(), "segment count shrank at %d", i)

		// Every segment before the last one of the previous parse is final.
		for j := 0; j+1 < prev.Len(); j++ {
			assert.Equal(t, prev.Segments[j], cur.Segments[j], "segment %d changed at byte %d", j, i)
		}
		prev = cur
	}
}

func TestParse_LongFenceLeavesNoStrayBackticks(t *testing.T) {
	visible := Parse("Look:\n````js\nlet a = 1\n````\n").NonBlank()
	require.Len(t, visible, 2)
	assert.Equal(t, "js", visible[1].Language)
	assert.Equal(t, "let a = 1\n", visible[1].Content)
	for _, s := range visible {
		assert.NotContains(t, s.Content, "`")
	}
}

func TestParse_PrefixStableLongFence(t *testing.T) {
	full := "Nested:\n````md\n```js\nx\n```\n````\nend\n"

	var prev Result
	for i := 1; i <= len(full); i++ {
		cur := Parse(full[:i])
		for j := 0; j+1 < prev.Len(); j++ {
			assert.Equal(t, prev.Segments[j], cur.Segments[j], "segment %d changed at byte %d", j, i)
		}
		prev = cur
	}
	require.Equal(t, 3, prev.Len())
}

func TestReconstruct_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"Here is code:\n```js\nconsole.log(1)\n```\nDone.",
		"```jsx title=App.jsx\nx\n```",
		"a\n```\n```\nb",
		"```js\na\n```\n```css\nb\n```",
		"````md\n```js\nx\n```\n````\nafter",
		"```js\nx\n`````\nafter",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Reconstruct(Parse(in).Segments))
	}
}

func TestResult_NonBlank(t *testing.T) {
	res := Parse("```js\na\n```\n```css\nb\n```")
	require.Equal(t, 3, res.Len())

	visible := res.NonBlank()
	require.Len(t, visible, 2)
	for _, s := range visible {
		assert.True(t, s.IsCode())
	}
}

func TestResult_CodeSegments(t *testing.T) {
	res := Parse("intro\n```js\na\n```\nmiddle\n```css\nb\n```")
	codes := res.CodeSegments()
	require.Len(t, codes, 2)
	assert.Equal(t, "js", codes[0].Language)
	assert.Equal(t, "css", codes[1].Language)
}

func TestSegment_IsBlank(t *testing.T) {
	assert.True(t, md("").IsBlank())
	assert.True(t, md(" \n\t ").IsBlank())
	assert.False(t, md(" x ").IsBlank())
}

func BenchmarkParse(b *testing.B) {
	reply := strings.Repeat("Some prose here.\n```jsx\nconst x = 1\nconst y = 2\n```\n", 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parse(reply)
	}
}
