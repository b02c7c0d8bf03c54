// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
	"github.com/jeranaias/vibes-tui/internal/util"
)

// =============================================================================
// CODE SEGMENT CARD
// =============================================================================

// CodeSegmentCard is the compact card a code segment renders as inside a
// message: status dot, line count, copy label and a short preview. A pinned
// card drops the preview.
type CodeSegmentCard struct {
	Segment segment.Segment

	// Status drives the dot color
	Status render.Status

	// CodeLines is the message-wide total shown in the header
	CodeLines int

	Pinned  bool
	Focused bool
	Width   int

	// Tick animates the selected dot
	Tick int

	theme *styles.Theme
}

// NewCodeSegmentCard creates a card for seg within dm.
func NewCodeSegmentCard(seg segment.Segment, dm render.DisplayModel, theme *styles.Theme) CodeSegmentCard {
	return CodeSegmentCard{
		Segment:   seg,
		Status:    dm.Status(),
		CodeLines: dm.CodeLines,
		Width:     60,
		theme:     theme,
	}
}

// View renders the card.
func (c CodeSegmentCard) View() string {
	inner := c.Width - 4 // border and padding
	if inner < 16 {
		inner = 16
	}

	header := c.renderHeader(inner)
	body := header
	if !c.Pinned {
		body = lipgloss.JoinVertical(lipgloss.Left, header, c.renderPreview(inner))
	}

	style := c.theme.CodeCard
	switch {
	case c.Pinned:
		style = c.theme.CodeCardPinned
	case c.Focused:
		style = c.theme.CodeCardFocused
	}
	if c.Pinned && c.Focused {
		style = style.BorderForeground(styles.Accent)
	}
	return style.Width(inner + 2).Render(body)
}

// Height returns the number of rows View produces.
func (c CodeSegmentCard) Height() int {
	return lipgloss.Height(c.View())
}

func (c CodeSegmentCard) renderHeader(width int) string {
	left := c.renderDot() + " " + c.theme.CodeLines.Render(render.LinesLabel(c.CodeLines))
	right := c.theme.CopyButton.Render(render.CopyLabel + " ⧉")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (c CodeSegmentCard) renderDot() string {
	switch c.Status {
	case render.StatusProcessing:
		return c.theme.DotProcessing.Render("●")
	case render.StatusSelected:
		return c.theme.DotSelected.Render(styles.Frame(styles.SelectedDot, c.Tick))
	default:
		return c.theme.DotIdle.Render("○")
	}
}

func (c CodeSegmentCard) renderPreview(width int) string {
	lines, more := render.Preview(c.Segment.Content)

	lineWidth := width - 4
	if lineWidth < 8 {
		lineWidth = 8
	}
	highlighted := strings.Split(highlightCode(strings.Join(lines, "\n"), c.Segment.Language, c.theme.ChromaStyle()), "\n")

	rendered := make([]string, 0, len(lines)+1)
	for i := range lines {
		line := ""
		if i < len(highlighted) {
			line = highlighted[i]
		}
		if strings.TrimSpace(lines[i]) == "" {
			// Keep blank lines one row tall.
			line = " "
		}
		rendered = append(rendered, c.theme.CodePreviewLine.MaxWidth(lineWidth).Render(line))
	}
	if more {
		rendered = append(rendered, c.theme.CodeMore.Render(styles.BoxChars.Ellipsis))
	}

	return c.theme.CodePreview.Width(width - 2).Render(strings.Join(rendered, "\n"))
}

// =============================================================================
// FULL CODE VIEW
// =============================================================================

// CodeBlock renders a complete code segment with line numbers, as shown in
// the preview pane.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
	theme    *styles.Theme
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(language, code string, theme *styles.Theme) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
		theme:    theme,
	}
}

// Render renders the code block with syntax highlighting.
func (c CodeBlock) Render() string {
	code := strings.TrimRight(c.Code, "\n")

	language := c.Language
	if language == "" {
		language = detectLanguage(code)
	}
	lines := strings.Split(highlightCode(code, language, c.theme.ChromaStyle()), "\n")

	numWidth := len(util.IntToStr(len(lines)))
	if numWidth < 3 {
		numWidth = 3
	}
	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(numWidth).
		Align(lipgloss.Right).
		MarginRight(1)

	maxWidth := c.MaxWidth
	if maxWidth < 20 {
		maxWidth = 20
	}
	lineStyle := lipgloss.NewStyle().MaxWidth(maxWidth - numWidth - 1)

	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = lineNumStyle.Render(util.IntToStr(i+1)) + lineStyle.Render(line)
	}
	return strings.Join(rendered, "\n")
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies syntax highlighting for terminal output. Unknown
// languages are guessed from the code; any failure returns code unchanged.
func highlightCode(code, language, styleName string) string {
	if code == "" {
		return code
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get(formatterFor(termenv.ColorProfile()))
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func formatterFor(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.Ascii:
		return "noop"
	default:
		return "terminal"
	}
}

// detectLanguage guesses the language of code, or returns "".
func detectLanguage(code string) string {
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
