// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/segment"
	"github.com/jeranaias/vibes-tui/internal/storage"
	"github.com/jeranaias/vibes-tui/internal/ui/styles"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

func displayModel(text string, streaming bool, id, selected string) render.DisplayModel {
	return render.Build(render.Input{
		Segments:           segment.Parse(text).Segments,
		IsStreaming:        streaming,
		MessageID:          id,
		SelectedResponseID: selected,
		RawText:            text,
	})
}

// =============================================================================
// CODE SEGMENT CARD
// =============================================================================

func TestCodeSegmentCard_Header(t *testing.T) {
	dm := displayModel("Intro\n```jsx\na\nb\n```\nOutro", false, "m1", "")
	card := NewCodeSegmentCard(dm.Visible[1], dm, testTheme())
	card.Width = 50

	// "a\nb\n" splits into three lines, the last one empty.
	view := card.View()
	if !strings.Contains(view, "3 lines") {
		t.Errorf("header should show line count:\n%s", view)
	}
	if !strings.Contains(view, render.CopyLabel) {
		t.Errorf("header should show copy label:\n%s", view)
	}
	if !strings.Contains(view, "○") {
		t.Errorf("idle card should show hollow dot:\n%s", view)
	}
}

func TestCodeSegmentCard_StatusDot(t *testing.T) {
	theme := testTheme()
	seg := segment.Segment{Type: segment.Code, Content: "x"}

	processing := CodeSegmentCard{Segment: seg, Status: render.StatusProcessing, Width: 40, theme: theme}
	if !strings.Contains(processing.View(), "●") {
		t.Error("processing card should show filled dot")
	}
	selected := CodeSegmentCard{Segment: seg, Status: render.StatusSelected, Width: 40, theme: theme}
	if v := selected.View(); !strings.Contains(v, styles.SelectedDot[0]) {
		t.Errorf("selected card should pulse: %s", v)
	}
}

func TestCodeSegmentCard_PreviewTruncates(t *testing.T) {
	dm := displayModel("```\none\ntwo\nthree\nfour\n```", false, "m1", "")
	card := NewCodeSegmentCard(dm.Visible[0], dm, testTheme())
	card.Width = 40

	view := card.View()
	for _, want := range []string{"one", "two", "three", "..."} {
		if !strings.Contains(view, want) {
			t.Errorf("preview missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "four") {
		t.Errorf("preview should stop after three lines:\n%s", view)
	}
}

func TestCodeSegmentCard_PinnedCollapses(t *testing.T) {
	dm := displayModel("```\none\ntwo\n```", false, "m1", "")
	card := NewCodeSegmentCard(dm.Visible[0], dm, testTheme())
	card.Width = 40

	open := card.Height()
	card.Pinned = true
	if card.Height() >= open {
		t.Errorf("pinned card should be shorter: %d >= %d", card.Height(), open)
	}
	if strings.Contains(card.View(), "one") {
		t.Error("pinned card should hide the preview")
	}
}

func TestCodeBlock_LineNumbers(t *testing.T) {
	block := NewCodeBlock("js", "const a = 1\nconst b = 2\n", testTheme())
	out := block.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "1") || !strings.Contains(lines[1], "2") {
		t.Errorf("missing line numbers:\n%s", out)
	}
}

// =============================================================================
// STRUCTURED MESSAGE
// =============================================================================

func TestStructuredMessage_Placeholder(t *testing.T) {
	dm := displayModel("", false, "m1", "")
	out := NewStructuredMessage(dm, nil, testTheme()).Render()
	if !strings.Contains(out.Text, render.Placeholder) {
		t.Errorf("expected placeholder:\n%s", out.Text)
	}
}

func TestStructuredMessage_StreamingCursorNoPlaceholder(t *testing.T) {
	dm := displayModel("", true, "m1", "")
	sm := NewStructuredMessage(dm, nil, testTheme())
	out := sm.Render()
	if strings.Contains(out.Text, render.Placeholder) {
		t.Error("streaming message should not show placeholder")
	}
	if !strings.Contains(out.Text, styles.StreamingCursor[0]) {
		t.Errorf("expected streaming cursor:\n%s", out.Text)
	}
}

func TestStructuredMessage_CodeRows(t *testing.T) {
	dm := displayModel("Hello\n\n```js\nx\n```\nBetween\n```js\ny\n```", false, "m1", "")
	sm := NewStructuredMessage(dm, nil, testTheme())
	sm.Width = 40
	out := sm.Render()

	idx := dm.CodeIndexes()
	if len(idx) != 2 {
		t.Fatalf("expected two code segments, got %v", idx)
	}
	first, second := out.CodeRows[idx[0]], out.CodeRows[idx[1]]
	if first < 1 {
		t.Errorf("first card should sit below the label, got row %d", first)
	}
	if second <= first+out.CardHeights[idx[0]]-1 {
		t.Errorf("second card row %d overlaps first (%d + %d)", second, first, out.CardHeights[idx[0]])
	}

	rows := strings.Split(out.Text, "\n")
	if !strings.Contains(rows[first], "╭") {
		t.Errorf("row %d should be the top border of a card: %q", first, rows[first])
	}
	if out.Height() != len(rows) {
		t.Errorf("Height() = %d, want %d", out.Height(), len(rows))
	}
}

func TestStructuredMessage_Stats(t *testing.T) {
	dm := displayModel("done", false, "m1", "")
	sm := NewStructuredMessage(dm, nil, testTheme())
	sm.Stats = "1.2s | 40 tok"
	if !strings.Contains(sm.Render().Text, "40 tok") {
		t.Error("expected stats line")
	}
}

func TestRenderUserMessage(t *testing.T) {
	msg := model.NewUserMessage("make a todo app")
	out := RenderUserMessage(msg, 60, testTheme())
	if !strings.Contains(out, "make a todo app") || !strings.Contains(out, "You") {
		t.Errorf("unexpected user message:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 60 {
			t.Errorf("line wider than 60: %q", line)
		}
	}
}

// =============================================================================
// FRAME
// =============================================================================

func TestHeader_TruncatesTitle(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(50)
	h.SetTitle(strings.Repeat("very long title ", 10))
	for _, line := range strings.Split(h.View(), "\n") {
		if lipgloss.Width(line) > 50 {
			t.Errorf("header line wider than 50: %q", line)
		}
	}
}

func TestGradientTitle(t *testing.T) {
	if GradientTitle("", "#000000", "#FFFFFF") != "" {
		t.Error("empty text should render empty")
	}
	if got := GradientTitle("vibes", "#F472B6", "#A78BFA"); !strings.Contains(got, "v") {
		t.Errorf("GradientTitle = %q", got)
	}
	if got := GradientTitle("vibes", "nope", "#A78BFA"); !strings.Contains(got, "vibes") {
		t.Errorf("invalid color fallback = %q", got)
	}
}

func TestWelcome(t *testing.T) {
	w := NewWelcome(testTheme())
	w.SetSize(80, 20)
	v := w.View()
	if !strings.Contains(v, Tagline) {
		t.Errorf("missing tagline:\n%s", v)
	}
	if !strings.Contains(v, "Discord community") {
		t.Errorf("missing community link:\n%s", v)
	}
}

func TestSidebar(t *testing.T) {
	sb := NewSidebar(testTheme())
	if !strings.Contains(sb.View(), "No Vibes Yet") || !strings.Contains(sb.View(), "No vibes saved yet") {
		t.Errorf("empty sidebar:\n%s", sb.View())
	}

	sb.SetSessions([]storage.Session{
		{ID: "a", Title: "Todo app", CreatedAt: time.Now(), Favorite: true},
		{ID: "b", CreatedAt: time.Now()},
	})
	v := sb.View()
	for _, want := range []string{"2 Vibes", "Todo app", model.DefaultTitle, "★"} {
		if !strings.Contains(v, want) {
			t.Errorf("sidebar missing %q:\n%s", want, v)
		}
	}

	sb.Move(5)
	if cur, ok := sb.Current(); !ok || cur.ID != "b" {
		t.Errorf("cursor should clamp to last session, got %+v", cur)
	}
	sb.Move(-5)
	if cur, _ := sb.Current(); cur.ID != "a" {
		t.Errorf("cursor should clamp to first session, got %+v", cur)
	}

	sb.JustFavorites = true
	sb.SetSessions(nil)
	if !strings.Contains(sb.View(), "No Faves Yet") {
		t.Errorf("favorites heading:\n%s", sb.View())
	}
	if _, ok := sb.Current(); ok {
		t.Error("empty list has no current session")
	}
}

func TestPreview(t *testing.T) {
	p := NewPreview(testTheme())
	p.Width, p.Height = 50, 12
	if !strings.Contains(p.View(), EmptyPreviewText) {
		t.Errorf("empty preview:\n%s", p.View())
	}

	p.Segments = []segment.Segment{{Type: segment.Code, Language: "js", Content: "a\nb\nc"}}
	v := p.View()
	if !strings.Contains(v, render.CopyLabel) || !strings.Contains(v, "3 lines") {
		t.Errorf("preview header:\n%s", v)
	}

	p.Scroll(-3)
	if p.Offset != 0 {
		t.Errorf("offset should not go negative, got %d", p.Offset)
	}
}

// =============================================================================
// INPUT, STATUS, TOASTS
// =============================================================================

func TestChatInput_Submit(t *testing.T) {
	in := NewChatInput(testTheme())
	if _, ok := in.Submit(); ok {
		t.Error("empty input should not submit")
	}

	in.SetValue("  build a drum machine  ")
	got, ok := in.Submit()
	if !ok || got != "build a drum machine" {
		t.Errorf("Submit() = %q, %v", got, ok)
	}
	if in.Value() != "" {
		t.Error("input should clear after submit")
	}

	in.SetValue("again")
	in.SetDisabled(true)
	if _, ok := in.Submit(); ok {
		t.Error("disabled input should not submit")
	}
	in.SetDisabled(false)
	if _, ok := in.Submit(); !ok {
		t.Error("re-enabled input should submit")
	}
}

func TestChatInput_Placeholder(t *testing.T) {
	in := NewChatInput(testTheme())
	in.SetWidth(60)
	if !strings.Contains(in.View(), InputPlaceholder) {
		t.Errorf("placeholder missing:\n%s", in.View())
	}
}

func TestToastManager(t *testing.T) {
	m := NewToastManager()
	m.AddSuccess("Copied")
	m.AddError("boom")
	m.AddSuccess("a")
	m.AddSuccess("b")

	toasts := m.Toasts()
	if len(toasts) != 3 || toasts[0].Message != "b" {
		t.Fatalf("expected newest three toasts, got %+v", toasts)
	}

	if !m.Tick(time.Now().Add(DefaultToastDuration + time.Millisecond)) {
		t.Error("error toast should outlive success toasts")
	}
	if left := m.Toasts(); len(left) != 1 || left[0].Message != "boom" {
		t.Errorf("remaining = %+v", left)
	}
	if m.Tick(time.Now().Add(ErrorToastDuration + time.Second)) {
		t.Error("all toasts should expire")
	}
}

func TestStatusBar(t *testing.T) {
	toasts := NewToastManager()
	sb := NewStatusBar(testTheme(), toasts)
	sb.SetWidth(60)
	sb.Hints = []string{"tab code", "enter open", "y copy", "Y copy all", "esc close", "ctrl+c quit"}

	if cmd := sb.SetStatus(StatusStreaming); cmd == nil {
		t.Error("starting a busy status should tick the spinner")
	}
	if cmd := sb.SetStatus(StatusPreparing); cmd != nil {
		t.Error("already busy, no new tick")
	}
	v := sb.View()
	if lipgloss.Width(v) > 60 {
		t.Errorf("status bar too wide: %d", lipgloss.Width(v))
	}
	if !strings.Contains(v, StatusPreparing.String()) {
		t.Errorf("status text missing: %q", v)
	}

	toasts.AddSuccess("Copied App.jsx")
	if !strings.Contains(sb.View(), "Copied App.jsx") {
		t.Errorf("toast should replace status: %q", sb.View())
	}
}
