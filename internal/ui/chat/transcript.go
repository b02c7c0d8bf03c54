// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sort"
	"strings"

	"github.com/jeranaias/vibes-tui/internal/model"
	"github.com/jeranaias/vibes-tui/internal/render"
	"github.com/jeranaias/vibes-tui/internal/ui/components"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// transcript is the rendered conversation as it sits in the viewport.
type transcript struct {
	Content string
	Height  int

	// Regions lists every code card, top to bottom.
	Regions []CodeRegion

	// Starts maps message IDs to their first row.
	Starts map[string]int
}

// Region returns the region of a code card.
func (t transcript) Region(key RegionKey) (CodeRegion, bool) {
	for _, r := range t.Regions {
		if r.Key == key {
			return r, true
		}
	}
	return CodeRegion{}, false
}

// RegionAt returns the card covering row.
func (t transcript) RegionAt(row int) (CodeRegion, bool) {
	for _, r := range t.Regions {
		if r.Contains(row) {
			return r, true
		}
	}
	return CodeRegion{}, false
}

// viewKey is everything a message's rendered text depends on.
type viewKey struct {
	text      string
	streaming bool
	selected  bool
	width     int
	focus     int
	tick      int
	stats     string
}

type messageView struct {
	key viewKey
	out components.RenderedMessage
}

// buildTranscript renders every message, reusing the previous render of
// messages whose inputs did not change.
func (m *Model) buildTranscript() transcript {
	t := transcript{Starts: make(map[string]int)}
	if m.conv == nil {
		return t
	}

	width := m.chatWidth
	blocks := make([]string, 0, len(m.conv.Messages))
	row := 0

	for _, msg := range m.conv.Messages {
		if len(blocks) > 0 {
			row++ // blank line between messages
		}
		t.Starts[msg.ID] = row

		var out components.RenderedMessage
		if msg.IsAI() {
			out = m.renderAIMessage(msg, width)
		} else {
			out = m.renderUserMessage(msg, width)
		}

		end := row + out.Height()
		for idx, top := range out.CodeRows {
			t.Regions = append(t.Regions, CodeRegion{
				Key:    RegionKey{MessageID: msg.ID, Index: idx},
				Top:    row + top,
				Height: out.CardHeights[idx],
				End:    end,
			})
		}

		blocks = append(blocks, out.Text)
		row = end
	}

	sort.Slice(t.Regions, func(i, j int) bool { return t.Regions[i].Top < t.Regions[j].Top })
	t.Content = strings.Join(blocks, "\n\n")
	t.Height = row
	return t
}

// displayModel returns the memoized DisplayModel of an AI message.
func (m *Model) displayModel(msg *model.Message) render.DisplayModel {
	dm, _ := m.renders.For(msg.ID).Render(msg.DisplayText(), msg.IsStreaming, msg.ID, m.selection.SelectedResponseID)
	return dm
}

func (m *Model) renderAIMessage(msg *model.Message, width int) components.RenderedMessage {
	dm := m.displayModel(msg)

	key := viewKey{
		text:      dm.RawText,
		streaming: dm.IsStreaming,
		selected:  dm.IsSelected,
		width:     width,
		focus:     -1,
	}
	if m.focusKey.MessageID == msg.ID {
		key.focus = m.focusKey.Index
	}
	if dm.IsStreaming || dm.IsSelected {
		key.tick = m.tick
	}
	if m.cfg.UI.ShowStats {
		key.stats = msg.FormatStats()
	}

	if v, ok := m.views[msg.ID]; ok && v.key == key {
		return v.out
	}

	sm := components.NewStructuredMessage(dm, m.markdown, m.theme)
	sm.Width = width
	sm.Focus = key.focus
	sm.Tick = key.tick
	sm.Stats = key.stats
	out := sm.Render()

	m.views[msg.ID] = messageView{key: key, out: out}
	return out
}

func (m *Model) renderUserMessage(msg *model.Message, width int) components.RenderedMessage {
	key := viewKey{text: msg.DisplayText(), width: width, focus: -1}
	if v, ok := m.views[msg.ID]; ok && v.key == key {
		return v.out
	}
	out := components.RenderedMessage{Text: components.RenderUserMessage(msg, width, m.theme)}
	m.views[msg.ID] = messageView{key: key, out: out}
	return out
}
