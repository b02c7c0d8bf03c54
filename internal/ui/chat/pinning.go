// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vibes-tui/internal/sticky"
)

// =============================================================================
// CODE REGIONS
// =============================================================================

// RegionKey identifies one code segment: its message and its index among
// the message's visible segments.
type RegionKey struct {
	MessageID string
	Index     int
}

// CodeRegion is where a code card sits in the transcript, in rows.
type CodeRegion struct {
	Key    RegionKey
	Top    int
	Height int

	// End is the first row after the card's message. A card only sticks
	// while its message is still on screen.
	End int
}

// Contains reports whether row falls inside the card.
func (r CodeRegion) Contains(row int) bool {
	return row >= r.Top && row < r.Top+r.Height
}

// =============================================================================
// PIN TRACKER
// =============================================================================

// pinTracker owns one sticky subscription per code card in the transcript.
// The viewport offset is pushed into pos; transitions come back as
// StickyMsg through waitPin commands.
type pinTracker struct {
	pos      *sticky.Position
	observer sticky.Observer

	subs    map[RegionKey]*sticky.Subscription
	regions map[RegionKey]CodeRegion
	pinned  map[RegionKey]bool
}

func newPinTracker(opts sticky.Options) *pinTracker {
	pos := sticky.NewPosition()
	return &pinTracker{
		pos:      pos,
		observer: sticky.New(pos, opts),
		subs:     make(map[RegionKey]*sticky.Subscription),
		regions:  make(map[RegionKey]CodeRegion),
		pinned:   make(map[RegionKey]bool),
	}
}

// Scroll records the viewport's top row.
func (t *pinTracker) Scroll(offset int) {
	t.pos.Set(offset)
}

// Sync matches the subscriptions to regions: new cards are observed, moved
// cards are re-evaluated and cards that left the transcript are released.
// It returns a waiter for every new subscription.
func (t *pinTracker) Sync(regions []CodeRegion) []tea.Cmd {
	seen := make(map[RegionKey]bool, len(regions))
	var cmds []tea.Cmd

	for _, r := range regions {
		seen[r.Key] = true
		t.regions[r.Key] = r
		if sub, ok := t.subs[r.Key]; ok {
			sub.Move(sticky.Region{Top: r.Top})
			continue
		}
		sub := t.observer.Observe(sticky.Region{Top: r.Top})
		t.subs[r.Key] = sub
		cmds = append(cmds, waitPin(r.Key, sub))
	}

	for key, sub := range t.subs {
		if !seen[key] {
			sub.Close()
			delete(t.subs, key)
			delete(t.regions, key)
			delete(t.pinned, key)
		}
	}
	return cmds
}

// Apply records a transition. It returns the next waiter, or nil when the
// message came from a released subscription.
func (t *pinTracker) Apply(msg StickyMsg) tea.Cmd {
	sub, ok := t.subs[msg.Key]
	if !ok || sub != msg.sub {
		return nil
	}
	if msg.Pinned {
		t.pinned[msg.Key] = true
	} else {
		delete(t.pinned, msg.Key)
	}
	return waitPin(msg.Key, sub)
}

// Pinned reports whether a card is pinned.
func (t *pinTracker) Pinned(key RegionKey) bool {
	return t.pinned[key]
}

// Current returns the card to show in the sticky bar: the lowest pinned
// card whose message still reaches the top of the viewport.
func (t *pinTracker) Current() (CodeRegion, bool) {
	offset := t.pos.Offset()
	var best CodeRegion
	found := false
	for key := range t.pinned {
		r, ok := t.regions[key]
		if !ok || offset >= r.End {
			continue
		}
		if !found || r.Top > best.Top {
			best, found = r, true
		}
	}
	return best, found
}

// Regions returns the tracked regions in transcript order.
func (t *pinTracker) Regions() []CodeRegion {
	out := make([]CodeRegion, 0, len(t.regions))
	for _, r := range t.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Top < out[j].Top })
	return out
}

// Active returns the number of live subscriptions.
func (t *pinTracker) Active() int {
	return len(t.subs)
}

// Reset releases every subscription, e.g. when the chat is replaced.
func (t *pinTracker) Reset() {
	for key, sub := range t.subs {
		sub.Close()
		delete(t.subs, key)
	}
	t.regions = make(map[RegionKey]CodeRegion)
	t.pinned = make(map[RegionKey]bool)
}

// Close releases everything and stops the observer.
func (t *pinTracker) Close() error {
	t.Reset()
	return t.observer.Close()
}

// waitPin blocks on one subscription. A closed subscription yields no
// message.
func waitPin(key RegionKey, sub *sticky.Subscription) tea.Cmd {
	return func() tea.Msg {
		pinned, ok := <-sub.C
		if !ok {
			return nil
		}
		return StickyMsg{Key: key, Pinned: pinned, sub: sub}
	}
}
