// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sticky

// State is the pin state of one code segment.
type State int

const (
	// Unpinned is the initial state: the sentinel is still in view.
	Unpinned State = iota
	// Pinned means the sentinel has scrolled out of view.
	Pinned
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Pinned {
		return "pinned"
	}
	return "unpinned"
}

// Tracker holds the state machine for one segment. It has no terminal
// state; it toggles for as long as the segment is mounted.
type Tracker struct {
	state State
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// Apply feeds one observation and reports whether the state changed.
func (t *Tracker) Apply(pinned bool) bool {
	next := Unpinned
	if pinned {
		next = Pinned
	}
	if next == t.state {
		return false
	}
	t.state = next
	return true
}

// IsPinned evaluates the threshold. The sentinel sits sentinelOffset below
// the region's natural top; once the scroll offset passes it the sentinel
// is out of view and the segment is pinned.
func IsPinned(scroll int, region Region, sentinelOffset int) bool {
	return scroll > region.Top+sentinelOffset
}
