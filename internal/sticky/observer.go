// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sticky decides when a code segment is pinned to the top of its
// scroll container.
//
// Each segment registers a Region with an Observer and receives a stream of
// booleans on its Subscription: true when the segment becomes pinned, false
// when it is released. Two implementations sit behind the Observer
// interface. IntersectionObserver is driven by scroll notifications pushed
// from the container; PollingObserver samples the scroll offset on a ticker
// for hosts that cannot notify. New picks one at startup.
package sticky

import (
	"sync"
	"time"
)

// DefaultSentinelOffset is how far below a segment's natural top its
// sentinel sits, in the scroll container's units.
const DefaultSentinelOffset = 200

// DefaultPollInterval is the polling fallback's sample rate.
const DefaultPollInterval = 100 * time.Millisecond

// =============================================================================
// INTERFACES
// =============================================================================

// Region is the natural position of a segment within the scroll content.
type Region struct {
	Top int
}

// ScrollSource reports the container's current scroll offset.
type ScrollSource interface {
	Offset() int
}

// Notifier is implemented by scroll sources that can push offset changes.
// The returned func unsubscribes.
type Notifier interface {
	Subscribe(fn func(offset int)) (cancel func())
}

// Observer watches registered regions against the scroll position.
type Observer interface {
	// Observe registers a region and returns its subscription.
	Observe(region Region) *Subscription

	// Close releases every subscription and stops any background work.
	Close() error
}

// Options configures New.
type Options struct {
	SentinelOffset int
	PollInterval   time.Duration

	// ForcePolling selects the polling observer even when the source can
	// push notifications.
	ForcePolling bool
}

func (o Options) withDefaults() Options {
	if o.SentinelOffset <= 0 {
		o.SentinelOffset = DefaultSentinelOffset
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// New returns an IntersectionObserver when src can push scroll changes and
// a PollingObserver otherwise.
func New(src ScrollSource, opts Options) Observer {
	opts = opts.withDefaults()
	if n, ok := src.(Notifier); ok && !opts.ForcePolling {
		return NewIntersectionObserver(n, src.Offset(), opts.SentinelOffset)
	}
	return NewPollingObserver(src, opts.SentinelOffset, opts.PollInterval)
}

// =============================================================================
// SUBSCRIPTION
// =============================================================================

// Subscription is one region's view of an Observer.
type Subscription struct {
	// C receives the new pinned value on every transition. It holds at most
	// one value; a slow reader sees only the latest.
	C <-chan bool

	ch      chan bool
	owner   *registry
	mu      sync.Mutex
	region  Region
	tracker Tracker
	closed  bool
	once    sync.Once
}

// Pinned reports the current state.
func (s *Subscription) Pinned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State() == Pinned
}

// Region returns the region being observed.
func (s *Subscription) Region() Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

// Move updates the region, e.g. after content above it reflowed, and
// re-evaluates it against the last known scroll offset.
func (s *Subscription) Move(region Region) {
	s.owner.move(s, region)
}

// Close stops delivery and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.owner.remove(s)
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
}

// update applies an observation and publishes a transition.
func (s *Subscription) update(pinned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.tracker.Apply(pinned) {
		return
	}
	// Latest wins: drop an unread value rather than block the producer.
	select {
	case s.ch <- pinned:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- pinned:
		default:
		}
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

// registry is the bookkeeping shared by both observers.
type registry struct {
	mu       sync.Mutex
	subs     map[*Subscription]struct{}
	offset   int
	sentinel int
	closed   bool
}

func newRegistry(offset, sentinel int) *registry {
	return &registry{
		subs:     make(map[*Subscription]struct{}),
		offset:   offset,
		sentinel: sentinel,
	}
}

func (r *registry) add(region Region) *Subscription {
	ch := make(chan bool, 1)
	s := &Subscription{C: ch, ch: ch, owner: r, region: region}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		// Observer already torn down: hand back a finished subscription.
		s.closed = true
		close(ch)
		s.once.Do(func() {})
		return s
	}
	r.subs[s] = struct{}{}
	s.update(IsPinned(r.offset, region, r.sentinel))
	return s
}

func (r *registry) move(s *Subscription, region Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[s]; !ok {
		return
	}
	s.mu.Lock()
	s.region = region
	s.mu.Unlock()
	s.update(IsPinned(r.offset, region, r.sentinel))
}

func (r *registry) remove(s *Subscription) {
	r.mu.Lock()
	delete(r.subs, s)
	r.mu.Unlock()
}

// evaluate re-checks every region against a new scroll offset.
func (r *registry) evaluate(offset int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.offset = offset
	for s := range r.subs {
		s.update(IsPinned(offset, s.Region(), r.sentinel))
	}
}

// current returns the offset regions were last evaluated at.
func (r *registry) current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// closeAll closes every live subscription and refuses new ones.
func (r *registry) closeAll() {
	r.mu.Lock()
	r.closed = true
	subs := make([]*Subscription, 0, len(r.subs))
	for s := range r.subs {
		subs = append(subs, s)
	}
	r.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
}
