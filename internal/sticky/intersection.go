// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sticky

import "sync"

// =============================================================================
// INTERSECTION OBSERVER
// =============================================================================

// IntersectionObserver evaluates regions synchronously whenever the scroll
// container reports a new offset.
type IntersectionObserver struct {
	*registry
	unsubscribe func()
	closeOnce   sync.Once
}

// NewIntersectionObserver subscribes to n. initial is the scroll offset at
// the time of creation.
func NewIntersectionObserver(n Notifier, initial, sentinelOffset int) *IntersectionObserver {
	o := &IntersectionObserver{registry: newRegistry(initial, sentinelOffset)}
	if n != nil {
		o.unsubscribe = n.Subscribe(o.SetOffset)
	}
	return o
}

// Observe implements Observer.
func (o *IntersectionObserver) Observe(region Region) *Subscription {
	return o.add(region)
}

// SetOffset feeds a scroll position directly.
func (o *IntersectionObserver) SetOffset(offset int) {
	o.evaluate(offset)
}

// Active returns the number of live subscriptions.
func (o *IntersectionObserver) Active() int {
	return o.count()
}

// Close implements Observer.
func (o *IntersectionObserver) Close() error {
	o.closeOnce.Do(func() {
		if o.unsubscribe != nil {
			o.unsubscribe()
		}
		o.closeAll()
	})
	return nil
}

// =============================================================================
// POSITION
// =============================================================================

// Position is a scroll offset that can be read and subscribed to. The chat
// view owns one and sets it whenever its viewport moves.
type Position struct {
	mu        sync.Mutex
	offset    int
	listeners map[int]func(int)
	nextID    int
}

// NewPosition creates a Position at offset 0.
func NewPosition() *Position {
	return &Position{listeners: make(map[int]func(int))}
}

// Offset implements ScrollSource.
func (p *Position) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// Set records a new offset and notifies subscribers if it changed.
// Listeners run on the caller's goroutine.
func (p *Position) Set(offset int) {
	p.mu.Lock()
	if offset == p.offset {
		p.mu.Unlock()
		return
	}
	p.offset = offset
	fns := make([]func(int), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(offset)
	}
}

// Subscribe implements Notifier.
func (p *Position) Subscribe(fn func(offset int)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// PollOnly hides any Notifier behind src so New falls back to polling.
func PollOnly(src ScrollSource) ScrollSource {
	return pollOnly{src}
}

type pollOnly struct{ src ScrollSource }

func (p pollOnly) Offset() int { return p.src.Offset() }
