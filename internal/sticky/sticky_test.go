// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sticky

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	var tr Tracker
	assert.Equal(t, Unpinned, tr.State())

	assert.False(t, tr.Apply(false), "no-op while unpinned")
	assert.True(t, tr.Apply(true))
	assert.Equal(t, Pinned, tr.State())
	assert.False(t, tr.Apply(true), "no-op while pinned")
	assert.True(t, tr.Apply(false))
	assert.Equal(t, Unpinned, tr.State())
	assert.Equal(t, "unpinned", tr.State().String())
}

func TestIsPinned(t *testing.T) {
	r := Region{Top: 10}
	assert.False(t, IsPinned(0, r, 200))
	assert.False(t, IsPinned(210, r, 200))
	assert.True(t, IsPinned(211, r, 200))
	assert.True(t, IsPinned(4, Region{Top: 0}, 3))
}

func recv(t *testing.T, c <-chan bool) bool {
	t.Helper()
	select {
	case v, ok := <-c:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transition")
		return false
	}
}

func assertQuiet(t *testing.T, c <-chan bool) {
	t.Helper()
	select {
	case v := <-c:
		t.Fatalf("unexpected transition to %v", v)
	default:
	}
}

func TestIntersectionObserver_Transitions(t *testing.T) {
	pos := NewPosition()
	obs := NewIntersectionObserver(pos, pos.Offset(), 5)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 10})
	assertQuiet(t, sub.C)
	assert.False(t, sub.Pinned())

	pos.Set(15) // sentinel at 15, still in view
	assertQuiet(t, sub.C)

	pos.Set(16)
	assert.True(t, recv(t, sub.C))
	assert.True(t, sub.Pinned())

	pos.Set(30)
	assertQuiet(t, sub.C)

	pos.Set(0)
	assert.False(t, recv(t, sub.C))
	assert.False(t, sub.Pinned())
}

func TestIntersectionObserver_InitiallyPinned(t *testing.T) {
	obs := NewIntersectionObserver(nil, 100, 5)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 0})
	assert.True(t, recv(t, sub.C))
}

func TestSubscription_LatestWins(t *testing.T) {
	obs := NewIntersectionObserver(nil, 0, 0)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 0})
	obs.SetOffset(1)
	obs.SetOffset(0)
	obs.SetOffset(1)

	// Three transitions, one slot: only the newest value remains.
	assert.True(t, recv(t, sub.C))
	assertQuiet(t, sub.C)
}

func TestSubscription_Move(t *testing.T) {
	obs := NewIntersectionObserver(nil, 50, 10)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 45})
	assertQuiet(t, sub.C)

	sub.Move(Region{Top: 20})
	assert.True(t, recv(t, sub.C))
	assert.Equal(t, Region{Top: 20}, sub.Region())
}

func TestSubscription_Close(t *testing.T) {
	pos := NewPosition()
	obs := NewIntersectionObserver(pos, 0, 0)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 0})
	require.Equal(t, 1, obs.Active())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, obs.Active())

	_, ok := <-sub.C
	assert.False(t, ok)

	// Scrolling after close must not panic on the closed channel.
	assert.NotPanics(t, func() { pos.Set(10) })
	sub.Move(Region{Top: 1})
}

func TestIntersectionObserver_CloseUnsubscribes(t *testing.T) {
	pos := NewPosition()
	obs := NewIntersectionObserver(pos, 0, 0)
	a := obs.Observe(Region{Top: 0})
	b := obs.Observe(Region{Top: 5})

	require.NoError(t, obs.Close())
	require.NoError(t, obs.Close())

	_, ok := <-a.C
	assert.False(t, ok)
	_, ok = <-b.C
	assert.False(t, ok)

	pos.mu.Lock()
	assert.Empty(t, pos.listeners)
	pos.mu.Unlock()

	late := obs.Observe(Region{Top: 0})
	_, ok = <-late.C
	assert.False(t, ok)
	assert.NotPanics(t, late.Close)
}

type fakeSource struct{ off atomic.Int64 }

func (f *fakeSource) Offset() int { return int(f.off.Load()) }

func TestPollingObserver(t *testing.T) {
	src := &fakeSource{}
	obs := NewPollingObserver(src, 3, 5*time.Millisecond)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 10})
	assertQuiet(t, sub.C)

	src.off.Store(20)
	assert.True(t, recv(t, sub.C))

	src.off.Store(0)
	assert.False(t, recv(t, sub.C))
}

func TestPollingObserver_ScrollBeforeFirstTick(t *testing.T) {
	src := &fakeSource{}
	// A long interval guarantees the scroll lands before the poller samples.
	obs := NewPollingObserver(src, 3, 20*time.Millisecond)
	defer obs.Close()

	sub := obs.Observe(Region{Top: 10})
	src.off.Store(20)

	assert.True(t, recv(t, sub.C))
	assert.True(t, sub.Pinned())
}

func TestPollingObserver_CloseWaits(t *testing.T) {
	src := &fakeSource{}
	obs := NewPollingObserver(src, 0, time.Millisecond)
	sub := obs.Observe(Region{Top: 0})

	require.NoError(t, obs.Close())
	assert.Equal(t, 0, obs.Active())

	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestNew_SelectsImplementation(t *testing.T) {
	pos := NewPosition()

	obs := New(pos, Options{})
	defer obs.Close()
	_, ok := obs.(*IntersectionObserver)
	assert.True(t, ok, "notifying source should get the intersection observer")

	poll := New(PollOnly(pos), Options{PollInterval: time.Millisecond})
	defer poll.Close()
	_, ok = poll.(*PollingObserver)
	assert.True(t, ok)

	forced := New(pos, Options{ForcePolling: true, PollInterval: time.Millisecond})
	defer forced.Close()
	_, ok = forced.(*PollingObserver)
	assert.True(t, ok)
}

func TestNew_SameObservableBehaviour(t *testing.T) {
	for _, force := range []bool{false, true} {
		pos := NewPosition()
		obs := New(pos, Options{SentinelOffset: 2, PollInterval: time.Millisecond, ForcePolling: force})

		sub := obs.Observe(Region{Top: 4})
		pos.Set(7)
		assert.True(t, recv(t, sub.C), "force=%v", force)
		pos.Set(1)
		assert.False(t, recv(t, sub.C), "force=%v", force)

		require.NoError(t, obs.Close())
	}
}

func TestPosition(t *testing.T) {
	pos := NewPosition()
	var calls []int
	cancel := pos.Subscribe(func(off int) { calls = append(calls, off) })

	pos.Set(3)
	pos.Set(3)
	pos.Set(4)
	cancel()
	pos.Set(5)

	assert.Equal(t, []int{3, 4}, calls)
	assert.Equal(t, 5, pos.Offset())
}
