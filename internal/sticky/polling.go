// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sticky

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// POLLING OBSERVER
// =============================================================================

// PollingObserver samples the scroll offset on a ticker. It is the fallback
// for containers that cannot push scroll changes; transitions are the same
// as IntersectionObserver's but can lag by up to one interval.
type PollingObserver struct {
	*registry
	src      ScrollSource
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewPollingObserver starts polling src immediately.
func NewPollingObserver(src ScrollSource, sentinelOffset int, interval time.Duration) *PollingObserver {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())

	po := &PollingObserver{
		registry: newRegistry(src.Offset(), sentinelOffset),
		src:      src,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}

	po.wg.Add(1)
	go po.poll()
	return po
}

// Observe implements Observer.
func (po *PollingObserver) Observe(region Region) *Subscription {
	return po.add(region)
}

// Active returns the number of live subscriptions.
func (po *PollingObserver) Active() int {
	return po.count()
}

func (po *PollingObserver) poll() {
	defer po.wg.Done()

	ticker := time.NewTicker(po.interval)
	defer ticker.Stop()

	for {
		select {
		case <-po.ctx.Done():
			return
		case <-ticker.C:
			// Compare against the offset regions were last evaluated at, so a
			// scroll before the first tick is not taken as the baseline.
			off := po.src.Offset()
			if off == po.current() {
				continue
			}
			po.evaluate(off)
		}
	}
}

// Close stops the poller, waits for it to exit and closes all
// subscriptions.
func (po *PollingObserver) Close() error {
	po.once.Do(func() {
		po.cancel()
		po.wg.Wait()
		po.closeAll()
	})
	return nil
}
