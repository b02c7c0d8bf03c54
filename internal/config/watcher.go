// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads a config file when it changes on disk.
type Watcher interface {
	// Close stops watching and releases resources
	Close() error
}

// ReloadFunc receives each successfully reloaded configuration.
type ReloadFunc func(*Config)

const defaultDebounce = 150 * time.Millisecond

// Watch starts watching path and calls onReload after every change that
// parses and validates. Invalid edits are logged and skipped, so the last
// good configuration stays in effect. fsnotify is tried first; when it is
// unavailable the file is polled at interval.
func Watch(path string, interval time.Duration, onReload ReloadFunc) (Watcher, error) {
	fw, err := NewFsnotifyWatcher(path, defaultDebounce, onReload)
	if err == nil {
		return fw, nil
	}
	log.Warn().Err(err).Str("path", path).Msg("fsnotify unavailable, polling config")
	return NewPollingWatcher(path, interval, onReload), nil
}

// reload loads path and hands the result to fn.
func reload(path string, fn ReloadFunc) {
	cfg, err := LoadFromPath(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config reload rejected")
		return
	}
	log.Info().Str("path", path).Msg("config reloaded")
	if fn != nil {
		fn(cfg)
	}
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher watches the config file's directory, since editors often
// replace the file instead of writing it in place.
type FsnotifyWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload ReloadFunc

	mu      sync.Mutex
	pending time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFsnotifyWatcher creates and starts an fsnotify-based watcher.
func NewFsnotifyWatcher(path string, debounce time.Duration, onReload ReloadFunc) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	fw := &FsnotifyWatcher{
		path:     filepath.Clean(path),
		watcher:  watcher,
		debounce: debounce,
		onReload: onReload,
		ctx:      ctx,
		cancel:   cancel,
	}

	fw.wg.Add(2)
	go fw.processEvents()
	go fw.processPending()
	return fw, nil
}

func (fw *FsnotifyWatcher) processEvents() {
	defer fw.wg.Done()
	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.mu.Lock()
				fw.pending = time.Now()
				fw.mu.Unlock()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Msg("config watcher error")
		}
	}
}

// processPending reloads once writes have settled.
func (fw *FsnotifyWatcher) processPending() {
	defer fw.wg.Done()
	ticker := time.NewTicker(fw.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case now := <-ticker.C:
			fw.mu.Lock()
			due := !fw.pending.IsZero() && now.Sub(fw.pending) >= fw.debounce
			if due {
				fw.pending = time.Time{}
			}
			fw.mu.Unlock()

			if due {
				reload(fw.path, fw.onReload)
			}
		}
	}
}

// Close stops watching and releases resources
func (fw *FsnotifyWatcher) Close() error {
	fw.cancel()
	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher reloads the config when its modification time changes.
type PollingWatcher struct {
	path     string
	interval time.Duration
	onReload ReloadFunc
	modTime  time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPollingWatcher creates and starts a polling watcher.
func NewPollingWatcher(path string, interval time.Duration, onReload ReloadFunc) *PollingWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	pw := &PollingWatcher{
		path:     path,
		interval: interval,
		onReload: onReload,
		ctx:      ctx,
		cancel:   cancel,
	}
	if info, err := os.Stat(path); err == nil {
		pw.modTime = info.ModTime()
	}

	pw.wg.Add(1)
	go pw.poll()
	return pw
}

func (pw *PollingWatcher) poll() {
	defer pw.wg.Done()
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(pw.path)
			if err != nil || info.ModTime().Equal(pw.modTime) {
				continue
			}
			pw.modTime = info.ModTime()
			reload(pw.path, pw.onReload)
		}
	}
}

// Close stops polling.
func (pw *PollingWatcher) Close() error {
	pw.cancel()
	pw.wg.Wait()
	return nil
}
