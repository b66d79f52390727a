// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// LIVE RELOAD
// =============================================================================

// Watcher reloads the store when its file changes on disk and invokes the
// callback with the fresh preferences. Rewrites arrive as bursts of
// events (atomic saves rename over the file), so changes are debounced.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(Prefs)

	mu      sync.Mutex
	pending bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWatcher creates a watcher over the store's file. onChange runs on the
// watcher goroutine after every debounced reload.
func NewWatcher(store *Store, debounce time.Duration, onChange func(Prefs)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		store:    store,
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching. The parent directory is watched rather than the
// file itself: atomic saves replace the file, which would invalidate a
// direct watch.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.store.Path())); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.store.Path() {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("prefs: watch error: %v", err)
		}
	}
}

// scheduleReload coalesces a burst of events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	if w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = true
	w.mu.Unlock()

	go func() {
		select {
		case <-w.ctx.Done():
			return
		case <-time.After(w.debounce):
		}

		w.mu.Lock()
		w.pending = false
		w.mu.Unlock()

		if err := w.store.Reload(); err != nil {
			log.Printf("prefs: reload failed: %v", err)
			return
		}
		if w.onChange != nil {
			w.onChange(w.store.Get())
		}
	}()
}
