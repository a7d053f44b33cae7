package library

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of write events most exporters produce
// when rewriting the file.
const debounceWindow = 500 * time.Millisecond

// Watcher reloads a [Store] when its library export changes on disk.
//
// The parent directory is watched rather than the file itself so atomic
// rename-into-place exports are picked up.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	logger  *log.Logger
}

// NewWatcher creates a watcher for the store's export file.
func NewWatcher(store *Store, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(store.Path())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{store: store, watcher: fsw, logger: logger}, nil
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	target := filepath.Clean(w.store.Path())

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceWindow, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if w.logger != nil {
				w.logger.Debug("library export changed", "op", event.Op.String())
			}
			schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watch error", "err", err)
			}
		case <-reload:
			if err := w.store.Reload(); err != nil && w.logger != nil {
				w.logger.Warn("keeping previous library snapshot", "err", err)
			}
		}
	}
}
