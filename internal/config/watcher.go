package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
)

// debounceDelay spaces out reloads while an editor is still writing
// the file.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads configuration when the config file changes and
// broadcasts each successfully loaded snapshot to subscribers.
//
// It observes the directory containing the file rather than the file
// itself, so editors that replace files by rename keep working.
type Watcher struct {
	path   string
	flags  *pflag.FlagSet
	logger *slog.Logger

	mu        sync.Mutex
	listeners map[chan *Config]struct{}
}

// NewWatcher prepares a watcher for the given config file. Run starts
// it.
func NewWatcher(path string, flags *pflag.FlagSet, logger *slog.Logger) *Watcher {
	return &Watcher{
		path:      path,
		flags:     flags,
		logger:    logger,
		listeners: make(map[chan *Config]struct{}),
	}
}

// Subscribe returns a channel that receives each new configuration
// snapshot, whole-replacement. The caller must call Unsubscribe when
// done to prevent goroutine leaks.
func (w *Watcher) Subscribe() chan *Config {
	ch := make(chan *Config, 1)
	w.mu.Lock()
	w.listeners[ch] = struct{}{}
	w.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (w *Watcher) Unsubscribe(ch chan *Config) {
	w.mu.Lock()
	delete(w.listeners, ch)
	w.mu.Unlock()
	close(ch)
}

// broadcast sends cfg to all listeners.
// Non-blocking: if a listener's channel is full, the snapshot is
// skipped (the listener catches up on the next broadcast).
func (w *Watcher) broadcast(cfg *Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.listeners {
		select {
		case ch <- cfg:
		default:
		}
	}
}

// Run watches until ctx is canceled. A load failure after a change is
// logged and skipped, leaving the previous snapshot in effect.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only write/create events for the config file itself
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			// Debounce reloads
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watch error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path, w.flags)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
		return
	}
	w.logger.Info("configuration reloaded", "path", w.path)
	w.broadcast(cfg)
}
