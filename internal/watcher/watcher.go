// Package watcher provides file system watching with debouncing for
// the repository's git metadata, so the map refreshes when branches or
// worktrees change.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kijko/kijko/internal/pubsub"
)

// Watcher monitors a repository's .git directory and signals changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	gitDir    string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
	broker    *pubsub.Broker[ChangeEvent]
}

// Config holds watcher configuration options.
type Config struct {
	GitDir      string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(gitDir string) Config {
	return Config{
		GitDir:      gitDir,
		DebounceDur: 1 * time.Second,
	}
}

// New creates a new git metadata watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		gitDir:    cfg.GitDir,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		broker:    pubsub.NewBroker[ChangeEvent](),
	}, nil
}

// Start begins watching. Returns a channel that receives a signal when
// the repository's branch or worktree state changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsWatcher.Add(w.gitDir); err != nil {
		return nil, fmt.Errorf("watching git dir %s: %w", w.gitDir, err)
	}

	// Branch tips live under refs/heads; worktree registrations under
	// worktrees. Both are optional - packed refs or no linked worktrees.
	for _, sub := range []string{"refs/heads", "worktrees"} {
		dir := filepath.Join(w.gitDir, sub)
		if _, err := os.Stat(dir); err == nil {
			if err := w.fsWatcher.Add(dir); err != nil {
				return nil, fmt.Errorf("watching %s: %w", dir, err)
			}
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	w.broker.Close()
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				// Non-blocking send - drop if channel full
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				w.broker.Publish(pubsub.UpdatedEvent, ChangeEvent{Kind: RepoChanged})
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Keep watching through transient errors; subscribers decide
			// whether to surface them.
			w.broker.Publish(pubsub.UpdatedEvent, ChangeEvent{Kind: WatchError, Err: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a refresh.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	switch base {
	case "HEAD", "packed-refs", "ORIG_HEAD":
		return true
	}

	// Anything under refs/heads or worktrees counts.
	dir := filepath.Base(filepath.Dir(event.Name))
	return dir == "heads" || dir == "worktrees"
}
