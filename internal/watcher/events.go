package watcher

import "github.com/kijko/kijko/internal/pubsub"

// EventKind classifies watcher events.
type EventKind string

const (
	// RepoChanged signals that branch or worktree state changed on disk.
	RepoChanged EventKind = "repo_changed"
	// WatchError carries a file system watcher error.
	WatchError EventKind = "watch_error"
)

// ChangeEvent is published on the watcher's broker.
type ChangeEvent struct {
	Kind EventKind
	Err  error
}

// Broker exposes the watcher's event broker for pub/sub consumers. The
// bubbletea app subscribes here; the channel returned by Start remains
// available for plain consumers.
func (w *Watcher) Broker() *pubsub.Broker[ChangeEvent] {
	return w.broker
}
