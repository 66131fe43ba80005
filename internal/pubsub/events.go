// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent signals that a new entity appeared (snapshot ingested,
	// log entry written).
	CreatedEvent EventType = "created"
	// UpdatedEvent signals that an existing entity changed (repository
	// state refreshed, diagram re-laid-out).
	UpdatedEvent EventType = "updated"
	// DeletedEvent signals that an entity was removed.
	DeletedEvent EventType = "deleted"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
