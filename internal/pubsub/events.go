// Package pubsub provides a generic publish/subscribe event system used to
// fan out declaration reload results and log lines in watch mode.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	// ReloadedEvent signals that a declaration file was recompiled.
	ReloadedEvent EventType = "reloaded"
	// FailedEvent signals that recompilation of a declaration file failed.
	FailedEvent EventType = "failed"
	// LogEvent carries a formatted log line.
	LogEvent EventType = "log"
)

// Event is a published event with a typed payload.
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
