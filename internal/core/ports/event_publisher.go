package ports

import (
	"context"
	"time"
)

// OutboundMessage is a committed domain event on its way to the message broker.
type OutboundMessage struct {
	ID         string
	Key        string
	EventType  string
	Payload    []byte
	OccurredAt time.Time
}

// EventPublisher delivers outbox messages to the broker. Publish either accepts every
// message or returns an error, in which case the whole batch is retried later.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboundMessage) error
}
