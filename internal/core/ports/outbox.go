package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event awaiting publication.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository stores events in the same transaction as the aggregate
// change that produced them.
type OutboxRepository interface {
	// Add appends messages.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// LockUnpublished returns up to limit unpublished messages in occurrence
	// order, skipping rows locked by another relay.
	LockUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the given messages as published at publishedAt.
	MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
