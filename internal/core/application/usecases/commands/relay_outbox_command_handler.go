package commands

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed domain events from the outbox to
// the broker. Rows are locked with SKIP LOCKED, so parallel relays split the
// backlog instead of double-publishing it. Delivery is at least once.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{uowFactory: uowFactory, publisher: publisher}
}

// Handle returns how many messages were published. When a publish fails,
// the messages published before it are still marked and committed and the
// failure is returned; the rest wait for the next run.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.LockUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", msg.Name, msg.ID, publishErr)
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
