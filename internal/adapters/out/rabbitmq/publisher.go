package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ordering/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// ErrNotAcknowledged is returned when the broker nacks a confirmed publish.
var ErrNotAcknowledged = errors.New("broker did not acknowledge message")

type channelProvider interface {
	Channel(ctx context.Context) (publishChannel, error)
}

// Publisher implements ports.EventPublisher. Messages are persistent and,
// when the channel is in confirm mode, Publish waits for the broker ack.
type Publisher struct {
	channels channelProvider
	exchange string
	logger   *slog.Logger

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

func NewPublisher(channels channelProvider, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{
		channels: channels,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq"),
	}
}

func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channels.Channel(ctx)
	if err != nil {
		return fmt.Errorf("no broker channel: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(
		ctx,
		p.exchange,   // exchange
		message.Name, // routing key
		false,        // mandatory
		false,        // immediate
		toPublishing(message),
	)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to publish message",
			"messageId", message.ID.String(), "routingKey", message.Name, "error", err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	// nil when the channel is not in confirm mode
	if confirmation != nil {
		acked, waitErr := confirmation.WaitContext(ctx)
		if waitErr != nil {
			return fmt.Errorf("failed waiting for publish confirm: %w", waitErr)
		}
		if !acked {
			return ErrNotAcknowledged
		}
	}

	p.logger.DebugContext(ctx, "message published",
		"messageId", message.ID.String(),
		"routingKey", message.Name,
		"size", len(message.Payload))
	return nil
}

func toPublishing(message ports.OutboxMessage) amqp091.Publishing {
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    message.ID.String(),
		Type:         message.Name,
		Timestamp:    message.OccurredAt,
		Headers: amqp091.Table{
			"aggregate_id": message.AggregateID.String(),
		},
		Body: message.Payload,
	}
}
