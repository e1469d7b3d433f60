// Package rabbitmq publishes outbox messages to a RabbitMQ topic exchange.
// The routing key is the event name (order.created, order.status_changed), so
// consumers bind with patterns such as "order.*".
package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

// publishChannel is the part of *amqp091.Channel the publisher needs.
type publishChannel interface {
	PublishWithDeferredConfirmWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) (*amqp091.DeferredConfirmation, error)
}

// Connection owns an AMQP connection and one confirm-mode channel. A closed
// connection is re-dialed on the next Channel call.
type Connection struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// Dial connects with retries and declares the durable topic exchange.
func Dial(ctx context.Context, url, exchange string, logger *slog.Logger) (*Connection, error) {
	c := &Connection{
		url:      url,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq"),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Channel returns the live channel, reconnecting first when needed.
func (c *Connection) Channel(ctx context.Context) (publishChannel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() || c.channel == nil || c.channel.IsClosed() {
		c.closeLocked()
		if err := c.dialLocked(); err != nil {
			return nil, err
		}
		c.logger.InfoContext(ctx, "reconnected to broker")
	}
	return c.channel, nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Connection) connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		if err = c.dialLocked(); err == nil {
			return nil
		}
		if attempt == dialAttempts {
			break
		}

		wait := time.Duration(attempt) * dialBackoff
		c.logger.WarnContext(ctx, "failed to connect to broker, retrying",
			"attempt", attempt, "retryIn", wait.String(), "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", dialAttempts, err)
}

func (c *Connection) dialLocked() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err = ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		c.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to declare %s exchange: %w", c.exchange, err)
	}

	c.conn = conn
	c.channel = ch
	return nil
}

func (c *Connection) closeLocked() error {
	var err error
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil && !c.conn.IsClosed() {
		err = c.conn.Close()
	}
	c.conn = nil
	return err
}
