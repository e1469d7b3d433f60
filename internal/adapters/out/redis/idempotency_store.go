// Package redis keeps idempotency keys for order creation in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// DefaultPendingTTL bounds how long an unfinished reservation blocks retries
// when neither Complete nor Release ever reaches Redis.
const DefaultPendingTTL = 30 * time.Second

// IdempotencyStore implements ports.IdempotencyStore. A key is first set to a
// pending marker with SETNX, which expires after pendingTTL, and later
// overwritten with the order id, which expires after ttl.
type IdempotencyStore struct {
	client      redis.UniversalClient
	serviceName string
	ttl         time.Duration
	pendingTTL  time.Duration
}

// NewIdempotencyStore returns a store keeping completed keys for ttl and
// pending reservations for pendingTTL. A non-positive pendingTTL falls back
// to DefaultPendingTTL; a pendingTTL longer than ttl is cut down to ttl.
func NewIdempotencyStore(
	client redis.UniversalClient,
	serviceName string,
	ttl time.Duration,
	pendingTTL time.Duration,
) *IdempotencyStore {
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	if pendingTTL > ttl {
		pendingTTL = ttl
	}
	return &IdempotencyStore{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
		pendingTTL:  pendingTTL,
	}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, userID, key string) (string, bool, error) {
	redisKey := s.generateKey(userID, key)

	reserved, err := s.client.SetNX(ctx, redisKey, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if reserved {
		return "", true, nil
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		return s.Reserve(ctx, userID, key)
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if value == pendingMarker {
		return "", false, ports.ErrIdempotencyKeyInFlight
	}
	return value, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, userID, key, orderID string) error {
	return s.client.Set(ctx, s.generateKey(userID, key), orderID, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, userID, key string) error {
	return s.client.Del(ctx, s.generateKey(userID, key)).Err()
}

// generateKey follows service:operation:key, scoped per user.
func (s *IdempotencyStore) generateKey(userID, key string) string {
	return fmt.Sprintf("%s:create_order:%s:%s", s.serviceName, userID, key)
}
