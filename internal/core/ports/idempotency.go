package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyKeyInFlight reports that another request with the same key
// is still being processed.
var ErrIdempotencyKeyInFlight = errors.New("request with this idempotency key is in progress")

// IdempotencyStore remembers which order a client-supplied key produced, so
// a retried create returns the original order instead of a duplicate.
type IdempotencyStore interface {
	// Reserve claims key for userID. When the key already completed it
	// returns the stored order id and reserved=false. A key reserved but not
	// completed yields ErrIdempotencyKeyInFlight.
	Reserve(ctx context.Context, userID, key string) (orderID string, reserved bool, err error)

	// Complete records the order id produced under a reserved key.
	Complete(ctx context.Context, userID, key, orderID string) error

	// Release drops a reservation after a failed attempt so the client may retry.
	Release(ctx context.Context, userID, key string) error
}
