// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work, and outbound messaging.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations never open transactions; they run on whatever connection
// the unit of work hands them.
type OrderRepository interface {
	// Add persists a new order with all its items and, when present, its
	// initial payment method.
	Add(ctx context.Context, aggregate *order.Order) error

	// SavePayment upserts the order's payment method keyed by order id:
	// an existing row is updated, otherwise one is inserted.
	SavePayment(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus persists the aggregate's current status.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with items and payment method.
	// Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the surrounding
	// transaction ends. Concurrent mutators of the same order serialize here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Find returns the orders matching scope, newest first.
	//
	// Example:
	//   orders, err := repo.Find(ctx, order.InRegion(kernel.RegionIndia))
	Find(ctx context.Context, scope order.Scope) ([]*order.Order, error)
}
