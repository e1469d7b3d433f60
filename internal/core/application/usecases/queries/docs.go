// Package queries contains read operations. Every query carries the caller's
// identity and is narrowed by the access policy: single lookups of invisible
// orders and restaurants fail with NotFound, lists are filtered silently.
package queries

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// OrderReader is the read side of ports.OrderRepository used by queries.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	Find(ctx context.Context, scope order.Scope) ([]*order.Order, error)
}

// RestaurantReader is the read side of ports.CatalogRepository used by queries.
type RestaurantReader interface {
	GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)
	ListRestaurants(ctx context.Context, filter ports.RestaurantFilter) (ports.RestaurantPage, error)
}
