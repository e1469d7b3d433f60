package ports

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"
)

// RestaurantFilter selects a page of restaurants. An empty Region means
// every region.
type RestaurantFilter struct {
	Region kernel.Region
	Page   int
	Limit  int
}

// RestaurantPage is one page of restaurants plus the unpaged total.
type RestaurantPage struct {
	Restaurants []*catalog.Restaurant
	Total       int64
}

// CatalogRepository is the read-only view of restaurant catalogs.
type CatalogRepository interface {
	// FindMenuItemsByIDs returns the menu items that exist among ids, each
	// carrying its restaurant's region. Missing ids are simply absent.
	FindMenuItemsByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.MenuItem, error)

	// GetRestaurant returns one restaurant with its menu, or a NotFound
	// error.
	GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)

	// ListRestaurants returns restaurants with their menus, newest first.
	ListRestaurants(ctx context.Context, filter RestaurantFilter) (RestaurantPage, error)
}
