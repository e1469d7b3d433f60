package queries

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

type ListRestaurantsQueryHandler struct {
	restaurants RestaurantReader
	policy      services.AccessPolicy
}

func NewListRestaurantsQueryHandler(restaurants RestaurantReader, policy services.AccessPolicy) ListRestaurantsQueryHandler {
	return ListRestaurantsQueryHandler{restaurants: restaurants, policy: policy}
}

// Handle lists every region for admins and the caller's region otherwise.
func (h ListRestaurantsQueryHandler) Handle(
	ctx context.Context,
	query ListRestaurantsQuery,
) (ListRestaurantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListRestaurantsQueryResponse{}, err
	}

	filter := ports.RestaurantFilter{Page: query.Page(), Limit: query.Limit()}
	if region, ok := h.policy.RestaurantRegion(query.Caller()); ok {
		filter.Region = region
	}

	page, err := h.restaurants.ListRestaurants(ctx, filter)
	if err != nil {
		return ListRestaurantsQueryResponse{}, err
	}

	totalPages := int((page.Total + int64(query.Limit()) - 1) / int64(query.Limit()))
	restaurants := page.Restaurants
	if restaurants == nil {
		restaurants = []*catalog.Restaurant{}
	}

	return ListRestaurantsQueryResponse{
		Restaurants: restaurants,
		Total:       page.Total,
		Page:        query.Page(),
		Limit:       query.Limit(),
		TotalPages:  totalPages,
		HasNextPage: query.Page() < totalPages,
		HasPrevPage: query.Page() > 1,
	}, nil
}
