package queries

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// GetRestaurantQueryHandler returns a restaurant with its menu. Admins see
// every region; a restaurant outside anyone else's region is reported
// exactly like a missing one.
type GetRestaurantQueryHandler struct {
	restaurants RestaurantReader
	policy      services.AccessPolicy
}

func NewGetRestaurantQueryHandler(restaurants RestaurantReader, policy services.AccessPolicy) GetRestaurantQueryHandler {
	return GetRestaurantQueryHandler{restaurants: restaurants, policy: policy}
}

func (h GetRestaurantQueryHandler) Handle(ctx context.Context, query GetRestaurantQuery) (*catalog.Restaurant, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	restaurant, err := h.restaurants.GetRestaurant(ctx, query.RestaurantID())
	if err != nil {
		return nil, err
	}

	if region, ok := h.policy.RestaurantRegion(query.Caller()); ok && restaurant.Region() != region {
		return nil, errs.NewObjectNotFoundError("restaurant", query.RestaurantID().String())
	}

	return restaurant, nil
}
