package queries

import (
	"errors"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetRestaurantQueryIsNotConstructed = errors.New(
		"GetRestaurantQuery must be created via NewGetRestaurantQuery constructor",
	)
)

// GetRestaurantQuery fetches one restaurant, with its menu, visible to the
// caller.
type GetRestaurantQuery struct {
	restaurantID kernel.UUID
	caller       identity.Identity

	guard guard.ConstructorGuard
}

func NewGetRestaurantQuery(restaurantID kernel.UUID, caller identity.Identity) (GetRestaurantQuery, error) {
	if err := errors.Join(restaurantID.Validate(), caller.Validate()); err != nil {
		return GetRestaurantQuery{}, err
	}
	return GetRestaurantQuery{restaurantID: restaurantID, caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRestaurantQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantQueryIsNotConstructed)
}

func (q GetRestaurantQuery) RestaurantID() kernel.UUID { return q.restaurantID }
func (q GetRestaurantQuery) Caller() identity.Identity { return q.caller }
