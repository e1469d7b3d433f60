package catalog

import (
	"errors"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant groups menu items and pins them to a region.
type Restaurant struct {
	id        kernel.UUID
	name      string
	region    kernel.Region
	createdAt time.Time
	menuItems []*MenuItem
	guard     guard.ConstructorGuard
}

// NewRestaurant builds a restaurant. Every menu item must belong to it and
// share its region.
func NewRestaurant(
	id kernel.UUID,
	name string,
	region kernel.Region,
	createdAt time.Time,
	menuItems []*MenuItem,
) (*Restaurant, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(id.Validate(), region.Validate(), nameErr); err != nil {
		return nil, err
	}

	for _, item := range menuItems {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if !item.RestaurantID().IsEqual(id) || item.Region() != region {
			return nil, errs.NewValueIsInvalidErrorWithCause("menuItems",
				errors.New("menu item "+item.ID().String()+" does not belong to restaurant "+id.String()))
		}
	}

	return &Restaurant{
		id:        id,
		name:      name,
		region:    region,
		createdAt: createdAt,
		menuItems: menuItems,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID       { return r.id }
func (r *Restaurant) Name() string          { return r.name }
func (r *Restaurant) Region() kernel.Region { return r.region }
func (r *Restaurant) CreatedAt() time.Time  { return r.createdAt }

// MenuItems returns a copy of the restaurant's menu.
func (r *Restaurant) MenuItems() []*MenuItem {
	items := make([]*MenuItem, len(r.menuItems))
	copy(items, r.menuItems)
	return items
}
