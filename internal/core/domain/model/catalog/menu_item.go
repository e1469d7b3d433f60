package catalog

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

// MenuItem is a priced dish of a restaurant. Region is denormalized from the
// owning restaurant so pricing can check region consistency without a second
// lookup.
type MenuItem struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	region       kernel.Region
	name         string
	price        kernel.Money
	guard        guard.ConstructorGuard
}

// NewMenuItem validates and builds a menu item. Price must be a constructed,
// non-negative Money.
func NewMenuItem(
	id kernel.UUID,
	restaurantID kernel.UUID,
	region kernel.Region,
	name string,
	price kernel.Money,
) (*MenuItem, error) {
	item := &MenuItem{guard: guard.NewConstructorGuard()}

	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(
		id.Validate(),
		restaurantID.Validate(),
		region.Validate(),
		price.Validate(),
		nameErr,
	); err != nil {
		return nil, err
	}

	item.id = id
	item.restaurantID = restaurantID
	item.region = region
	item.name = name
	item.price = price
	return item, nil
}

func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

func (m *MenuItem) ID() kernel.UUID           { return m.id }
func (m *MenuItem) RestaurantID() kernel.UUID { return m.restaurantID }
func (m *MenuItem) Region() kernel.Region     { return m.region }
func (m *MenuItem) Name() string              { return m.name }
func (m *MenuItem) Price() kernel.Money       { return m.price }
