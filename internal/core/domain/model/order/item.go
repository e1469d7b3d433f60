package order

import (
	"errors"
	"math"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// MaxQuantity bounds a single line; quantities are stored as int4.
const MaxQuantity = math.MaxInt32

// Item is a line of an order. Price and name are the menu item's values at
// order time and never follow later catalog changes.
type Item struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	price      kernel.Money
}

func NewItem(menuItemID kernel.UUID, quantity int, price kernel.Money) (Item, error) {
	var quantityErr error
	if quantity < 1 || quantity > MaxQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}

	if err := errors.Join(menuItemID.Validate(), price.Validate(), quantityErr); err != nil {
		return Item{}, err
	}

	return Item{menuItemID: menuItemID, quantity: quantity, price: price}, nil
}

// WithName returns a copy of the item carrying the menu item's name. The name
// is informational; an empty one is valid.
func (i Item) WithName(name string) Item {
	i.name = name
	return i
}

func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i Item) Name() string            { return i.name }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) Price() kernel.Money     { return i.price }

// LineTotal is price × quantity.
func (i Item) LineTotal() kernel.Money {
	return i.price.Multiply(i.quantity)
}

// Total sums the line totals of items.
func Total(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
