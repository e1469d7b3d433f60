package services

import (
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// PricingLine is a requested (menu item, quantity) pair. It carries no
// price: prices only ever come from the catalog.
type PricingLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// Quote is the pricer's output and the only accepted source for what an
// order persists.
type Quote struct {
	Region kernel.Region
	Items  []order.Item
	Total  kernel.Money
}

// OrderPricer is the pricing engine.
//
// Business rules:
//   - At least one line, every quantity ≥ 1
//   - Every requested id resolves to a catalog entry, otherwise NotFound
//     naming all missing ids
//   - Non-admins may only order items of their own region; the first
//     mismatch is Forbidden
//   - Admins may order any region, but one order holds one region
type OrderPricer struct {
	policy AccessPolicy
}

func NewOrderPricer(policy AccessPolicy) OrderPricer {
	return OrderPricer{policy: policy}
}

// Price resolves lines against menuItems (as returned by the catalog for
// the requested ids) and snapshots their current prices.
//
// Example:
//
//	quote, err := pricer.Price(caller, []services.PricingLine{{MenuItemID: id, Quantity: 2}}, items)
//	// quote.Total == price × 2, quote.Region == caller.Region()
func (p OrderPricer) Price(caller identity.Identity, lines []PricingLine, menuItems []*catalog.MenuItem) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, errs.NewValueIsRequiredError("items")
	}
	for i, line := range lines {
		if line.Quantity < 1 {
			return Quote{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), line.Quantity, 1, order.MaxQuantity)
		}
	}

	byID := make(map[string]*catalog.MenuItem, len(menuItems))
	for _, m := range menuItems {
		if err := m.Validate(); err != nil {
			return Quote{}, err
		}
		byID[m.ID().String()] = m
	}

	resolved, err := resolve(lines, byID)
	if err != nil {
		return Quote{}, err
	}

	region, err := p.orderRegion(caller, resolved)
	if err != nil {
		return Quote{}, err
	}

	items := make([]order.Item, 0, len(lines))
	for i, line := range lines {
		item, err := order.NewItem(line.MenuItemID, line.Quantity, resolved[i].Price())
		if err != nil {
			return Quote{}, err
		}
		items = append(items, item.WithName(resolved[i].Name()))
	}

	return Quote{Region: region, Items: items, Total: order.Total(items)}, nil
}

func resolve(lines []PricingLine, byID map[string]*catalog.MenuItem) ([]*catalog.MenuItem, error) {
	resolved := make([]*catalog.MenuItem, len(lines))
	var missing []string
	seen := make(map[string]struct{})

	for i, line := range lines {
		key := line.MenuItemID.String()
		if m, ok := byID[key]; ok {
			resolved[i] = m
			continue
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return nil, errs.NewObjectNotFoundError("menuItem", strings.Join(missing, ", "))
	}
	return resolved, nil
}

func (p OrderPricer) orderRegion(caller identity.Identity, items []*catalog.MenuItem) (kernel.Region, error) {
	if !caller.IsAdmin() {
		for _, m := range items {
			if err := p.policy.Authorize(caller, OpCreateOrder, Resource{ID: m.ID().String(), Region: m.Region()}); err != nil {
				return "", err
			}
		}
		return caller.Region(), nil
	}

	region := items[0].Region()
	for _, m := range items[1:] {
		if m.Region() != region {
			return "", errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("items span regions %s and %s, an order belongs to one region", region, m.Region()))
		}
	}
	return region, nil
}
