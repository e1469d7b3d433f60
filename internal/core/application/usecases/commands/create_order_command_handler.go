package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// CreateOrderCommandHandler places orders. Pricing, the order row, its items
// and the optional initial payment method share one transaction: a missing
// menu item or a region violation leaves nothing behind.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewOrderPricer(services.NewAccessPolicy()))
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o.Status() == order.Pending, o.TotalAmount() computed from the catalog
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricer     services.OrderPricer
}

func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory, pricer services.OrderPricer) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
	}
}

// Handle prices the requested lines against the catalog and stores the new
// PENDING order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuItems, err := uow.CatalogRepository().FindMenuItemsByIDs(ctx, cmd.MenuItemIDs())
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Price(cmd.Caller(), cmd.Lines(), menuItems)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Caller().UserID(), quote.Region, quote.Items, cmd.Payment(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
