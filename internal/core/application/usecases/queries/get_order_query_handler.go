package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// GetOrderQueryHandler returns an order with its items and payment method.
// An order outside the caller's visibility is reported exactly like a
// missing one.
type GetOrderQueryHandler struct {
	orders OrderReader
	policy services.AccessPolicy
}

func NewGetOrderQueryHandler(orders OrderReader, policy services.AccessPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, policy: policy}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(query.Caller(), services.OpViewOrder, services.OrderResource(o)); err != nil {
		return nil, err
	}

	return o, nil
}
