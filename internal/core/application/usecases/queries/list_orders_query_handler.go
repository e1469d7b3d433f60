package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

type ListOrdersQueryHandler struct {
	orders OrderReader
	policy services.AccessPolicy
}

func NewListOrdersQueryHandler(orders OrderReader, policy services.AccessPolicy) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, policy: policy}
}

// Handle narrows the listing with the caller's scope. It never fails for
// lack of visibility; an empty slice is returned instead.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.Find(ctx, h.policy.OrderScope(query.Caller()))
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	return orders, nil
}
