package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// CancelOrderCommandHandler cancels PENDING orders for their owner, a
// manager of their region, or an admin. PAID and CANCELLED orders are refused
// with BadRequest.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, policy services.AccessPolicy) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.policy, cmd.OrderID(), cmd.Caller(), services.OpCancelOrder,
		func(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
			if err := o.Cancel(cmd.Caller().UserID()); err != nil {
				return err
			}
			return repo.UpdateStatus(ctx, o)
		})
}
