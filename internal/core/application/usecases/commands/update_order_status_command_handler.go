package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// UpdateOrderStatusCommandHandler lets managers (own region) and admins move
// an order along the state machine. Members are refused.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.policy, cmd.OrderID(), cmd.Caller(), services.OpUpdateOrderStatus,
		func(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
			if err := o.ChangeStatus(cmd.Status(), cmd.Caller().UserID()); err != nil {
				return err
			}
			return repo.UpdateStatus(ctx, o)
		})
}
