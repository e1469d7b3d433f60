package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// PayOrderCommandHandler records a completed payment and marks the order
// PAID. Only the owner may pay. The payment upsert and the status update
// commit together.
type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

func NewPayOrderCommandHandler(uowFactory OrderUoWFactory, policy services.AccessPolicy) PayOrderCommandHandler {
	return PayOrderCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, h.policy, cmd.OrderID(), cmd.Caller(), services.OpPayOrder,
		func(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
			if err := o.Pay(cmd.Payment(), cmd.Caller().UserID()); err != nil {
				return err
			}
			if err := repo.SavePayment(ctx, o); err != nil {
				return err
			}
			return repo.UpdateStatus(ctx, o)
		})
}
