package commands

import (
	"context"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// mutation applies a state change to a locked order and persists it.
type mutation func(ctx context.Context, repo ports.OrderRepository, o *order.Order) error

// mutateOrder runs the shared read-check-write sequence of pay, cancel and
// status updates inside one transaction:
//
//  1. lock the order row (absent -> NotFound)
//  2. authorize op (invisible -> NotFound, disallowed -> Forbidden)
//  3. apply the state machine change (illegal -> BadRequest) and persist
//
// A concurrent loser blocks on the lock, then sees the winner's status.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	orderID kernel.UUID,
	caller identity.Identity,
	op services.Operation,
	apply mutation,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = policy.Authorize(caller, op, services.OrderResource(o)); err != nil {
		return nil, err
	}

	if err = apply(ctx, repo, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
