package commands

import (
	"errors"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// CancelOrderCommand asks to cancel a PENDING order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  identity.Identity

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, caller identity.Identity) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), caller.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CancelOrderCommand) Caller() identity.Identity { return c.caller }
