package commands

import (
	"errors"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand asks to move an order to a requested status.
// The requested status must be an edge of the state machine.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  identity.Identity
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses status by its wire name ("PAID", "CANCELLED", ...).
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	caller identity.Identity,
	status string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{guard: guard.NewConstructorGuard()}

	parsed, statusErr := order.ParseStatus(status)
	if err := errors.Join(orderID.Validate(), caller.Validate(), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.caller = caller
	cmd.status = parsed
	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID      { return c.orderID }
func (c UpdateOrderStatusCommand) Caller() identity.Identity { return c.caller }
func (c UpdateOrderStatusCommand) Status() order.Status      { return c.status }
