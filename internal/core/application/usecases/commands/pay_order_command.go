package commands

import (
	"errors"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrPayOrderCommandIsNotConstructed = errors.New(
		"PayOrderCommand must be created via NewPayOrderCommand constructor",
	)
)

// PayOrderCommand asks to pay a PENDING order. Payment details are validated
// and masked by the constructor.
//
// Example:
//
//	cmd, err := NewPayOrderCommand(orderID, caller, "CARD", map[string]string{
//	    "cardNumber": "1234 5678 9012 3456",
//	    "cardHolder": "Nick Fury",
//	})
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  identity.Identity
	payment *order.PaymentMethod

	guard guard.ConstructorGuard
}

func NewPayOrderCommand(
	orderID kernel.UUID,
	caller identity.Identity,
	paymentType string,
	details map[string]string,
) (PayOrderCommand, error) {
	payment, paymentErr := newPaymentMethod(paymentType, details)
	if err := errors.Join(orderID.Validate(), caller.Validate(), paymentErr); err != nil {
		return PayOrderCommand{}, err
	}

	return PayOrderCommand{
		orderID: orderID,
		caller:  caller,
		payment: payment,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c PayOrderCommand) Caller() identity.Identity     { return c.caller }
func (c PayOrderCommand) Payment() *order.PaymentMethod { return c.payment }
