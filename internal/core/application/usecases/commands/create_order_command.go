package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// PaymentInput is a raw payment choice as submitted by the client.
type PaymentInput struct {
	Type    string
	Details map[string]string
}

// CreateOrderCommand represents a request to place a new order. It carries
// menu item ids and quantities only; prices come from the catalog.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), caller,
//	    []services.PricingLine{{MenuItemID: butterChickenID, Quantity: 2}},
//	    &PaymentInput{Type: "UPI", Details: map[string]string{"upiId": "nick@upi"}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  identity.Identity
	lines   []services.PricingLine
	payment *order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. The payment, when
// given, is validated and masked here, before any write happens.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	caller identity.Identity,
	lines []services.PricingLine,
	payment *PaymentInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		caller.Validate(),
		cmd.setLines(lines),
		cmd.setPayment(payment),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.caller = caller

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Caller() identity.Identity {
	return c.caller
}

// Lines returns the requested lines in submission order.
func (c CreateOrderCommand) Lines() []services.PricingLine {
	lines := make([]services.PricingLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// MenuItemIDs returns the distinct requested menu item ids.
func (c CreateOrderCommand) MenuItemIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.lines))
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}
	return ids
}

// Payment returns the validated initial payment method, or nil.
func (c CreateOrderCommand) Payment() *order.PaymentMethod {
	return c.payment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.PricingLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].menuItemId", i), err)
		}
		if line.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), line.Quantity, 1, order.MaxQuantity)
		}
	}

	c.lines = make([]services.PricingLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setPayment(payment *PaymentInput) error {
	if payment == nil {
		return nil
	}

	pm, err := newPaymentMethod(payment.Type, payment.Details)
	if err != nil {
		return err
	}

	c.payment = pm
	return nil
}

func newPaymentMethod(paymentType string, details map[string]string) (*order.PaymentMethod, error) {
	t, err := order.ParsePaymentType(paymentType)
	if err != nil {
		return nil, err
	}
	return order.NewPaymentMethod(t, details)
}
