package queries

import (
	"errors"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery fetches one order visible to the caller.
type GetOrderQuery struct {
	orderID kernel.UUID
	caller  identity.Identity

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, caller identity.Identity) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), caller.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID      { return q.orderID }
func (q GetOrderQuery) Caller() identity.Identity { return q.caller }
