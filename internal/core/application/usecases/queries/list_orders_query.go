package queries

import (
	"errors"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists every order the caller may see, newest first.
//
// Example:
//
//	query, _ := NewListOrdersQuery(caller)
//	orders, err := handler.Handle(ctx, query)
//	// MEMBER: own orders; MANAGER: own region; ADMIN: everything
type ListOrdersQuery struct {
	caller identity.Identity

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(caller identity.Identity) (ListOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Caller() identity.Identity {
	return q.caller
}
