package services

import (
	"fmt"

	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// Operation names an order use case subject to authorization.
type Operation int

const (
	OpCreateOrder Operation = iota + 1
	OpViewOrder
	OpUpdateOrderStatus
	OpCancelOrder
	OpPayOrder
)

func (op Operation) String() string {
	switch op {
	case OpCreateOrder:
		return "create order"
	case OpViewOrder:
		return "view order"
	case OpUpdateOrderStatus:
		return "update order status"
	case OpCancelOrder:
		return "cancel order"
	case OpPayOrder:
		return "pay order"
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// Resource is what an operation targets: an existing order, or for
// OpCreateOrder the region of the requested items.
type Resource struct {
	ID      string
	Region  kernel.Region
	OwnerID string
}

// OrderResource describes an existing order.
func OrderResource(o *order.Order) Resource {
	return Resource{ID: o.ID().String(), Region: o.Region(), OwnerID: o.UserID()}
}

// AccessPolicy is the authorization scoper.
//
// Visibility by role:
//   - ADMIN sees everything
//   - MANAGER sees resources of its own region
//   - MEMBER sees resources it owns
//
// Single-order operations check visibility first (NotFound), then the
// per-operation rule (Forbidden). State machine checks come after, in the
// aggregate.
//
// Example usage:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.Authorize(caller, services.OpCancelOrder, services.OrderResource(o)); err != nil {
//	    return err // errs.KindOf(err) is NotFound or Forbidden
//	}
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanView applies the visibility predicate.
func (AccessPolicy) CanView(caller identity.Identity, res Resource) bool {
	switch caller.Role() {
	case identity.Admin:
		return true
	case identity.Manager:
		return res.Region == caller.Region()
	case identity.Member:
		return res.OwnerID == caller.UserID()
	}
	return false
}

// Authorize returns nil when caller may perform op on res. Denials are
// errs.ObjectNotFoundError for invisible orders and errs.AccessDeniedError
// otherwise.
func (p AccessPolicy) Authorize(caller identity.Identity, op Operation, res Resource) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	if op == OpCreateOrder {
		if caller.IsAdmin() || res.Region == caller.Region() {
			return nil
		}
		return errs.NewAccessDeniedError(op.String(),
			fmt.Sprintf("items belong to region %s, caller region is %s", res.Region, caller.Region()))
	}

	if !p.CanView(caller, res) {
		return errs.NewObjectNotFoundError("order", res.ID)
	}

	switch op {
	case OpViewOrder, OpCancelOrder:
		return nil
	case OpUpdateOrderStatus:
		if caller.Role() == identity.Member {
			return errs.NewAccessDeniedError(op.String(), "members cannot update order status")
		}
		return nil
	case OpPayOrder:
		if res.OwnerID != caller.UserID() {
			return errs.NewAccessDeniedError(op.String(), "only the owner can pay for an order")
		}
		return nil
	case OpCreateOrder:
	}
	return errs.NewAccessDeniedError(op.String(), "unsupported operation")
}

// OrderScope is the list filter matching exactly the orders CanView accepts.
func (AccessPolicy) OrderScope(caller identity.Identity) order.Scope {
	switch caller.Role() {
	case identity.Admin:
		return order.Unrestricted()
	case identity.Manager:
		return order.InRegion(caller.Region())
	case identity.Member:
	}
	return order.OwnedBy(caller.UserID())
}

// RestaurantRegion is the catalog filter: admins browse every region, other
// roles their own. ok is false when unrestricted.
func (AccessPolicy) RestaurantRegion(caller identity.Identity) (region kernel.Region, ok bool) {
	if caller.IsAdmin() {
		return "", false
	}
	return caller.Region(), true
}
