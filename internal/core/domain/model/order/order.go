package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering domain. It owns its line items
// and its payment method and is the only place where status changes.
//
// Order follows these invariants:
//   - Must have a valid identifier, owner and region
//   - Has at least one item
//   - TotalAmount equals the sum of item price × quantity and never changes
//   - Status changes only through Pay, Cancel and ChangeStatus
//
// Every successful mutation records a DomainEvent; the unit of work drains
// them into the outbox on commit.
type Order struct {
	id          kernel.UUID
	userID      string
	region      kernel.Region
	items       []Item
	totalAmount kernel.Money
	status      Status
	payment     *PaymentMethod
	createdAt   time.Time

	domainEvents []DomainEvent

	isConstructed bool
}

// NewOrder creates a PENDING order from priced items. The total is computed
// here from the item snapshots; callers never supply it.
//
// Parameters:
//   - id: unique identifier for the order
//   - userID: the placing identity
//   - region: the region of every item's restaurant
//   - items: at least one priced line
//   - payment: optional initial payment method, stored not completed
//   - createdAt: creation instant
//
// Example:
//
//	price, _ := kernel.MoneyFromString("350")
//	item, _ := order.NewItem(menuItemID, 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), "user-1", kernel.RegionIndia,
//	    []order.Item{item}, nil, time.Now())
//	// o.TotalAmount() == 700.00, o.Status() == order.Pending
func NewOrder(
	id kernel.UUID,
	userID string,
	region kernel.Region,
	items []Item,
	payment *PaymentMethod,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRegion(region),
		o.setItems(items),
	); err != nil {
		return nil, err
	}
	o.totalAmount = Total(o.items)
	if payment != nil {
		o.payment = &PaymentMethod{paymentType: payment.paymentType, details: payment.Details()}
	}

	o.raise(CreatedEvent{
		ID:          kernel.NewUUID(),
		OrderID:     o.id,
		UserID:      o.userID,
		Region:      o.region,
		TotalAmount: o.totalAmount,
		ItemCount:   len(o.items),
		Timestamp:   o.createdAt,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total must still
// match its items; a mismatch means the row was altered outside the domain.
func RestoreOrder(
	id kernel.UUID,
	userID string,
	region kernel.Region,
	items []Item,
	totalAmount kernel.Money,
	status Status,
	payment *PaymentMethod,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		payment:       payment,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRegion(region),
		o.setItems(items),
		status.Validate(),
		totalAmount.Validate(),
	); err != nil {
		return nil, err
	}

	if computed := Total(o.items); !computed.IsEqual(totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalAmount is invalid",
			fmt.Errorf("stored %s does not match items sum %s", totalAmount, computed),
		)
	}
	o.totalAmount = totalAmount
	o.status = status

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) UserID() string {
	return o.userID
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID string) bool {
	return o.userID == userID
}

func (o *Order) Region() kernel.Region {
	return o.region
}

// Items returns a copy of the line items in submission order.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) Status() Status {
	return o.status
}

// Payment returns the payment method, or nil when none was recorded yet.
func (o *Order) Payment() *PaymentMethod {
	return o.payment
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Pay completes payment with pm and moves the order to PAID. On failure
// neither the status nor the stored payment method change.
//
// Business rules:
//   - The order must be PENDING
//   - pm must be a validated PaymentMethod
//   - An existing payment method is replaced
func (o *Order) Pay(pm *PaymentMethod, actorID string) error {
	if pm == nil {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	next, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.payment = pm.complete()
	o.moveTo(next, actorID)
	return nil
}

// Cancel moves a PENDING order to CANCELLED.
func (o *Order) Cancel(actorID string) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.moveTo(next, actorID)
	return nil
}

// ChangeStatus applies an arbitrary requested status through the state
// machine. Unknown targets and missing edges are rejected.
func (o *Order) ChangeStatus(target Status, actorID string) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.moveTo(next, actorID)
	return nil
}

// DomainEvents returns events recorded since construction or the last
// ClearDomainEvents call.
func (o *Order) DomainEvents() []DomainEvent {
	return slices.Clone(o.domainEvents)
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) moveTo(next Status, actorID string) {
	prev := o.status
	o.status = next
	o.raise(StatusChangedEvent{
		ID:        kernel.NewUUID(),
		OrderID:   o.id,
		Region:    o.region,
		From:      prev.String(),
		To:        next.String(),
		ChangedBy: actorID,
		Timestamp: time.Now().UTC(),
	})
}

func (o *Order) raise(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setRegion(region kernel.Region) error {
	if err := region.Validate(); err != nil {
		return err
	}
	o.region = region
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := errors.Join(item.menuItemID.Validate(), item.price.Validate()); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
		if item.quantity < 1 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), item.quantity, 1, MaxQuantity)
		}
	}
	o.items = slices.Clone(items)
	return nil
}
