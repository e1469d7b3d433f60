package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──┬──> PAID
//	          └──> CANCELLED
//
// PAID and CANCELLED are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Paid
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Paid:      "PAID",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Paid:      "PAID",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus accepts the wire names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Cancelled
}

// CanTransitionTo reports whether the state machine has an edge s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	return s == Pending && (target == Paid || target == Cancelled)
}

// TransitionTo returns target if the edge exists.
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Paid) // PAID, nil
//	_, err = order.Paid.TransitionTo(order.Cancelled)   // status is invalid
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot move order from %s to %s", s.String(), target.String()),
		)
	}
	return target, nil
}

// Pay transitions PENDING -> PAID.
func (s Status) Pay() (Status, error) {
	if s == Paid {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("order is already %s", s))
	}
	return s.TransitionTo(Paid)
}

// Cancel transitions PENDING -> CANCELLED.
func (s Status) Cancel() (Status, error) {
	if s == Cancelled {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("order is already %s", s))
	}
	return s.TransitionTo(Cancelled)
}
