package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

const (
	EventNameCreated       = "order.created"
	EventNameStatusChanged = "order.status_changed"
)

// DomainEvent is a fact recorded by the aggregate and shipped through the
// outbox after the recording transaction commits.
type DomainEvent interface {
	EventID() kernel.UUID
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

type CreatedEvent struct {
	ID          kernel.UUID   `json:"eventId"`
	OrderID     kernel.UUID   `json:"orderId"`
	UserID      string        `json:"userId"`
	Region      kernel.Region `json:"region"`
	TotalAmount kernel.Money  `json:"totalAmount"`
	ItemCount   int           `json:"itemCount"`
	Timestamp   time.Time     `json:"occurredAt"`
}

func (e CreatedEvent) EventID() kernel.UUID     { return e.ID }
func (e CreatedEvent) EventName() string        { return EventNameCreated }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time    { return e.Timestamp }

type StatusChangedEvent struct {
	ID        kernel.UUID   `json:"eventId"`
	OrderID   kernel.UUID   `json:"orderId"`
	Region    kernel.Region `json:"region"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	ChangedBy string        `json:"changedBy,omitempty"`
	Timestamp time.Time     `json:"occurredAt"`
}

func (e StatusChangedEvent) EventID() kernel.UUID     { return e.ID }
func (e StatusChangedEvent) EventName() string        { return EventNameStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.Timestamp }
