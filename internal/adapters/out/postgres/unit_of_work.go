// Package postgres provides the GORM-based Unit of Work used by every command
// handler. A unit of work hands out repositories bound to one transaction and
// tracks the aggregates they write.
//
// On Commit the domain events of every tracked aggregate are serialized into
// the outbox inside the same transaction, so an order change and the event
// announcing it are stored atomically or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is single-goroutine; concurrent operations take
// their own instance from the factory.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is an aggregate that records domain events.
type eventSource interface {
	DomainEvents() []order.DomainEvent
	ClearDomainEvents()
}

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// modified inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes pending domain events to the outbox, then commits. Events
// are cleared from their aggregates only once the commit succeeded.
//
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages, err := uow.pendingMessages()
	if err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	if err = outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("failed to write outbox: %w", err)
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			source.ClearDomainEvents()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction and everything tracked in it.
//
// Returns gorm.ErrInvalidTransaction when no transaction is open, which is
// the normal case for the deferred Rollback after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository is bound to the open transaction, or to the pool when
// there is none.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written by a repository. An
// aggregate tracked twice is kept once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) pendingMessages() ([]ports.OutboxMessage, error) {
	var messages []ports.OutboxMessage
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		for _, event := range source.DomainEvents() {
			m, err := newOutboxMessage(event)
			if err != nil {
				return nil, err
			}
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func newOutboxMessage(event order.DomainEvent) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return ports.OutboxMessage{}, fmt.Errorf("failed to serialize %s: %w", event.EventName(), err)
	}
	return ports.OutboxMessage{
		ID:          event.EventID(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}
