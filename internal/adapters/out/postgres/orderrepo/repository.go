package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker receives every aggregate this repository writes, so the
// unit of work can drain its domain events on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order together with its items and optional payment method.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// SavePayment upserts the payment method on order_id.
func (r *GormOrderRepository) SavePayment(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := paymentFromDomain(aggregate)
	if dto == nil {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "details", "completed", "updated_at"}),
		}).
		Create(dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus writes only the status column; items and totals are immutable.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(ctx, id)
}

// GetForUpdate takes a row lock on the order before loading it. The lock is
// held until the surrounding transaction ends; outside a transaction it is
// released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var locked OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&locked, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, id)
}

// Find lists orders matching scope, newest first.
func (r *GormOrderRepository) Find(ctx context.Context, scope order.Scope) ([]*order.Order, error) {
	query := r.withAssociations(ctx)
	if region, ok := scope.Region(); ok {
		query = query.Where("region = ?", region.String())
	}
	if ownerID, ok := scope.OwnerID(); ok {
		query = query.Where("user_id = ?", ownerID)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := restore(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) load(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	if err := r.withAssociations(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return restore(dto)
}

// restore converts a stored row. A row that breaks domain rules is a storage
// fault, so the cause is flattened instead of wrapped and classifies as
// internal rather than as a bad request.
func restore(dto OrderDTO) (*order.Order, error) {
	o, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("corrupt order %s: %v", dto.ID, err) //nolint:errorlint
	}
	return o, nil
}

func (r *GormOrderRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Payment")
}
