// Package orderrepo persists order aggregates: the order row, its ordered
// line items and at most one payment method.
package orderrepo

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO maps the orders table. Status is stored by name so rows stay
// readable without the enum.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:varchar(255);not null;index"`
	Region      string          `gorm:"type:varchar(32);not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time       `gorm:"not null"`

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *PaymentMethodDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one priced line. Position keeps submission order.
type OrderItemDTO struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// PaymentMethodDTO is keyed by order id; an order has at most one.
type PaymentMethodDTO struct {
	OrderID   uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Type      string            `gorm:"type:varchar(16);not null"`
	Details   map[string]string `gorm:"type:jsonb;serializer:json;not null"`
	Completed bool              `gorm:"not null"`
	UpdatedAt time.Time         `gorm:"not null"`
}

func (PaymentMethodDTO) TableName() string {
	return "payment_methods"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:    orderID,
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Price:      item.Price().Amount(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		UserID:      aggregate.UserID(),
		Region:      aggregate.Region().String(),
		TotalAmount: aggregate.TotalAmount().Amount(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		Items:       itemDTOs,
		Payment:     paymentFromDomain(aggregate),
	}
}

func paymentFromDomain(aggregate *order.Order) *PaymentMethodDTO {
	pm := aggregate.Payment()
	if pm == nil {
		return nil
	}
	details := pm.Details()
	if details == nil {
		details = map[string]string{}
	}
	return &PaymentMethodDTO{
		OrderID:   aggregate.ID().Bytes(),
		Type:      pm.Type().String(),
		Details:   details,
		Completed: pm.IsCompleted(),
		UpdatedAt: time.Now().UTC(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	region, err := kernel.ParseRegion(dto.Region)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, fmt.Errorf("order %s item %d: %w", dto.ID, itemDTO.Position, itemErr)
		}
		items = append(items, item)
	}

	var payment *order.PaymentMethod
	if dto.Payment != nil {
		paymentType, typeErr := order.ParsePaymentType(dto.Payment.Type)
		if typeErr != nil {
			return nil, typeErr
		}
		if payment, err = order.RestorePaymentMethod(paymentType, dto.Payment.Details, dto.Payment.Completed); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, dto.UserID, region, items, total, status, payment, dto.CreatedAt)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.Item{}, err
	}
	item, err := order.NewItem(menuItemID, dto.Quantity, price)
	if err != nil {
		return order.Item{}, err
	}
	return item.WithName(dto.Name), nil
}
