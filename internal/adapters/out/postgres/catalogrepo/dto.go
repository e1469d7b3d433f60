// Package catalogrepo reads restaurants and their menus. Menu items take
// their region from the owning restaurant.
package catalogrepo

import (
	"time"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Region    string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt time.Time `gorm:"not null"`

	MenuItems []MenuItemDTO `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// menuItemRow is a menu item joined with its restaurant's region.
type menuItemRow struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Price        decimal.Decimal
	Region       string
}

func fromDomain(r *catalog.Restaurant) RestaurantDTO {
	items := r.MenuItems()
	dtos := make([]MenuItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, MenuItemDTO{
			ID:           item.ID().Bytes(),
			RestaurantID: r.ID().Bytes(),
			Name:         item.Name(),
			Price:        item.Price().Amount(),
		})
	}

	return RestaurantDTO{
		ID:        r.ID().Bytes(),
		Name:      r.Name(),
		Region:    r.Region().String(),
		CreatedAt: r.CreatedAt(),
		MenuItems: dtos,
	}
}

func toDomain(dto RestaurantDTO) (*catalog.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	region, err := kernel.ParseRegion(dto.Region)
	if err != nil {
		return nil, err
	}

	items := make([]*catalog.MenuItem, 0, len(dto.MenuItems))
	for _, itemDTO := range dto.MenuItems {
		item, itemErr := menuItemToDomain(menuItemRow{
			ID:           itemDTO.ID,
			RestaurantID: itemDTO.RestaurantID,
			Name:         itemDTO.Name,
			Price:        itemDTO.Price,
			Region:       dto.Region,
		})
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return catalog.NewRestaurant(id, dto.Name, region, dto.CreatedAt, items)
}

func menuItemToDomain(row menuItemRow) (*catalog.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(row.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	region, err := kernel.ParseRegion(row.Region)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return nil, err
	}
	return catalog.NewMenuItem(id, restaurantID, region, row.Name, price)
}
