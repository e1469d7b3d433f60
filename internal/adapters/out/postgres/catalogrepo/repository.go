package catalogrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Add inserts a restaurant with its whole menu. It is used for seeding; the
// application itself never writes the catalog.
func (r *GormCatalogRepository) Add(ctx context.Context, restaurant *catalog.Restaurant) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}

	dto := fromDomain(restaurant)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Count returns the number of restaurants across all regions.
func (r *GormCatalogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&RestaurantDTO{}).Count(&total).Error
	return total, err
}

func (r *GormCatalogRepository) FindMenuItemsByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.MenuItem, error) {
	if len(ids) == 0 {
		return []*catalog.MenuItem{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var rows []menuItemRow
	err := r.db.WithContext(ctx).
		Table("menu_items").
		Select("menu_items.id, menu_items.restaurant_id, menu_items.name, menu_items.price, restaurants.region").
		Joins("JOIN restaurants ON restaurants.id = menu_items.restaurant_id").
		Where("menu_items.id IN ?", raw).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*catalog.MenuItem, 0, len(rows))
	for _, row := range rows {
		item, itemErr := menuItemToDomain(row)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *GormCatalogRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	err := r.db.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListRestaurants pages restaurants newest first. Paging values are used as
// given; callers normalize them.
func (r *GormCatalogRepository) ListRestaurants(ctx context.Context, filter ports.RestaurantFilter) (ports.RestaurantPage, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&RestaurantDTO{})
		if filter.Region != "" {
			q = q.Where("region = ?", filter.Region.String())
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return ports.RestaurantPage{}, err
	}

	var dtos []RestaurantDTO
	err := scoped().
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Order("created_at DESC").
		Order("id DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&dtos).Error
	if err != nil {
		return ports.RestaurantPage{}, err
	}

	restaurants := make([]*catalog.Restaurant, 0, len(dtos))
	for _, dto := range dtos {
		restaurant, convErr := toDomain(dto)
		if convErr != nil {
			return ports.RestaurantPage{}, convErr
		}
		restaurants = append(restaurants, restaurant)
	}

	return ports.RestaurantPage{Restaurants: restaurants, Total: total}, nil
}
