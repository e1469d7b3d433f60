package catalogrepo

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type seedRestaurant struct {
	name   string
	region kernel.Region
	menu   []seedMenuItem
}

type seedMenuItem struct {
	name  string
	price string
}

var demoCatalog = []seedRestaurant{
	{
		name:   "Tandoori Express",
		region: kernel.RegionIndia,
		menu: []seedMenuItem{
			{"Butter Chicken", "350"},
			{"Paneer Tikka", "250"},
			{"Biryani", "300"},
		},
	},
	{
		name:   "Burger Planet",
		region: kernel.RegionAmerica,
		menu: []seedMenuItem{
			{"Cheese Burger", "10"},
			{"Fries", "4"},
			{"Hotdog", "8"},
		},
	},
}

// SeedDemoCatalog inserts one demo restaurant per region when the catalog is
// empty. It reports whether anything was written.
func SeedDemoCatalog(ctx context.Context, db *gorm.DB, logger *slog.Logger) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewGormCatalogRepository(tx)

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for i, seed := range demoCatalog {
			restaurant, buildErr := seed.build(now.Add(time.Duration(i) * time.Second))
			if buildErr != nil {
				return buildErr
			}
			if err = repo.Add(ctx, restaurant); err != nil {
				return err
			}
			logger.Info("seeded restaurant",
				"name", restaurant.Name(),
				"region", restaurant.Region().String(),
				"menuItems", len(seed.menu))
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func (s seedRestaurant) build(createdAt time.Time) (*catalog.Restaurant, error) {
	restaurantID := kernel.NewUUID()
	items := make([]*catalog.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		price, err := kernel.MoneyFromString(m.price)
		if err != nil {
			return nil, err
		}
		item, err := catalog.NewMenuItem(kernel.NewUUID(), restaurantID, s.region, m.name, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return catalog.NewRestaurant(restaurantID, s.name, s.region, createdAt, items)
}
