package services_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mustMenuItem(t *testing.T, region kernel.Region, price string) *catalog.MenuItem {
	t.Helper()
	m, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	item, err := catalog.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), region, "dish "+price, m)
	require.NoError(t, err)
	return item
}

func TestOrderPricer_Price(t *testing.T) {
	pricer := services.NewOrderPricer(services.NewAccessPolicy())
	butterChicken := mustMenuItem(t, kernel.RegionIndia, "350")
	paneer := mustMenuItem(t, kernel.RegionIndia, "250.25")
	burger := mustMenuItem(t, kernel.RegionAmerica, "10")
	fries := mustMenuItem(t, kernel.RegionAmerica, "4")
	catalogItems := []*catalog.MenuItem{butterChicken, paneer, burger, fries}

	t.Run("should snapshot prices and sum exactly", func(t *testing.T) {
		caller := mustIdentity(t, identity.Member, kernel.RegionIndia)
		lines := []services.PricingLine{
			{MenuItemID: butterChicken.ID(), Quantity: 2},
			{MenuItemID: paneer.ID(), Quantity: 3},
		}

		quote, err := pricer.Price(caller, lines, catalogItems)

		require.NoError(t, err)
		assert.Equal(t, kernel.RegionIndia, quote.Region)
		require.Len(t, quote.Items, 2)
		assert.True(t, quote.Items[0].MenuItemID().IsEqual(butterChicken.ID()))
		assert.Equal(t, "350.00", quote.Items[0].Price().String())
		assert.Equal(t, "dish 350", quote.Items[0].Name())
		assert.Equal(t, 3, quote.Items[1].Quantity())
		assert.Equal(t, "1450.75", quote.Total.String())
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := pricer.Price(mustIdentity(t, identity.Member, kernel.RegionIndia), nil, catalogItems)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := pricer.Price(mustIdentity(t, identity.Member, kernel.RegionIndia),
			[]services.PricingLine{{MenuItemID: butterChicken.ID(), Quantity: 0}}, catalogItems)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should name every missing id", func(t *testing.T) {
		missing1, missing2 := kernel.NewUUID(), kernel.NewUUID()
		lines := []services.PricingLine{
			{MenuItemID: missing1, Quantity: 1},
			{MenuItemID: butterChicken.ID(), Quantity: 1},
			{MenuItemID: missing2, Quantity: 1},
			{MenuItemID: missing1, Quantity: 2},
		}

		_, err := pricer.Price(mustIdentity(t, identity.Admin, kernel.RegionIndia), lines, catalogItems)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), missing1.String()+", "+missing2.String())
	})

	t.Run("manager of AMERICA cannot order from INDIA", func(t *testing.T) {
		_, err := pricer.Price(mustIdentity(t, identity.Manager, kernel.RegionAmerica),
			[]services.PricingLine{{MenuItemID: butterChicken.ID(), Quantity: 1}}, catalogItems)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("admin of AMERICA can order from INDIA", func(t *testing.T) {
		quote, err := pricer.Price(mustIdentity(t, identity.Admin, kernel.RegionAmerica),
			[]services.PricingLine{{MenuItemID: butterChicken.ID(), Quantity: 1}}, catalogItems)

		require.NoError(t, err)
		assert.Equal(t, kernel.RegionIndia, quote.Region)
	})

	t.Run("admin cannot mix regions in one order", func(t *testing.T) {
		_, err := pricer.Price(mustIdentity(t, identity.Admin, kernel.RegionAmerica), []services.PricingLine{
			{MenuItemID: burger.ID(), Quantity: 1},
			{MenuItemID: butterChicken.ID(), Quantity: 1},
		}, catalogItems)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("member mixing regions fails on the first foreign item", func(t *testing.T) {
		_, err := pricer.Price(mustIdentity(t, identity.Member, kernel.RegionAmerica), []services.PricingLine{
			{MenuItemID: fries.ID(), Quantity: 1},
			{MenuItemID: paneer.ID(), Quantity: 1},
		}, catalogItems)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Contains(t, err.Error(), "INDIA")
	})
}
