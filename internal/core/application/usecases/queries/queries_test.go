package queries_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) Find(ctx context.Context, scope order.Scope) ([]*order.Order, error) {
	args := m.Called(ctx, scope)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockRestaurantReader struct{ mock.Mock }

func (m *MockRestaurantReader) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	restaurant, _ := args.Get(0).(*catalog.Restaurant)
	return restaurant, args.Error(1)
}

func (m *MockRestaurantReader) ListRestaurants(ctx context.Context, f ports.RestaurantFilter) (ports.RestaurantPage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(ports.RestaurantPage), args.Error(1)
}

func mustIdentity(t *testing.T, userID string, role identity.Role, region kernel.Region) identity.Identity {
	t.Helper()
	id, err := identity.NewIdentity(userID, role, region)
	require.NoError(t, err)
	return id
}

func newOrder(t *testing.T, owner string, region kernel.Region) *order.Order {
	t.Helper()
	price, _ := kernel.MoneyFromString("10")
	item, _ := order.NewItem(kernel.NewUUID(), 1, price)
	o, err := order.NewOrder(kernel.NewUUID(), owner, region, []order.Item{item}, nil, time.Now())
	require.NoError(t, err)
	return o
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	o := newOrder(t, "m1", kernel.RegionIndia)

	testCases := []struct {
		name   string
		caller identity.Identity
		kind   *errs.Kind
	}{
		{"owner", mustIdentity(t, "m1", identity.Member, kernel.RegionIndia), nil},
		{"manager of region", mustIdentity(t, "mgr", identity.Manager, kernel.RegionIndia), nil},
		{"admin elsewhere", mustIdentity(t, "adm", identity.Admin, kernel.RegionAmerica), nil},
		{"other member", mustIdentity(t, "m2", identity.Member, kernel.RegionIndia), ptr(errs.KindNotFound)},
		{"manager of other region", mustIdentity(t, "mgr", identity.Manager, kernel.RegionAmerica), ptr(errs.KindNotFound)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			reader := new(MockOrderReader)
			reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

			query, err := queries.NewGetOrderQuery(o.ID(), tc.caller)
			require.NoError(t, err)
			got, err := queries.NewGetOrderQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, query)

			if tc.kind != nil {
				assert.Equal(t, *tc.kind, errs.KindOf(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.IsEqual(o))
		})
	}

	t.Run("missing order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		reader := new(MockOrderReader)
		reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, _ := queries.NewGetOrderQuery(id, mustIdentity(t, "adm", identity.Admin, kernel.RegionIndia))
		_, err := queries.NewGetOrderQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, query)

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := queries.NewGetOrderQueryHandler(new(MockOrderReader), services.NewAccessPolicy()).
			Handle(t.Context(), queries.GetOrderQuery{})
		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	testCases := []struct {
		name  string
		id    identity.Identity
		scope order.Scope
	}{
		{"member sees own orders", mustIdentity(t, "m1", identity.Member, kernel.RegionIndia), order.OwnedBy("m1")},
		{"manager sees region", mustIdentity(t, "mgr", identity.Manager, kernel.RegionAmerica), order.InRegion(kernel.RegionAmerica)},
		{"admin sees all", mustIdentity(t, "adm", identity.Admin, kernel.RegionIndia), order.Unrestricted()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			reader := new(MockOrderReader)
			reader.On("Find", ctx, tc.scope).Return(nil, nil).Once()

			query, err := queries.NewListOrdersQuery(tc.id)
			require.NoError(t, err)
			orders, err := queries.NewListOrdersQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, query)

			require.NoError(t, err)
			assert.NotNil(t, orders)
			assert.Empty(t, orders)
			reader.AssertExpectations(t)
		})
	}

	t.Run("storage error is passed through", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("Find", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()

		query, _ := queries.NewListOrdersQuery(mustIdentity(t, "adm", identity.Admin, kernel.RegionIndia))
		_, err := queries.NewListOrdersQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, query)

		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	})
}

func TestNewListRestaurantsQuery_Normalizes(t *testing.T) {
	caller := mustIdentity(t, "m1", identity.Member, kernel.RegionIndia)

	testCases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, 500, 1, 100},
		{2, -1, 2, 1},
		{4, 25, 4, 25},
		{math.MaxInt, 100, queries.MaxPage, 100},
		{queries.MaxPage + 1, 1, queries.MaxPage, 1},
	}
	for _, tc := range testCases {
		q, err := queries.NewListRestaurantsQuery(caller, tc.page, tc.limit)
		require.NoError(t, err)
		assert.Equal(t, tc.wantPage, q.Page())
		assert.Equal(t, tc.wantLimit, q.Limit())
		assert.GreaterOrEqual(t, (q.Page()-1)*q.Limit(), 0, "offset must not overflow")
	}
}

func TestListRestaurantsQueryHandler_Handle(t *testing.T) {
	price, _ := kernel.MoneyFromString("4")
	restaurantID := kernel.NewUUID()
	fries, _ := catalog.NewMenuItem(kernel.NewUUID(), restaurantID, kernel.RegionAmerica, "Fries", price)
	planet, err := catalog.NewRestaurant(restaurantID, "Burger Planet", kernel.RegionAmerica, time.Now(), []*catalog.MenuItem{fries})
	require.NoError(t, err)

	t.Run("member is narrowed to own region", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockRestaurantReader)
		reader.On("ListRestaurants", ctx, ports.RestaurantFilter{Region: kernel.RegionAmerica, Page: 2, Limit: 1}).
			Return(ports.RestaurantPage{Restaurants: []*catalog.Restaurant{planet}, Total: 3}, nil).Once()

		q, _ := queries.NewListRestaurantsQuery(mustIdentity(t, "m1", identity.Member, kernel.RegionAmerica), 2, 1)
		resp, err := queries.NewListRestaurantsQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, q)

		require.NoError(t, err)
		assert.Len(t, resp.Restaurants, 1)
		assert.Equal(t, int64(3), resp.Total)
		assert.Equal(t, 3, resp.TotalPages)
		assert.True(t, resp.HasNextPage)
		assert.True(t, resp.HasPrevPage)
		reader.AssertExpectations(t)
	})

	t.Run("admin is unrestricted", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockRestaurantReader)
		reader.On("ListRestaurants", ctx, ports.RestaurantFilter{Page: 1, Limit: 10}).
			Return(ports.RestaurantPage{}, nil).Once()

		q, _ := queries.NewListRestaurantsQuery(mustIdentity(t, "adm", identity.Admin, kernel.RegionIndia), 1, 10)
		resp, err := queries.NewListRestaurantsQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, q)

		require.NoError(t, err)
		assert.NotNil(t, resp.Restaurants)
		assert.Zero(t, resp.TotalPages)
		assert.False(t, resp.HasNextPage)
		assert.False(t, resp.HasPrevPage)
	})
}

func TestGetRestaurantQueryHandler_Handle(t *testing.T) {
	price, _ := kernel.MoneyFromString("4")
	restaurantID := kernel.NewUUID()
	fries, _ := catalog.NewMenuItem(kernel.NewUUID(), restaurantID, kernel.RegionAmerica, "Fries", price)
	planet, err := catalog.NewRestaurant(restaurantID, "Burger Planet", kernel.RegionAmerica, time.Now(), []*catalog.MenuItem{fries})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		caller   identity.Identity
		wantKind *errs.Kind
	}{
		{"admin in another region", mustIdentity(t, "adm", identity.Admin, kernel.RegionIndia), nil},
		{"member in same region", mustIdentity(t, "m1", identity.Member, kernel.RegionAmerica), nil},
		{"manager in another region", mustIdentity(t, "mgr", identity.Manager, kernel.RegionIndia), ptr(errs.KindNotFound)},
		{"member in another region", mustIdentity(t, "m2", identity.Member, kernel.RegionIndia), ptr(errs.KindNotFound)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			reader := new(MockRestaurantReader)
			reader.On("GetRestaurant", ctx, restaurantID).Return(planet, nil).Once()

			q, err := queries.NewGetRestaurantQuery(restaurantID, tc.caller)
			require.NoError(t, err)
			restaurant, err := queries.NewGetRestaurantQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, q)

			if tc.wantKind != nil {
				require.Error(t, err)
				assert.Equal(t, *tc.wantKind, errs.KindOf(err))
				assert.Nil(t, restaurant)
			} else {
				require.NoError(t, err)
				assert.Equal(t, planet, restaurant)
			}
			reader.AssertExpectations(t)
		})
	}

	t.Run("unknown restaurant is not found", func(t *testing.T) {
		ctx := t.Context()
		missing := kernel.NewUUID()
		reader := new(MockRestaurantReader)
		reader.On("GetRestaurant", ctx, missing).
			Return(nil, errs.NewObjectNotFoundError("restaurant", missing.String())).Once()

		q, _ := queries.NewGetRestaurantQuery(missing, mustIdentity(t, "adm", identity.Admin, kernel.RegionIndia))
		_, err := queries.NewGetRestaurantQueryHandler(reader, services.NewAccessPolicy()).Handle(ctx, q)

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("unconstructed query is rejected", func(t *testing.T) {
		reader := new(MockRestaurantReader)
		_, err := queries.NewGetRestaurantQueryHandler(reader, services.NewAccessPolicy()).
			Handle(t.Context(), queries.GetRestaurantQuery{})

		require.ErrorIs(t, err, queries.ErrGetRestaurantQueryIsNotConstructed)
		reader.AssertNotCalled(t, "GetRestaurant", mock.Anything, mock.Anything)
	})
}

func ptr(k errs.Kind) *errs.Kind {
	return &k
}
