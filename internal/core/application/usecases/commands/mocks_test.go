package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/identity"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SavePayment(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, scope order.Scope) ([]*order.Order, error) {
	args := m.Called(ctx, scope)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) FindMenuItemsByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.MenuItem, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]*catalog.MenuItem)
	return items, args.Error(1)
}

func (m *MockCatalogRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	restaurant, _ := args.Get(0).(*catalog.Restaurant)
	return restaurant, args.Error(1)
}

func (m *MockCatalogRepository) ListRestaurants(ctx context.Context, f ports.RestaurantFilter) (ports.RestaurantPage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(ports.RestaurantPage), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) LockUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

func mustIdentity(t *testing.T, userID string, role identity.Role, region kernel.Region) identity.Identity {
	t.Helper()
	id, err := identity.NewIdentity(userID, role, region)
	require.NoError(t, err)
	return id
}

func mustMenuItem(t *testing.T, region kernel.Region, price string) *catalog.MenuItem {
	t.Helper()
	m, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	item, err := catalog.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), region, "dish", m)
	require.NoError(t, err)
	return item
}

// pendingOrder is an INDIA order of 2 × 350.00 owned by ownerID.
func pendingOrder(t *testing.T, ownerID string) *order.Order {
	t.Helper()
	price, _ := kernel.MoneyFromString("350")
	item, err := order.NewItem(kernel.NewUUID(), 2, price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), ownerID, kernel.RegionIndia, []order.Item{item}, nil, time.Now())
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}
