package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/postgrestest"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *postgrestest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func createTestOrder(userID string) *order.Order {
	price, _ := kernel.MoneyFromString("8")
	item, _ := order.NewItem(kernel.NewUUID(), 3, price)
	o, _ := order.NewOrder(kernel.NewUUID(), userID, kernel.RegionAmerica, []order.Item{item}, nil, time.Now())
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) unpublished() []ports.OutboxMessage {
	messages, err := suite.factory.Create().OutboxRepository().LockUnpublished(context.Background(), 100)
	suite.Require().NoError(err)
	return messages
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CatalogRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Begin on an open transaction is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Error(uow.Commit(ctx), "commit without a transaction")
	suite.Error(uow.Rollback(ctx), "rollback without a transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesOrderAndOutboxTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder("member-1")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Empty(suite.unpublished(), "nothing is visible before commit")
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("24.00", stored.TotalAmount().String())

	messages := suite.unpublished()
	suite.Require().Len(messages, 1)
	suite.Equal(order.EventNameCreated, messages[0].Name)
	suite.Equal(o.ID(), messages[0].AggregateID)

	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(messages[0].Payload, &payload))
	suite.Equal(o.ID().String(), payload["orderId"])
	suite.Equal("member-1", payload["userId"])
	suite.Equal("AMERICA", payload["region"])
	suite.Equal("24.00", payload["totalAmount"])

	suite.Empty(o.DomainEvents(), "events are cleared once committed")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_TracksAggregateOnce() {
	ctx := context.Background()
	o := createTestOrder("member-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	cash, _ := order.NewPaymentMethod(order.PaymentCash, nil)
	suite.Require().NoError(locked.Pay(cash, "member-1"))
	suite.Require().NoError(uow.OrderRepository().SavePayment(ctx, locked))
	suite.Require().NoError(uow.OrderRepository().UpdateStatus(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	messages := suite.unpublished()
	suite.Require().Len(messages, 2)
	suite.Equal(order.EventNameCreated, messages[0].Name)
	suite.Equal(order.EventNameStatusChanged, messages[1].Name)

	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(messages[1].Payload, &payload))
	suite.Equal("PENDING", payload["from"])
	suite.Equal("PAID", payload["to"])
	suite.Equal("member-1", payload["changedBy"])
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := createTestOrder("member-1")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Error(err)
	suite.Empty(suite.unpublished())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Isolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := createTestOrder("member-1")
	order2 := createTestOrder("member-2")

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Error(err, "uow1 must not see uncommitted order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Error(err, "uow2 must not see uncommitted order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, order1.ID())
	suite.NoError(err)
	_, err = fresh.OrderRepository().Get(ctx, order2.ID())
	suite.Error(err)

	messages := suite.unpublished()
	suite.Require().Len(messages, 1)
	suite.Equal(order1.ID(), messages[0].AggregateID)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_FailedInsertRollsBackEverything() {
	ctx := context.Background()
	existing := createTestOrder("member-1")
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, existing))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	fresh := createTestOrder("member-2")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, fresh))
	suite.Require().Error(uow.OrderRepository().Add(ctx, existing), "duplicate id")
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, fresh.ID())
	suite.Error(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
