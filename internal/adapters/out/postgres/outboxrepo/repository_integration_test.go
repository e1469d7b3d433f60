package outboxrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/postgrestest"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.database.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func message(name string, occurredAt time.Time) ports.OutboxMessage {
	aggregateID := kernel.NewUUID()
	payload, _ := json.Marshal(map[string]string{"orderId": aggregateID.String()})
	return ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  occurredAt,
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestLockUnpublished_OrderAndLimit() {
	ctx := context.Background()
	base := time.Now().Add(-time.Minute)
	second := message("order.status_changed", base.Add(time.Second))
	first := message("order.created", base)
	third := message("order.created", base.Add(2*time.Second))
	suite.Require().NoError(suite.repository.Add(ctx, second, first, third))

	got, err := suite.repository.LockUnpublished(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(first.ID, got[0].ID)
	suite.Equal(second.ID, got[1].ID)
	suite.Equal("order.created", got[0].Name)
	suite.Equal(first.AggregateID, got[0].AggregateID)
	suite.JSONEq(string(first.Payload), string(got[0].Payload))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkPublished_HidesMessages() {
	ctx := context.Background()
	a := message("order.created", time.Now())
	b := message("order.created", time.Now().Add(time.Millisecond))
	suite.Require().NoError(suite.repository.Add(ctx, a, b))

	suite.Require().NoError(suite.repository.MarkPublished(ctx, []kernel.UUID{a.ID}, time.Now()))

	got, err := suite.repository.LockUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(b.ID, got[0].ID)

	suite.Require().NoError(suite.repository.MarkPublished(ctx, nil, time.Now()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestLockUnpublished_SkipsLockedRows() {
	ctx := context.Background()
	a := message("order.created", time.Now())
	b := message("order.created", time.Now().Add(time.Millisecond))
	suite.Require().NoError(suite.repository.Add(ctx, a, b))

	relayA := suite.database.DB.Begin()
	suite.Require().NoError(relayA.Error)
	defer relayA.Rollback()
	relayB := suite.database.DB.Begin()
	suite.Require().NoError(relayB.Error)
	defer relayB.Rollback()

	lockedByA, err := outboxrepo.NewGormOutboxRepository(relayA).LockUnpublished(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(lockedByA, 1)

	lockedByB, err := outboxrepo.NewGormOutboxRepository(relayB).LockUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(lockedByB, 1)
	suite.NotEqual(lockedByA[0].ID, lockedByB[0].ID)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_Nothing() {
	suite.NoError(suite.repository.Add(context.Background()))
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
