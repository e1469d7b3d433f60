package migrations_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/adapters/out/postgres/postgrestest"

	"github.com/stretchr/testify/suite"
)

type MigrationsIntegrationTestSuite struct {
	suite.Suite
	database *postgrestest.Database
}

func (suite *MigrationsIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *MigrationsIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *MigrationsIntegrationTestSuite) tableExists(name string) bool {
	var exists bool
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = ?)", name,
	).Scan(&exists).Error)
	return exists
}

func (suite *MigrationsIntegrationTestSuite) columnExists(table, column string) bool {
	var exists bool
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = ? AND column_name = ?)",
		table, column,
	).Scan(&exists).Error)
	return exists
}

func (suite *MigrationsIntegrationTestSuite) TestUpDownUp() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Start already applied everything.
	suite.Require().NoError(migrations.Up(suite.database.DSN, logger))
	for _, table := range []string{
		"restaurants", "menu_items", "orders", "order_items", "payment_methods", "outbox_messages",
	} {
		suite.True(suite.tableExists(table), table)
	}
	suite.True(suite.columnExists("order_items", "name"))

	suite.Require().NoError(migrations.Down(suite.database.DSN))
	suite.False(suite.tableExists("orders"))
	suite.False(suite.tableExists("outbox_messages"))

	suite.Require().NoError(migrations.Up(suite.database.DSN, logger))
	suite.True(suite.tableExists("orders"))
	suite.True(suite.columnExists("order_items", "name"))
}

func TestMigrationsIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MigrationsIntegrationTestSuite))
}
