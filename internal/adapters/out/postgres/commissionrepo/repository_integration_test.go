package commissionrepo_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/commissionrepo"
	"hyperlocal/internal/core/domain/model/commission"
	"hyperlocal/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CommissionRepositoryIntegrationTestSuite provides integration tests for the
// ledger repository, in particular the idempotent insert on order_id.
type CommissionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *commissionrepo.GormCommissionRepository
	tracker    *MockAggregateTracker
}

func (suite *CommissionRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&commissionrepo.EntryDTO{}))
}

func (suite *CommissionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE commissions").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = commissionrepo.NewGormCommissionRepository(suite.db, suite.tracker)
}

func (suite *CommissionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CommissionRepositoryIntegrationTestSuite) TestInsertIfAbsent_FirstInsertLands() {
	ctx := context.Background()

	entry := suite.createEntry(kernel.NewUUID(), kernel.NewUUID())

	inserted, err := suite.repository.InsertIfAbsent(ctx, entry)
	suite.Require().NoError(err)
	suite.True(inserted)

	entries, err := suite.repository.GetAllByCourier(ctx, entry.CourierID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.True(entries[0].ID().IsEqual(entry.ID()))
	suite.Equal(commission.PaidStatusUnpaid, entries[0].PaidStatus())
}

func (suite *CommissionRepositoryIntegrationTestSuite) TestInsertIfAbsent_DuplicateOrderIsNoOp() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	first := suite.createEntry(orderID, courierID)
	inserted, err := suite.repository.InsertIfAbsent(ctx, first)
	suite.Require().NoError(err)
	suite.True(inserted)

	// A retried delivery books against the same order with a fresh entry ID.
	retry := suite.createEntry(orderID, courierID)
	inserted, err = suite.repository.InsertIfAbsent(ctx, retry)
	suite.Require().NoError(err)
	suite.False(inserted)

	entries, err := suite.repository.GetAllByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.True(entries[0].ID().IsEqual(first.ID()))
}

func (suite *CommissionRepositoryIntegrationTestSuite) TestGetAllByCourier_NewestFirstAndScoped() {
	ctx := context.Background()

	courierID := kernel.NewUUID()

	older := suite.createEntry(kernel.NewUUID(), courierID)
	inserted, err := suite.repository.InsertIfAbsent(ctx, older)
	suite.Require().NoError(err)
	suite.True(inserted)

	suite.Require().NoError(suite.db.Exec(
		"UPDATE commissions SET created_at = created_at - interval '1 hour' WHERE id = ?",
		older.ID().Bytes(),
	).Error)

	newer := suite.createEntry(kernel.NewUUID(), courierID)
	inserted, err = suite.repository.InsertIfAbsent(ctx, newer)
	suite.Require().NoError(err)
	suite.True(inserted)

	foreign := suite.createEntry(kernel.NewUUID(), kernel.NewUUID())
	inserted, err = suite.repository.InsertIfAbsent(ctx, foreign)
	suite.Require().NoError(err)
	suite.True(inserted)

	entries, err := suite.repository.GetAllByCourier(ctx, courierID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.True(entries[0].ID().IsEqual(newer.ID()))
	suite.True(entries[1].ID().IsEqual(older.ID()))
}

func (suite *CommissionRepositoryIntegrationTestSuite) TestMarkAllPaidByCourier_SettlesOnlyUnpaid() {
	ctx := context.Background()

	courierID := kernel.NewUUID()

	for range 3 {
		entry := suite.createEntry(kernel.NewUUID(), courierID)
		inserted, err := suite.repository.InsertIfAbsent(ctx, entry)
		suite.Require().NoError(err)
		suite.True(inserted)
	}

	settled, err := suite.repository.MarkAllPaidByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.EqualValues(3, settled)

	// A second settlement run finds nothing left to settle.
	settled, err = suite.repository.MarkAllPaidByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.EqualValues(0, settled)

	entries, err := suite.repository.GetAllByCourier(ctx, courierID)
	suite.Require().NoError(err)
	for _, entry := range entries {
		suite.Equal(commission.PaidStatusPaid, entry.PaidStatus())
	}
}

func (suite *CommissionRepositoryIntegrationTestSuite) createEntry(
	orderID kernel.UUID, courierID kernel.UUID,
) *commission.Entry {
	entry, err := commission.NewEntry(kernel.NewUUID(), orderID, courierID, 30)
	suite.Require().NoError(err)
	return entry
}

func TestCommissionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionRepositoryIntegrationTestSuite))
}
