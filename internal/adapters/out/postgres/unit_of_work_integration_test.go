package postgres_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that an order save and its outbox
// records commit or roll back as one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &outboxrepo.RecordDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox").Error)

	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndOutboxTogether() {
	ctx := context.Background()

	testOrder, record := suite.createOrderWithEvent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, []*outbox.Record{record}))

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&outboxrepo.RecordDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_PersistsNothing() {
	ctx := context.Background()

	testOrder, record := suite.createOrderWithEvent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, []*outbox.Record{record}))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 0)
	suite.assertCount(&outboxrepo.RecordDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUncommittedChanges_InvisibleToOtherConnections() {
	ctx := context.Background()

	testOrder, record := suite.createOrderWithEvent()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, []*outbox.Record{record}))

	// The main connection must not see rows of the open transaction
	suite.assertCount(&orderrepo.OrderDTO{}, 0)
	suite.assertCount(&outboxrepo.RecordDTO{}, 0)

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&outboxrepo.RecordDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrderWithEvent() (*order.Order, *outbox.Record) {
	address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "", "", nil)
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Burger", 1, decimal.RequireFromString("5.00"),
	)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), address, []*order.Item{item}, "",
	)
	suite.Require().NoError(err)

	events := testOrder.DomainEvents()
	suite.Require().Len(events, 1)

	record, err := outbox.NewRecordFromEvent(events[0])
	suite.Require().NoError(err)
	testOrder.ClearDomainEvents()

	return testOrder, record
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(model interface{}, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
