package queries_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	handler    queries.GetOrderQueryHandler
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.repository = orderrepo.NewGormOrderRepository(db)
	suite.handler = queries.NewGetOrderQueryHandler(db)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder_ReturnsFullOrder() {
	testOrder := suite.createAndSaveTestOrder("extra napkins")

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(testOrder.ID()))
	suite.True(result.CustomerID.IsEqual(testOrder.CustomerID()))
	suite.Equal("Pending", result.Status)
	suite.Equal("1 Main St", result.Address.Street)
	suite.Equal("Springfield", result.Address.City)
	suite.Equal("extra napkins", result.Notes)
	suite.Equal(1, result.Version)
	suite.Require().Len(result.Items, 2)

	burger := result.Items[0]
	suite.Equal("Burger", burger.Name)
	suite.Equal(2, burger.Quantity)
	suite.True(burger.UnitPrice.Equal(decimal.RequireFromString("5.00")))
	suite.True(burger.Subtotal.Equal(decimal.RequireFromString("10.00")))
	suite.Equal("Fries", result.Items[1].Name)
	suite.True(result.Total.Equal(decimal.RequireFromString("12.50")))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ItemsKeepInsertionOrder() {
	testOrder := suite.createAndSaveTestOrder("")
	names := []string{"Burger", "Fries", "Lemonade", "Salad", "Brownie", "Coffee"}
	for _, name := range names[2:] {
		suite.Require().NoError(
			testOrder.AddItem(kernel.NewUUID(), name, 1, decimal.RequireFromString("1.00")),
		)
	}
	testOrder.ClearDomainEvents()
	suite.Require().NoError(suite.repository.Update(context.Background(), testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, len(names))
	for i, name := range names {
		suite.Equal(name, result.Items[i].Name)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

func (suite *GetOrderQueryHandlerTestSuite) createAndSaveTestOrder(notes string) *order.Order {
	address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "", "", nil)
	suite.Require().NoError(err)

	burger, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Burger", 2, decimal.RequireFromString("5.00"),
	)
	suite.Require().NoError(err)
	fries, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Fries", 1, decimal.RequireFromString("2.50"),
	)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), address, []*order.Item{burger, fries}, notes,
	)
	suite.Require().NoError(err)
	testOrder.ClearDomainEvents()

	suite.Require().NoError(suite.repository.Add(context.Background(), testOrder))
	return testOrder
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
