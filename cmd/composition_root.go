package cmd

import (
	"strings"

	httpin "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/inventory"
	"orders/internal/adapters/out/kafkaout"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	inventory  ports.InventoryClient
	publisher  ports.EventPublisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	inventoryClient, err := inventory.NewClient(config.InventoryBaseURL, config.InventoryTimeout)
	if err != nil {
		return CompositionRoot{}, err
	}

	publisher, err := kafkaout.NewPublisher(
		strings.Split(config.KafkaBrokers, ","),
		config.KafkaOrderTopic,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		inventory:  inventoryClient,
		publisher:  publisher,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	return commands.NewAddItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.inventory)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

// CreateOutboxRepository returns an outbox repository on the main connection,
// used outside transactions for dead letter monitoring.
func (c *CompositionRoot) CreateOutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAddItemCommandHandler(),
		c.CreateRemoveItemCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
