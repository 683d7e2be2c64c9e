package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new pending orders and records the "order.created" event in the
// outbox within the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, customerID, address, items, "")
//
//	snapshot, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// snapshot holds the pending order; its created event awaits the relay
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Builds the aggregate from the command data and persists it together with
// its outbox records; either both are committed or neither is. Returns the
// snapshot of the committed order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	deliveryAddress, err := addressFromCommand(cmd.Address())
	if err != nil {
		return OrderSnapshot{}, err
	}

	items, err := itemsFromCommand(cmd.Items())
	if err != nil {
		return OrderSnapshot{}, err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), deliveryAddress, items, cmd.Notes())
	if err != nil {
		return OrderSnapshot{}, err
	}

	records, err := recordsFromEvents(aggregate.DomainEvents())
	if err != nil {
		return OrderSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrderSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return OrderSnapshot{}, err
	}

	if err = uow.OutboxRepository().Add(ctx, records); err != nil {
		return OrderSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderSnapshot{}, err
	}

	aggregate.ClearDomainEvents()
	return snapshotFromAggregate(aggregate), nil
}

func addressFromCommand(address CreateOrderAddress) (order.DeliveryAddress, error) {
	var geo *kernel.GeoPoint
	if address.Latitude != nil && address.Longitude != nil {
		point, err := kernel.NewGeoPoint(*address.Latitude, *address.Longitude)
		if err != nil {
			return order.DeliveryAddress{}, err
		}
		geo = &point
	}

	return order.NewDeliveryAddress(
		address.Street, address.City, address.PostalCode,
		address.Apartment, address.Instructions, geo)
}

func itemsFromCommand(commandItems []CreateOrderItem) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(commandItems))
	for _, ci := range commandItems {
		item, err := order.NewItem(kernel.NewUUID(), ci.ProductID, ci.Name, ci.Quantity, ci.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
