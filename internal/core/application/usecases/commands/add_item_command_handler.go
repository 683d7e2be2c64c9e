package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// AddItemCommandHandler handles adding items to pending orders.
// Retries the load-mutate-save cycle on version conflicts, so two concurrent
// additions to the same order both land instead of one failing spuriously.
type AddItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddItemCommandHandler creates a handler for item addition operations.
func NewAddItemCommandHandler(uowFactory OrderUoWFactory) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add item command.
// Loads the order, applies the addition (merging quantity into an existing
// line for the same product), and persists order and outbox records atomically.
// Returns the snapshot of the committed order.
func (h *AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.AddItem(cmd.ProductID(), cmd.Name(), cmd.Quantity(), cmd.UnitPrice())
	})
}
