package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// RemoveItemCommandHandler handles removing lines from pending orders.
type RemoveItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveItemCommandHandler creates a handler for item removal operations.
func NewRemoveItemCommandHandler(uowFactory OrderUoWFactory) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove item command.
// Removing the last line is allowed; the order simply cannot be confirmed
// until an item is added again. Returns the snapshot of the committed order.
func (h *RemoveItemCommandHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.RemoveItem(cmd.ItemID())
	})
}
