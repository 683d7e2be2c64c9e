package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles order cancellation from Pending or
// Confirmed status. Cancellation never deletes the order; it is a terminal
// state kept for audit and event consumers.
//
// Inventory held by a confirmed order is not released here: the recorded
// "order.cancelled" event carries the previous status, and a downstream
// consumer performs the compensation.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel order command.
// Returns the snapshot of the committed order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Cancel(cmd.Reason())
	})
}
