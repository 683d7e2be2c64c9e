package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// UpdateOrderStatusCommandHandler handles operationally-driven status
// transitions validated against the order lifecycle.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update operations.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update status command.
// Rejects any transition outside the lifecycle adjacency table with an
// InvalidTransitionError from the aggregate. Returns the snapshot of the
// committed order.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.UpdateStatus(cmd.NewStatus())
	})
}
