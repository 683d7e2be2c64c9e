package commands

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// maxReserveAttempts bounds calls to the inventory service when it is
// unavailable. Only unavailability is retried; an insufficient-stock refusal
// is definitive and returned on the first answer.
const maxReserveAttempts = 3

// ConfirmOrderCommandHandler orchestrates order confirmation.
//
// The flow is: check confirmation preconditions, reserve inventory for all
// lines, then persist the confirmed order with its outbox record. A failed
// reservation leaves the order untouched in Pending. A version conflict on
// the save is NOT retried automatically, because a retry would reserve
// inventory a second time; the conflict surfaces to the caller instead.
//
// Example:
//
//	handler := NewConfirmOrderCommandHandler(uowFactory, inventoryClient)
//	cmd, _ := NewConfirmOrderCommand(orderID)
//	snapshot, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientInventory):
//	    // definitive refusal, tell the customer what is out of stock
//	case errors.Is(err, errs.ErrInventoryUnavailable):
//	    // unknown outcome, safe to retry later
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	inventory  ports.InventoryClient
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
// Requires an OrderUoWFactory for persistence and an InventoryClient for
// stock reservation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	inventory ports.InventoryClient,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
	}
}

// Handle processes the confirm order command.
// Returns the snapshot of the committed order.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return OrderSnapshot{}, err
	}

	// Fail fast before touching the inventory service.
	if err = aggregate.ValidateConfirm(); err != nil {
		return OrderSnapshot{}, err
	}

	reservationID, err := h.reserve(ctx, aggregate)
	if err != nil {
		return OrderSnapshot{}, err
	}

	if err = aggregate.Confirm(reservationID); err != nil {
		return OrderSnapshot{}, err
	}

	records, err := recordsFromEvents(aggregate.DomainEvents())
	if err != nil {
		return OrderSnapshot{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
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

// reserve requests an all-or-nothing reservation for every line of the order,
// retrying transient unavailability a bounded number of times.
func (h *ConfirmOrderCommandHandler) reserve(ctx context.Context, aggregate *order.Order) (string, error) {
	items := aggregate.Items()
	request := make([]ports.ReservationItem, 0, len(items))
	for _, item := range items {
		request = append(request, ports.ReservationItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}

	var lastErr error
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		reservationID, err := h.inventory.Reserve(ctx, aggregate.ID(), request)
		if err == nil {
			return reservationID, nil
		}
		if !errors.Is(err, errs.ErrInventoryUnavailable) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
