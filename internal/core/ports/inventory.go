package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// ReservationItem is one product line in an inventory reservation request.
type ReservationItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// InventoryClient is the outbound port to the inventory service.
//
// Reserve is all-or-nothing: either every requested line is reserved and a
// reservation id is returned, or nothing is reserved and an error describes
// why. Two failure modes are distinguished because callers react differently:
//
//   - InsufficientInventoryError: a definitive business refusal naming the
//     products that are short. Not retryable.
//   - InventoryUnavailableError: the service could not be reached or answered
//     abnormally. The outcome is unknown and the call may be retried.
type InventoryClient interface {
	// Reserve reserves stock for every item of the given order and returns
	// the reservation id issued by the inventory service.
	Reserve(ctx context.Context, orderID kernel.UUID, items []ReservationItem) (string, error)
}
