package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using optimistic
	// concurrency: the save succeeds only if the stored version still equals
	// the version the aggregate was loaded at, and increments it by one.
	// Returns a ConcurrencyConflictError when another writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// complete item list loaded eagerly.
	// Returns an ObjectNotFoundError when no order carries the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
