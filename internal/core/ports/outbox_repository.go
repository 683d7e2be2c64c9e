package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox records.
//
// Add runs inside the same transaction as the aggregate save; that coupling
// is what makes the outbox transactional. The remaining methods serve the
// relay.
type OutboxRepository interface {
	// Add persists new outbox records. Must be called within the same
	// transaction as the aggregate change that produced them.
	Add(ctx context.Context, records []*outbox.Record) error

	// FetchPending retrieves up to limit pending records whose next attempt
	// time has passed, oldest first, claiming them against concurrent relay
	// instances for the duration of the transaction.
	FetchPending(ctx context.Context, limit int, now time.Time) ([]*outbox.Record, error)

	// Update persists the delivery state of a record after a publish attempt
	// (status, attempts, last error, next attempt time, published time).
	Update(ctx context.Context, record *outbox.Record) error

	// CountDeadLettered returns the number of dead-lettered records.
	// Exposed for monitoring.
	CountDeadLettered(ctx context.Context) (int64, error)
}
