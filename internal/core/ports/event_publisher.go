package ports

import (
	"context"

	"orders/internal/core/domain/model/outbox"
)

// EventPublisher is the outbound port to the message broker used by the
// outbox relay.
//
// Publish must be synchronous: it returns nil only after the broker has
// acknowledged the message, because the relay marks the record published on
// success. Implementations key messages by aggregate id so all events of one
// order stay ordered within their partition.
type EventPublisher interface {
	// Publish delivers a single outbox record to the broker.
	Publish(ctx context.Context, record *outbox.Record) error
}
