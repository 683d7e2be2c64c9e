package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
)

// RelayResult summarizes one relay pass.
type RelayResult struct {
	// Published is the number of records acknowledged by the broker.
	Published int

	// Failed is the number of records whose delivery failed and was
	// rescheduled with backoff.
	Failed int

	// DeadLettered is the number of records that exhausted their attempts
	// during this pass.
	DeadLettered int
}

// RelayOutboxCommandHandler performs one polling pass of the transactional
// outbox relay: it claims due pending records, publishes them to the broker,
// and persists the per-record outcome.
//
// The claim holds row locks for the duration of the pass, so concurrent relay
// instances skip each other's batches instead of double-publishing. Delivery
// is still at-least-once: a crash after broker acknowledgement but before
// commit re-sends the batch, which consumers absorb by deduplicating on the
// event id.
//
// Failures are isolated per record. One record failing to publish reschedules
// that record with exponential backoff and moves on; the rest of the batch is
// unaffected.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewRelayOutboxCommandHandler creates a handler for relay passes.
// Requires an OutboxUoWFactory for claiming records and an EventPublisher
// for broker delivery.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes one relay pass and reports how many records were
// published, rescheduled, and dead-lettered.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	records, err := outboxRepo.FetchPending(ctx, cmd.BatchSize(), h.now())
	if err != nil {
		return RelayResult{}, err
	}

	var result RelayResult
	for _, record := range records {
		if err = h.deliver(ctx, outboxRepo, record, &result); err != nil {
			return RelayResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayResult{}, err
	}

	return result, nil
}

func (h *RelayOutboxCommandHandler) deliver(
	ctx context.Context,
	outboxRepo ports.OutboxRepository,
	record *outbox.Record,
	result *RelayResult,
) error {
	publishErr := h.publisher.Publish(ctx, record)
	if publishErr == nil {
		if err := record.MarkPublished(h.now()); err != nil {
			return err
		}
		result.Published++
		return outboxRepo.Update(ctx, record)
	}

	status, err := record.MarkFailed(publishErr, h.now())
	if err != nil {
		return err
	}
	if status == outbox.StatusDeadLettered {
		result.DeadLettered++
	} else {
		result.Failed++
	}
	return outboxRepo.Update(ctx, record)
}
