package commands

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/pkg/errs"
)

// maxConcurrencyRetries bounds the optimistic retry loop: the initial attempt
// plus two reloads. Conflicts past that point surface to the caller, which
// keeps a hot aggregate from pinning a worker indefinitely.
const maxConcurrencyRetries = 3

// mutationFunc applies a domain operation to a freshly loaded order.
type mutationFunc func(o *order.Order) error

// mutateOrder is the shared load-mutate-save cycle behind every order
// mutation command. Each attempt reloads the aggregate at its current
// version, applies the mutation, and saves aggregate and outbox records in
// one transaction. A version conflict discards all in-memory state and
// retries from the reload, so a mutation is never replayed onto stale state.
//
// Only concurrency conflicts are retried; domain rejections and
// infrastructure errors return immediately.
//
// On success the snapshot of the committed aggregate is returned, so every
// mutation answers with the order state it produced.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate mutationFunc,
) (OrderSnapshot, error) {
	var lastErr error
	for attempt := 0; attempt < maxConcurrencyRetries; attempt++ {
		aggregate, err := tryMutateOrder(ctx, uowFactory, orderID, mutate)
		if err == nil {
			return snapshotFromAggregate(aggregate), nil
		}
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return OrderSnapshot{}, err
		}
		lastErr = err
	}
	return OrderSnapshot{}, lastErr
}

func tryMutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate mutationFunc,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = mutate(aggregate); err != nil {
		return nil, err
	}

	records, err := recordsFromEvents(aggregate.DomainEvents())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, records); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	aggregate.ClearDomainEvents()
	return aggregate, nil
}

// recordsFromEvents captures the aggregate's buffered events as outbox records.
func recordsFromEvents(events []order.DomainEvent) ([]*outbox.Record, error) {
	records := make([]*outbox.Record, 0, len(events))
	for _, event := range events {
		record, err := outbox.NewRecordFromEvent(event)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
