// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order mutations. Every order mutation
	// also writes outbox records, so the outbox repository is always part of
	// the same transaction boundary.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	orderRepo := uow.OrderRepository()
	//	outboxRepo := uow.OutboxRepository()
	//	// ... save aggregate and its events
	//
	//	err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions for the outbox relay, which touches only
	// outbox records.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
