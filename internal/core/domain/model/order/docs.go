// Package order contains the Order aggregate and its owned entities and
// value objects.
//
// The Order aggregate is the consistency boundary of the service. It owns its
// Items exclusively, derives its OrderTotal from them, enforces the lifecycle
// state machine through Status, and records DomainEvents for every externally
// relevant mutation. Events are persisted through the transactional outbox in
// the same database transaction as the aggregate itself, which is what makes
// "state changed" and "event recorded" atomic.
//
// Construction follows the factory pattern used throughout the domain layer:
// NewOrder for fresh aggregates, RestoreOrder for reconstruction from
// persistence. Both validate; zero-value instances fail Validate and are
// rejected at every boundary.
package order
