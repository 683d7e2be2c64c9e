// Package outbox contains the domain model of the transactional outbox.
//
// A Record is the durable form of a domain event. It is inserted in the same
// database transaction as the aggregate change that produced the event, so an
// event exists if and only if the change was committed. The relay later reads
// pending records and publishes them to the message broker, retrying with
// exponential backoff and dead-lettering records that exhaust their attempts.
//
// Delivery is at-least-once: a crash between broker publish and the status
// update re-sends the record. Consumers deduplicate on the record id, which
// equals the domain event id and never changes across retries.
package outbox
