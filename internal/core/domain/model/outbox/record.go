package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

const (
	// MaxAttempts is the number of delivery attempts before a record is
	// dead-lettered.
	MaxAttempts = 10

	// baseBackoff is the delay after the first failed attempt; it doubles
	// with every further failure.
	baseBackoff = time.Second

	// maxBackoff caps the delay between attempts.
	maxBackoff = 5 * time.Minute
)

// ErrRecordIsNotConstructed is returned when a Record instance was not created
// through the NewRecordFromEvent or RestoreRecord factory functions.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecordFromEvent or RestoreRecord")

// Record is a domain event in its durable, broker-independent form.
//
// The record id equals the domain event id and is stable across publish
// retries; downstream consumers deduplicate on it. The payload is serialized
// once at creation time so the relay never needs the domain model to publish.
type Record struct {
	// id is the domain event id; stable across retries, used for dedupe
	id kernel.UUID

	// aggregateID is the order the event belongs to; used as partition key
	aggregateID kernel.UUID

	// eventType is the dotted event type name, e.g. "order.created"
	eventType string

	// payload is the event payload serialized to JSON at creation time
	payload []byte

	// status is the delivery state
	status Status

	// attempts counts failed delivery attempts so far
	attempts int

	// lastError holds the message of the most recent delivery failure
	lastError string

	// nextAttemptAt is the earliest time the relay may retry
	nextAttemptAt time.Time

	// occurredAt is when the domain event was recorded (UTC)
	occurredAt time.Time

	// publishedAt is set once the broker acknowledged delivery
	publishedAt *time.Time

	// isConstructed ensures the record was created via a factory function
	isConstructed bool
}

// NewRecordFromEvent captures a domain event as a pending outbox record,
// serializing its payload to JSON. The record is immediately eligible for
// delivery.
func NewRecordFromEvent(event order.DomainEvent) (*Record, error) {
	if event == nil {
		return nil, errs.NewValueIsRequiredError("event")
	}

	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	r := &Record{
		eventType:     event.EventType(),
		payload:       payload,
		status:        StatusPending,
		nextAttemptAt: event.OccurredAt(),
		occurredAt:    event.OccurredAt(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(event.EventID()),
		r.setAggregateID(event.AggregateID()),
		r.setEventType(event.EventType()),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRecord reconstructs an outbox record from persistence.
func RestoreRecord(
	id, aggregateID kernel.UUID,
	eventType string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	nextAttemptAt, occurredAt time.Time,
	publishedAt *time.Time,
) (*Record, error) {
	r := &Record{
		payload:       payload,
		lastError:     lastError,
		nextAttemptAt: nextAttemptAt,
		occurredAt:    occurredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setAggregateID(aggregateID),
		r.setEventType(eventType),
		r.setStatus(status),
		r.setAttempts(attempts),
	); err != nil {
		return nil, err
	}

	if publishedAt != nil {
		at := *publishedAt
		r.publishedAt = &at
	}

	return r, nil
}

// Validate ensures the Record was created through a factory function.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record id (equal to the domain event id).
func (r *Record) ID() kernel.UUID {
	return r.id
}

// AggregateID returns the order the event belongs to.
func (r *Record) AggregateID() kernel.UUID {
	return r.aggregateID
}

// EventType returns the dotted event type name.
func (r *Record) EventType() string {
	return r.eventType
}

// Payload returns the JSON-serialized event payload.
func (r *Record) Payload() []byte {
	return r.payload
}

// Status returns the delivery state.
func (r *Record) Status() Status {
	return r.status
}

// Attempts returns the number of failed delivery attempts so far.
func (r *Record) Attempts() int {
	return r.attempts
}

// LastError returns the message of the most recent delivery failure, or an
// empty string if none occurred.
func (r *Record) LastError() string {
	return r.lastError
}

// NextAttemptAt returns the earliest time the relay may retry delivery.
func (r *Record) NextAttemptAt() time.Time {
	return r.nextAttemptAt
}

// OccurredAt returns when the domain event was recorded.
func (r *Record) OccurredAt() time.Time {
	return r.occurredAt
}

// PublishedAt returns the broker acknowledgement time, or nil while the
// record has not been published.
func (r *Record) PublishedAt() *time.Time {
	return r.publishedAt
}

// IsDue reports whether a pending record is eligible for delivery at the
// given time.
func (r *Record) IsDue(now time.Time) bool {
	return r.status == StatusPending && !r.nextAttemptAt.After(now)
}

// MarkPublished records a successful delivery.
// Only pending records can be published.
func (r *Record) MarkPublished(at time.Time) error {
	if r.status != StatusPending {
		return errs.NewInvalidStateError("publish", r.status.String())
	}
	r.status = StatusPublished
	published := at.UTC()
	r.publishedAt = &published
	return nil
}

// MarkFailed records a failed delivery attempt. The attempt counter is
// incremented and the next attempt is scheduled with exponential backoff;
// once MaxAttempts is reached the record is dead-lettered instead.
//
// Returns the resulting status so the caller can react to dead-lettering
// without re-reading the record.
func (r *Record) MarkFailed(cause error, at time.Time) (Status, error) {
	if r.status != StatusPending {
		return r.status, errs.NewInvalidStateError("fail", r.status.String())
	}

	r.attempts++
	if cause != nil {
		r.lastError = cause.Error()
	}

	if r.attempts >= MaxAttempts {
		r.status = StatusDeadLettered
		return r.status, nil
	}

	r.nextAttemptAt = at.UTC().Add(backoffDelay(r.attempts))
	return r.status, nil
}

// backoffDelay returns the delay before the next attempt: baseBackoff after
// the first failure, doubling per failure, capped at maxBackoff.
func backoffDelay(attempts int) time.Duration {
	delay := baseBackoff
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	r.id = id
	return nil
}

func (r *Record) setAggregateID(aggregateID kernel.UUID) error {
	if err := aggregateID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("aggregateId", err)
	}
	r.aggregateID = aggregateID
	return nil
}

func (r *Record) setEventType(eventType string) error {
	if eventType == "" {
		return errs.NewValueIsRequiredError("eventType")
	}
	r.eventType = eventType
	return nil
}

func (r *Record) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Record) setAttempts(attempts int) error {
	if attempts < 0 {
		return errs.NewValueIsInvalidErrorWithCause("attempts",
			fmt.Errorf("%d is negative", attempts))
	}
	r.attempts = attempts
	return nil
}
