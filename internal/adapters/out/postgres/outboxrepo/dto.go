// Package outboxrepo provides data transfer objects and mapping functions for
// outbox record persistence. The outbox table is written in the same
// transaction as the order tables and drained by the relay.
package outboxrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting outbox records.
// The (status, next_attempt_at) index serves the relay's polling query.
type RecordDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID   uuid.UUID `gorm:"type:uuid;index"`
	EventType     string
	Payload       []byte `gorm:"type:jsonb"`
	Status        int    `gorm:"index:idx_outbox_due,priority:1"`
	Attempts      int
	LastError     string
	NextAttemptAt time.Time `gorm:"index:idx_outbox_due,priority:2"`
	OccurredAt    time.Time
	PublishedAt   *time.Time
}

// TableName specifies the database table name for outbox records.
func (RecordDTO) TableName() string {
	return "outbox"
}

// fromDomain converts an outbox record to its database representation.
func fromDomain(record *outbox.Record) RecordDTO {
	return RecordDTO{
		ID:            record.ID().Bytes(),
		AggregateID:   record.AggregateID().Bytes(),
		EventType:     record.EventType(),
		Payload:       record.Payload(),
		Status:        int(record.Status()),
		Attempts:      record.Attempts(),
		LastError:     record.LastError(),
		NextAttemptAt: record.NextAttemptAt(),
		OccurredAt:    record.OccurredAt(),
		PublishedAt:   record.PublishedAt(),
	}
}

// toDomain converts a database DTO to an outbox record using RestoreRecord.
func toDomain(dto RecordDTO) (*outbox.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreRecord(
		id, aggregateID, dto.EventType, dto.Payload,
		outbox.Status(dto.Status), dto.Attempts, dto.LastError,
		dto.NextAttemptAt, dto.OccurredAt, dto.PublishedAt)
}
