package outboxrepo

import (
	"context"
	"time"

	"orders/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{
		db: db,
	}
}

// Add persists new outbox records. Called within the same transaction as the
// aggregate save; a nil or empty batch is a no-op so callers don't need to
// special-case mutations that recorded no events.
func (r *GormOutboxRepository) Add(ctx context.Context, records []*outbox.Record) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]RecordDTO, 0, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(record))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending retrieves up to limit due pending records, oldest first.
// Rows are locked with FOR UPDATE SKIP LOCKED so concurrent relay instances
// claim disjoint batches instead of double-publishing.
func (r *GormOutboxRepository) FetchPending(
	ctx context.Context, limit int, now time.Time,
) ([]*outbox.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM outbox
		WHERE status = ? AND next_attempt_at <= ?
		ORDER BY occurred_at
		LIMIT ?
		FOR UPDATE SKIP LOCKED
	`, int(outbox.StatusPending), now, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*outbox.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}

// Update persists the delivery state of a record after a publish attempt.
func (r *GormOutboxRepository) Update(ctx context.Context, record *outbox.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Save(&dto).Error
}

// CountDeadLettered returns the number of dead-lettered records.
func (r *GormOutboxRepository) CountDeadLettered(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("status = ?", int(outbox.StatusDeadLettered)).
		Count(&count).Error
	return count, err
}
