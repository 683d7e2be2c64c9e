package orderrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Updates use optimistic concurrency: the version column must still hold the
// value the aggregate was loaded at, and is incremented by exactly one per
// successful save. Items are replaced wholesale on update, which keeps the
// child table a pure projection of the aggregate's item list.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
	}
}

// Add saves a new order and its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update saves an existing order, guarded by its version.
// Returns a ConcurrencyConflictError when the stored version no longer
// matches, and an ObjectNotFoundError when the order does not exist.
// On success the aggregate's in-memory version is advanced to match the row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loadedVersion := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Omit(clause.Associations).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError(aggregate.ID().String(), loadedVersion)
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

// replaceItems rewrites the item rows to mirror the aggregate's current lines.
func (r *GormOrderRepository) replaceItems(ctx context.Context, dto OrderDTO) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.Items).Error
}

// Get retrieves an order by ID with its items loaded eagerly.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
