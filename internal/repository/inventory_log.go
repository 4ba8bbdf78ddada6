package repository

import (
	"context"
	"olukosi-storefront/internal/model"

	"gorm.io/gorm"
)

// InventoryLogRepository is append-only: every stock change writes
// exactly one row and rows are never updated or deleted.
type InventoryLogRepository interface {
	Append(ctx context.Context, tx *gorm.DB, entry *model.InventoryLog) error
	ListByProduct(ctx context.Context, productID string) ([]*model.InventoryLog, error)
}

type inventoryLogRepoImpl struct {
	db *gorm.DB
}

func NewInventoryLogRepository(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepoImpl{
		db: db,
	}
}

func (r *inventoryLogRepoImpl) Append(ctx context.Context, tx *gorm.DB, entry *model.InventoryLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *inventoryLogRepoImpl) ListByProduct(ctx context.Context, productID string) ([]*model.InventoryLog, error) {
	var entries []*model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}
