package repository

import (
	"context"
	"olukosi-storefront/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Append(ctx context.Context, tx *gorm.DB, entry *model.AdminActivityLog) error
	ListByAdmin(ctx context.Context, adminID string) ([]*model.AdminActivityLog, error)
}

type activityLogRepoImpl struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepoImpl{
		db: db,
	}
}

func (r *activityLogRepoImpl) Append(ctx context.Context, tx *gorm.DB, entry *model.AdminActivityLog) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepoImpl) ListByAdmin(ctx context.Context, adminID string) ([]*model.AdminActivityLog, error) {
	var entries []*model.AdminActivityLog
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}
