package repository

import (
	"context"
	"olukosi-storefront/internal/model"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindActiveByEmail(ctx context.Context, email string) (*model.Admin, error)
	Update(ctx context.Context, adminID string, updates map[string]interface{}) error
}

type adminRepoImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepoImpl{
		db: db,
	}
}

func (r *adminRepoImpl) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepoImpl) FindActiveByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&admin).Error

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepoImpl) Update(ctx context.Context, adminID string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("id = ?", adminID).
		Updates(updates).Error
}
