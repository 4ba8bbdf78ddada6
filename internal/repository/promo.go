package repository

import (
	"context"
	"olukosi-storefront/internal/model"

	"gorm.io/gorm"
)

type PromoCodeRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) error
	FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error)
}

type promoRepoImpl struct {
	db *gorm.DB
}

func NewPromoCodeRepository(db *gorm.DB) PromoCodeRepository {
	return &promoRepoImpl{
		db: db,
	}
}

func (r *promoRepoImpl) Create(ctx context.Context, promo *model.PromoCode) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *promoRepoImpl) FindActiveByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&promo).Error

	if err != nil {
		return nil, err
	}

	return &promo, nil
}
