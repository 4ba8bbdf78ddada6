package service

import (
	"context"
	"errors"
	"fmt"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"time"

	"gorm.io/gorm"
)

// PromoService evaluates promo codes against an order subtotal. A code
// that is unknown, inactive or expired is simply not applicable and
// yields a zero discount rather than an error.
type PromoService interface {
	Evaluate(ctx context.Context, code string, subtotal float64) (float64, error)
}

type promoServiceImpl struct {
	promoRepo repository.PromoCodeRepository
}

func NewPromoService(promoRepo repository.PromoCodeRepository) PromoService {
	return &promoServiceImpl{
		promoRepo: promoRepo,
	}
}

func (s *promoServiceImpl) Evaluate(ctx context.Context, code string, subtotal float64) (float64, error) {
	if code == "" {
		return 0, nil
	}

	promo, err := s.promoRepo.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("look up promo code: %w", err)
	}

	if !promo.ExpiresAt.After(time.Now()) {
		return 0, nil
	}

	var discount float64
	switch promo.DiscountType {
	case model.DiscountPercentage:
		discount = subtotal * promo.DiscountValue / 100
		if promo.MaximumDiscountAmount != nil && discount > *promo.MaximumDiscountAmount {
			discount = *promo.MaximumDiscountAmount
		}
	case model.DiscountFixed:
		discount = promo.DiscountValue
		// a fixed discount larger than the subtotal would push the
		// order total negative
		if discount > subtotal {
			discount = subtotal
		}
	}

	return discount, nil
}
