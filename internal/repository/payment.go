package repository

import (
	"context"
	"olukosi-storefront/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	FindByID(ctx context.Context, paymentID string) (*model.Payment, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, paymentID string) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*model.Payment, error)
	// TransitionStatus is guarded by the current status so two admins
	// confirming the same payment cannot both win.
	TransitionStatus(ctx context.Context, tx *gorm.DB, paymentID string, from model.PaymentStatus, updates map[string]interface{}) (int64, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, paymentID string) (*model.Payment, error) {
	return r.findByID(ctx, r.db, paymentID)
}

func (r *paymentRepoImpl) FindByIDTx(ctx context.Context, tx *gorm.DB, paymentID string) (*model.Payment, error) {
	return r.findByID(ctx, tx, paymentID)
}

func (r *paymentRepoImpl) findByID(ctx context.Context, db *gorm.DB, paymentID string) (*model.Payment, error) {
	var payment model.Payment
	err := db.WithContext(ctx).
		Where("id = ?", paymentID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepoImpl) TransitionStatus(ctx context.Context, tx *gorm.DB, paymentID string, from model.PaymentStatus, updates map[string]interface{}) (int64, error) {
	result := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Updates(updates)

	return result.RowsAffected, result.Error
}
