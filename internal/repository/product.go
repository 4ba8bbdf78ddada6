package repository

import (
	"context"
	"olukosi-storefront/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error)
	// AdjustStock applies a signed delta to stock_quantity. The guard
	// refuses any update that would drive the quantity negative; the
	// returned bool reports whether a row was changed.
	AdjustStock(ctx context.Context, tx *gorm.DB, productID string, delta int) (bool, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	return r.findByID(ctx, r.db, productID)
}

func (r *productRepoImpl) FindByIDTx(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error) {
	return r.findByID(ctx, tx, productID)
}

func (r *productRepoImpl) findByID(ctx context.Context, db *gorm.DB, productID string) (*model.Product, error) {
	var product model.Product
	err := db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) AdjustStock(ctx context.Context, tx *gorm.DB, productID string, delta int) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_quantity + ? >= 0", productID, delta).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", delta),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
