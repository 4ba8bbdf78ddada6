package service

import (
	"context"
	"errors"
	"fmt"
	"olukosi-storefront/internal/metrics"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryService applies stock changes. Every successful change pairs
// an atomic quantity update with exactly one InventoryLog row; both
// happen in the same transaction or not at all.
type InventoryService interface {
	AdjustStock(ctx context.Context, productID string, quantity int, changeType model.InventoryChangeType) (*model.Product, error)
	// AdjustStockTx is the transaction-scoped variant for callers that
	// already hold a transaction, such as order placement.
	AdjustStockTx(ctx context.Context, tx *gorm.DB, productID string, quantity int, changeType model.InventoryChangeType) (*model.Product, error)
}

type inventoryServiceImpl struct {
	db               *gorm.DB
	productRepo      repository.ProductRepository
	inventoryLogRepo repository.InventoryLogRepository
	logger           *zap.Logger
}

func NewInventoryService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	inventoryLogRepo repository.InventoryLogRepository,
	logger *zap.Logger,
) InventoryService {
	return &inventoryServiceImpl{
		db:               db,
		productRepo:      productRepo,
		inventoryLogRepo: inventoryLogRepo,
		logger:           logger,
	}
}

func (s *inventoryServiceImpl) AdjustStock(ctx context.Context, productID string, quantity int, changeType model.InventoryChangeType) (*model.Product, error) {
	var product *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		product, txErr = s.AdjustStockTx(ctx, tx, productID, quantity, changeType)
		return txErr
	})

	return product, err
}

func (s *inventoryServiceImpl) AdjustStockTx(ctx context.Context, tx *gorm.DB, productID string, quantity int, changeType model.InventoryChangeType) (*model.Product, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}
	if !changeType.Valid() {
		return nil, fmt.Errorf("unknown inventory change type %q", changeType)
	}

	if _, err := s.productRepo.FindByIDTx(ctx, tx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, model.ErrProductNotFound)
		}
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}

	delta := quantity
	if changeType == model.ChangeSale {
		delta = -quantity
	}

	ok, err := s.productRepo.AdjustStock(ctx, tx, productID, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust stock for product %s: %w", productID, err)
	}
	if !ok {
		metrics.StockRejections.Inc()
		s.logger.Warn("stock adjustment rejected",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.String("type", string(changeType)))
		return nil, fmt.Errorf("product %s: %w", productID, model.ErrInsufficientStock)
	}

	product, err := s.productRepo.FindByIDTx(ctx, tx, productID)
	if err != nil {
		return nil, fmt.Errorf("reload product %s: %w", productID, err)
	}

	entry := &model.InventoryLog{
		ID:               uuid.NewString(),
		ProductID:        productID,
		Type:             changeType,
		QuantityChange:   delta,
		PreviousQuantity: product.StockQuantity - delta,
		NewQuantity:      product.StockQuantity,
	}
	if err := s.inventoryLogRepo.Append(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("append inventory log for product %s: %w", productID, err)
	}

	metrics.StockAdjustments.WithLabelValues(string(changeType)).Inc()

	return product, nil
}
