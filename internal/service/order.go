package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/metrics"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, newStatus model.OrderStatus, adminID string) (*model.Order, error)
}

type orderServiceImpl struct {
	db               *gorm.DB
	orderPrefix      string
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	activityLogRepo  repository.ActivityLogRepository
	promoService     PromoService
	inventoryService InventoryService
	logger           *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderPrefix string,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	activityLogRepo repository.ActivityLogRepository,
	promoService PromoService,
	inventoryService InventoryService,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:               db,
		orderPrefix:      orderPrefix,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		activityLogRepo:  activityLogRepo,
		promoService:     promoService,
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// CreateOrder turns a cart payload into a persisted order. The order
// row, its items and every stock decrement commit in one transaction;
// any item failing its stock check aborts the whole order.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", model.ErrInvalidQuantity)
	}

	// re-submitting the same cart with the same key returns the order
	// already placed for it
	if req.IdempotencyKey != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check idempotency key: %w", err)
		}
	}

	var subtotal float64
	orderItems := make([]*model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s: %w", item.ProductID, model.ErrInvalidQuantity)
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("product %s: %w", item.ProductID, model.ErrProductNotFound)
			}
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product %s is inactive: %w", item.ProductID, model.ErrProductNotFound)
		}

		// the cart sends the price it displayed; reject anything that
		// no longer matches the catalog
		if item.UnitPrice != product.EffectivePrice() {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, model.ErrPriceMismatch)
		}

		snapshot, err := json.Marshal(product)
		if err != nil {
			return nil, fmt.Errorf("snapshot product %s: %w", item.ProductID, err)
		}

		itemTotal := item.UnitPrice * float64(item.Quantity)
		subtotal += itemTotal

		orderItems[i] = &model.OrderItem{
			ID:              uuid.NewString(),
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductSKU:      product.SKU,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      itemTotal,
			ProductSnapshot: string(snapshot),
		}
	}

	discountAmount, err := s.promoService.Evaluate(ctx, req.PromoCode, subtotal)
	if err != nil {
		return nil, fmt.Errorf("evaluate promo code: %w", err)
	}

	orderNumber, err := generateOrderNumber(s.orderPrefix)
	if err != nil {
		return nil, err
	}

	billingAddress := req.Shipping.Address
	if req.Billing != nil && len(req.Billing.Address) > 0 {
		billingAddress = req.Billing.Address
	}

	order := &model.Order{
		ID:                  uuid.NewString(),
		OrderNumber:         orderNumber,
		Status:              model.OrderPending,
		CustomerEmail:       req.CustomerInfo.Email,
		CustomerPhone:       req.CustomerInfo.Phone,
		CustomerFirstName:   req.CustomerInfo.FirstName,
		CustomerLastName:    req.CustomerInfo.LastName,
		Subtotal:            subtotal,
		ShippingAmount:      req.Shipping.Amount,
		DiscountAmount:      discountAmount,
		TotalAmount:         subtotal + req.Shipping.Amount - discountAmount,
		ShippingMethod:      req.Shipping.Method,
		ShippingAddress:     string(req.Shipping.Address),
		BillingAddress:      string(billingAddress),
		SpecialInstructions: req.SpecialInstructions,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		order.IdempotencyKey = &key
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		for _, item := range orderItems {
			if _, err := s.inventoryService.AdjustStockTx(ctx, tx, item.ProductID, item.Quantity, model.ChangeSale); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// two requests with the same key can both pass the lookup above;
		// the unique index lets only one insert, the loser returns the
		// winner's order
		if req.IdempotencyKey != "" {
			if existing, lookupErr := s.orderRepo.FindByIdempotencyKey(ctx, req.IdempotencyKey); lookupErr == nil {
				return existing, nil
			}
		}
		if errors.Is(err, model.ErrInsufficientStock) {
			metrics.OrderFailures.WithLabelValues("insufficient_stock").Inc()
		} else {
			metrics.OrderFailures.WithLabelValues("persistence").Inc()
		}
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total_amount", order.TotalAmount))

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, model.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	return s.orderRepo.GetOrderItems(ctx, orderID)
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID string, newStatus model.OrderStatus, adminID string) (*model.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("status %q: %w", newStatus, model.ErrInvalidTransition)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("order %s: %s -> %s: %w", orderID, order.Status, newStatus, model.ErrInvalidTransition)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	switch newStatus {
	case model.OrderShipped:
		updates["shipped_at"] = now
	case model.OrderDelivered:
		updates["delivered_at"] = now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.orderRepo.TransitionStatus(ctx, tx, orderID, order.Status, updates)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if rows == 0 {
			// someone else moved the order first
			return fmt.Errorf("order %s: %s -> %s: %w", orderID, order.Status, newStatus, model.ErrInvalidTransition)
		}

		if adminID != "" {
			details, _ := json.Marshal(map[string]string{"new_status": string(newStatus)})
			entry := &model.AdminActivityLog{
				ID:           uuid.NewString(),
				AdminID:      adminID,
				Action:       "update_order_status",
				ResourceType: "order",
				ResourceID:   orderID,
				Details:      string(details),
			}
			if err := s.activityLogRepo.Append(ctx, tx, entry); err != nil {
				return fmt.Errorf("append activity log: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(newStatus)))

	return s.GetOrder(ctx, orderID)
}
