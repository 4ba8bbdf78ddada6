package service

import (
	"context"
	"encoding/json"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/model"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func orderRequest(product *model.Product, quantity int) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		CustomerInfo: dto.CustomerInfo{
			Email:     "ada@example.com",
			Phone:     "+2348012345678",
			FirstName: "Ada",
			LastName:  "Obi",
		},
		Items: []dto.OrderItemRequest{
			{ProductID: product.ID, Quantity: quantity, UnitPrice: product.Price},
		},
		Shipping: dto.ShippingInfo{
			Method:  "standard",
			Amount:  5000,
			Address: json.RawMessage(`{"city":"Lagos"}`),
		},
		PaymentMethod: "bank_transfer",
	}
}

func TestCreateOrderTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "persian-rug", 65000, 10)

	order, err := env.orderService.CreateOrder(ctx, orderRequest(product, 2))
	require.NoError(t, err)

	assert.Equal(t, 130000.0, order.Subtotal)
	assert.Equal(t, 5000.0, order.ShippingAmount)
	assert.Equal(t, 0.0, order.DiscountAmount)
	assert.Equal(t, 135000.0, order.TotalAmount)
	assert.Equal(t, order.Subtotal+order.ShippingAmount-order.DiscountAmount, order.TotalAmount)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Regexp(t, `^OLK-\d{6}[0-9A-Z]{8}$`, order.OrderNumber)

	items, err := env.orderService.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 130000.0, items[0].TotalPrice)
	assert.Equal(t, items[0].UnitPrice*float64(items[0].Quantity), items[0].TotalPrice)
	assert.Equal(t, product.Name, items[0].ProductName)
	assert.NotEmpty(t, items[0].ProductSnapshot)

	// stock decremented and logged exactly once
	reloaded, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, reloaded.StockQuantity)

	entries, err := env.inventoryLogRepo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, -2, entries[0].QuantityChange)
}

func TestCreateOrderSubtotalMatchesItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rug := env.seedProduct(t, "rug", 65000, 10)
	runner := env.seedProduct(t, "runner", 20000, 10)

	req := orderRequest(rug, 1)
	req.Items = append(req.Items, dto.OrderItemRequest{
		ProductID: runner.ID, Quantity: 3, UnitPrice: runner.Price,
	})

	order, err := env.orderService.CreateOrder(ctx, req)
	require.NoError(t, err)

	items, err := env.orderService.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var sum float64
	for _, item := range items {
		sum += item.TotalPrice
	}
	assert.Equal(t, order.Subtotal, sum)
}

func TestCreateOrderWithPromoCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 100000, 10)
	env.seedPromo(t, "WELCOME10", model.DiscountPercentage, 10, nil, time.Now().Add(24*time.Hour), true)

	req := orderRequest(product, 1)
	req.PromoCode = "WELCOME10"

	order, err := env.orderService.CreateOrder(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, order.Subtotal)
	assert.Equal(t, 10000.0, order.DiscountAmount)
	assert.Equal(t, 95000.0, order.TotalAmount)
}

func TestCreateOrderExpiredPromoCodeIsSilentlyIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 100000, 10)
	env.seedPromo(t, "OLD", model.DiscountPercentage, 10, nil, time.Now().Add(-time.Hour), true)

	req := orderRequest(product, 1)
	req.PromoCode = "OLD"

	order, err := env.orderService.CreateOrder(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, order.DiscountAmount)
	assert.Equal(t, 105000.0, order.TotalAmount)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	req := orderRequest(&model.Product{ID: "missing", Price: 100}, 1)
	_, err := env.orderService.CreateOrder(context.Background(), req)
	require.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCreateOrderProductCreatedInactiveRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := &model.Product{
		ID:            uuid.NewString(),
		Name:          "retired-rug",
		Slug:          "retired-rug",
		Price:         65000,
		StockQuantity: 10,
		IsActive:      false,
	}
	require.NoError(t, env.productRepo.Create(ctx, product))

	// created inactive stays inactive after a reload
	reloaded, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	_, err = env.orderService.CreateOrder(ctx, orderRequest(product, 1))
	require.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCreateOrderPriceMismatchRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)

	req := orderRequest(product, 1)
	req.Items[0].UnitPrice = 1 // tampered cart

	_, err := env.orderService.CreateOrder(ctx, req)
	require.ErrorIs(t, err, model.ErrPriceMismatch)
}

func TestCreateOrderInsufficientStockRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 1)

	_, err := env.orderService.CreateOrder(ctx, orderRequest(product, 2))
	require.ErrorIs(t, err, model.ErrInsufficientStock)

	// no orphan order, no items, no stock change, no log rows
	orders, err := env.orderRepo.List(ctx, listAll())
	require.NoError(t, err)
	assert.Empty(t, orders)

	reloaded, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.StockQuantity)

	entries, err := env.inventoryLogRepo.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateOrderIdempotencyKeyReturnsSameOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)

	req := orderRequest(product, 1)
	req.IdempotencyKey = "cart-123"

	first, err := env.orderService.CreateOrder(ctx, req)
	require.NoError(t, err)

	second, err := env.orderService.CreateOrder(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)

	// stock was only taken once
	reloaded, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, reloaded.StockQuantity)
}

// interleavingPromo lets a rival request land an order with the same
// idempotency key between the key lookup and the insert, the way two
// concurrent submissions of one cart would.
type interleavingPromo struct {
	t       *testing.T
	env     *testEnv
	key     string
	once    sync.Once
	rivalID string
}

func (p *interleavingPromo) Evaluate(ctx context.Context, code string, subtotal float64) (float64, error) {
	p.once.Do(func() {
		key := p.key
		rival := &model.Order{
			ID:             uuid.NewString(),
			OrderNumber:    "OLK-000000RIVAL000",
			Status:         model.OrderPending,
			IdempotencyKey: &key,
		}
		require.NoError(p.t, p.env.db.Create(rival).Error)
		p.rivalID = rival.ID
	})
	return 0, nil
}

func TestCreateOrderIdempotencyKeyRaceReturnsWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)

	promo := &interleavingPromo{t: t, env: env, key: "cart-race"}
	orderService := NewOrderService(
		env.db, "OLK",
		env.productRepo, env.orderRepo, env.activityLogRepo,
		promo, env.inventoryService, zap.NewNop(),
	)

	req := orderRequest(product, 1)
	req.IdempotencyKey = "cart-race"

	// the unique index rejects this insert; the loser must surface the
	// winner's order, not an error
	order, err := orderService.CreateOrder(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, promo.rivalID, order.ID)

	orders, err := env.orderRepo.List(ctx, listAll())
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	// the losing transaction rolled back its stock decrement
	reloaded, err := env.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.StockQuantity)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)
	order, err := env.orderService.CreateOrder(ctx, orderRequest(product, 1))
	require.NoError(t, err)

	for _, status := range []model.OrderStatus{
		model.OrderConfirmed, model.OrderProcessing, model.OrderShipped, model.OrderDelivered,
	} {
		order, err = env.orderService.UpdateOrderStatus(ctx, order.ID, status, "")
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}

	assert.NotNil(t, order.ShippedAt)
	assert.NotNil(t, order.DeliveredAt)
}

func TestUpdateOrderStatusRejectsIllegalTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)
	order, err := env.orderService.CreateOrder(ctx, orderRequest(product, 1))
	require.NoError(t, err)

	_, err = env.orderService.UpdateOrderStatus(ctx, order.ID, model.OrderDelivered, "")
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = env.orderService.UpdateOrderStatus(ctx, order.ID, model.OrderStatus("bogus"), "")
	require.ErrorIs(t, err, model.ErrInvalidTransition)

	// order left untouched
	reloaded, err := env.orderService.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, reloaded.Status)
}

func TestUpdateOrderStatusWritesActivityLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.seedProduct(t, "rug", 65000, 10)
	order, err := env.orderService.CreateOrder(ctx, orderRequest(product, 1))
	require.NoError(t, err)

	_, err = env.orderService.UpdateOrderStatus(ctx, order.ID, model.OrderConfirmed, "admin-1")
	require.NoError(t, err)

	entries, err := env.activityLogRepo.ListByAdmin(ctx, "admin-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "update_order_status", entries[0].Action)
	assert.Equal(t, "order", entries[0].ResourceType)
	assert.Equal(t, order.ID, entries[0].ResourceID)
}
