package service

import (
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db               *gorm.DB
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	paymentRepo      repository.PaymentRepository
	promoRepo        repository.PromoCodeRepository
	inventoryLogRepo repository.InventoryLogRepository
	activityLogRepo  repository.ActivityLogRepository
	adminRepo        repository.AdminRepository

	promoService     PromoService
	inventoryService InventoryService
	orderService     OrderService
	paymentService   PaymentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.PromoCode{},
		&model.InventoryLog{},
		&model.AdminActivityLog{},
		&model.Admin{},
	))

	env := &testEnv{
		db:               db,
		productRepo:      repository.NewProductRepository(db),
		orderRepo:        repository.NewOrderRepository(db),
		paymentRepo:      repository.NewPaymentRepository(db),
		promoRepo:        repository.NewPromoCodeRepository(db),
		inventoryLogRepo: repository.NewInventoryLogRepository(db),
		activityLogRepo:  repository.NewActivityLogRepository(db),
		adminRepo:        repository.NewAdminRepository(db),
	}

	logger := zap.NewNop()
	env.promoService = NewPromoService(env.promoRepo)
	env.inventoryService = NewInventoryService(db, env.productRepo, env.inventoryLogRepo, logger)
	env.orderService = NewOrderService(
		db, "OLK",
		env.productRepo, env.orderRepo, env.activityLogRepo,
		env.promoService, env.inventoryService, logger,
	)
	env.paymentService = NewPaymentService(
		db, "NGN",
		env.orderRepo, env.paymentRepo, env.activityLogRepo, logger,
	)

	return env
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:            uuid.NewString(),
		Name:          name,
		Slug:          name,
		SKU:           "SKU-" + name,
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func listAll() repository.OrderFilter {
	return repository.OrderFilter{}
}

func (e *testEnv) seedPromo(t *testing.T, code string, discountType model.DiscountType, value float64, maxDiscount *float64, expiresAt time.Time, active bool) *model.PromoCode {
	t.Helper()

	promo := &model.PromoCode{
		ID:                    uuid.NewString(),
		Code:                  code,
		DiscountType:          discountType,
		DiscountValue:         value,
		MaximumDiscountAmount: maxDiscount,
		IsActive:              active,
		ExpiresAt:             expiresAt,
	}
	require.NoError(t, e.db.Create(promo).Error)
	return promo
}
