package main

import (
	"context"
	"fmt"
	"net/http"
	"olukosi-storefront/internal/client"
	"olukosi-storefront/internal/config"
	"olukosi-storefront/internal/handler"
	"olukosi-storefront/internal/logger"
	"olukosi-storefront/internal/repository"
	"olukosi-storefront/internal/server"
	"olukosi-storefront/internal/service"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db := client.InitSqliteClient(cfg.DatabaseURL)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	inventoryLogRepo := repository.NewInventoryLogRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	promoService := service.NewPromoService(promoRepo)
	inventoryService := service.NewInventoryService(db, productRepo, inventoryLogRepo, log)
	orderService := service.NewOrderService(
		db, cfg.Store.OrderPrefix,
		productRepo, orderRepo, activityLogRepo,
		promoService, inventoryService, log,
	)
	paymentService := service.NewPaymentService(
		db, cfg.Store.Currency,
		orderRepo, paymentRepo, activityLogRepo, log,
	)
	authService := service.NewAuthService(db, cfg.Auth, adminRepo, activityLogRepo, log)

	orderHandler := handler.NewOrderHandler(orderService, paymentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	productHandler := handler.NewProductHandler(productRepo, inventoryService)
	authHandler := handler.NewAuthHandler(authService)

	srv := server.NewServer(cfg, orderHandler, paymentHandler, productHandler, authHandler)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
