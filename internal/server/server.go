package server

import (
	"olukosi-storefront/internal/config"
	"olukosi-storefront/internal/handler"
	custommw "olukosi-storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo           *echo.Echo
	cfg            *config.Config
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	productHandler *handler.ProductHandler
	authHandler    *handler.AuthHandler
}

func NewServer(
	cfg *config.Config,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	productHandler *handler.ProductHandler,
	authHandler *handler.AuthHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		cfg:            cfg,
		orderHandler:   orderHandler,
		paymentHandler: paymentHandler,
		productHandler: productHandler,
		authHandler:    authHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.POST("/orders", s.orderHandler.CreateOrder)
	api.GET("/orders", s.orderHandler.ListOrders)
	api.GET("/orders/:id", s.orderHandler.GetOrder)

	api.POST("/auth/admin/login", s.authHandler.Login)

	// -------- admin panel --------
	adminAuth := custommw.AdminAuth(s.cfg.Auth.JWTSecret)
	api.PATCH("/payments/:id/status", s.paymentHandler.UpdatePaymentStatus, adminAuth)

	admin := api.Group("/admin", adminAuth)
	admin.POST("/add-product", s.productHandler.CreateProduct)
	admin.PATCH("/orders/:id/status", s.orderHandler.UpdateOrderStatus)
	admin.GET("/orders/:id/payments", s.orderHandler.GetOrderPayments)
	admin.POST("/products/:id/stock", s.productHandler.AdjustStock)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
