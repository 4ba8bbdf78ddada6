package handler

import (
	"errors"
	"net/http"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/middleware"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"olukosi-storefront/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService   service.OrderService
	paymentService service.PaymentService
}

func NewOrderHandler(orderService service.OrderService, paymentService service.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	method := model.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown payment method")
	}

	order, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return mapServiceError(err)
	}

	// a replayed idempotency key hands back an order that already has a
	// payment attempt; re-use it instead of stacking another pending one
	var payment *model.Payment
	if req.IdempotencyKey != "" {
		payments, err := h.paymentService.GetOrderPayments(ctx, order.ID)
		if err != nil {
			return mapServiceError(err)
		}
		if len(payments) > 0 {
			payment = payments[0]
		}
	}
	if payment == nil {
		payment, err = h.paymentService.CreatePayment(ctx, order.ID, method, order.TotalAmount, req.BankDetails)
		if err != nil {
			return mapServiceError(err)
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"order":   order,
		"payment": payment,
		"message": "Order created successfully",
	})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.OrderFilter{
		Status:     c.QueryParam("status"),
		CustomerID: c.QueryParam("customerId"),
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset")
		}
		filter.Offset = offset
	}

	orders, err := h.orderService.ListOrders(ctx, filter)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return mapServiceError(err)
	}

	items, err := h.orderService.GetOrderItems(ctx, orderID)
	if err != nil {
		return mapServiceError(err)
	}

	payments, err := h.paymentService.GetOrderPayments(ctx, orderID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order":    order,
		"items":    items,
		"payments": payments,
	})
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, orderID, model.OrderStatus(req.Status), middleware.AdminID(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

func (h *OrderHandler) GetOrderPayments(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.paymentService.GetOrderPayments(ctx, c.Param("id"))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}

// mapServiceError translates the service error taxonomy into HTTP
// statuses so clients can tell retryable failures from bad requests.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrPaymentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrPriceMismatch),
		errors.Is(err, model.ErrInvalidQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
