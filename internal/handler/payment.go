package handler

import (
	"net/http"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/middleware"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) UpdatePaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()
	paymentID := c.Param("id")

	var req dto.UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	adminID := middleware.AdminID(c)
	if adminID == "" {
		adminID = req.AdminID
	}

	payment, err := h.paymentService.UpdatePaymentStatus(ctx, paymentID, model.PaymentStatus(req.Status), adminID, req.Notes)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payment": payment,
		"message": "Payment status updated successfully",
	})
}
