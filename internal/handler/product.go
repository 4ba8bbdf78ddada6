package handler

import (
	"net/http"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"olukosi-storefront/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productRepo      repository.ProductRepository
	inventoryService service.InventoryService
}

func NewProductHandler(productRepo repository.ProductRepository, inventoryService service.InventoryService) *ProductHandler {
	return &ProductHandler{
		productRepo:      productRepo,
		inventoryService: inventoryService,
	}
}

// CreateProduct is a catalog pass-through for the admin panel.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a positive price are required")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := &model.Product{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Slug:              req.Slug,
		SKU:               req.SKU,
		Description:       req.Description,
		Price:             req.Price,
		SalePrice:         req.SalePrice,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		Material:          req.Material,
		Color:             req.Color,
		Size:              req.Size,
		IsFeatured:        req.IsFeatured,
		IsActive:          active,
	}
	if err := h.productRepo.Create(ctx, product); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"product": product,
		"message": "Product created successfully",
	})
}

func (h *ProductHandler) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()
	productID := c.Param("id")

	var req dto.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	changeType := model.InventoryChangeType(req.Type)
	if !changeType.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown change type")
	}

	product, err := h.inventoryService.AdjustStock(ctx, productID, req.Quantity, changeType)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product": product,
	})
}
