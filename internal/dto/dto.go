package dto

import "encoding/json"

type CustomerInfo struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type OrderItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type ShippingInfo struct {
	Method  string          `json:"method"`
	Amount  float64         `json:"amount"`
	Address json.RawMessage `json:"address"`
}

type BillingInfo struct {
	Address json.RawMessage `json:"address"`
}

type BankDetails struct {
	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	TransferReference string `json:"transferReference"`
}

type CreateOrderRequest struct {
	CustomerInfo        CustomerInfo       `json:"customerInfo"`
	Items               []OrderItemRequest `json:"items"`
	Shipping            ShippingInfo       `json:"shipping"`
	Billing             *BillingInfo       `json:"billing"`
	PaymentMethod       string             `json:"paymentMethod"`
	BankDetails         *BankDetails       `json:"bankDetails"`
	PromoCode           string             `json:"promoCode"`
	SpecialInstructions string             `json:"specialInstructions"`
	IdempotencyKey      string             `json:"idempotencyKey"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
	// legacy clients send the acting admin in the body; the bearer
	// token wins when both are present
	AdminID string `json:"adminId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AdjustStockRequest struct {
	Quantity int    `json:"quantity"`
	Type     string `json:"type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Admin   AdminInfo `json:"admin"`
	Token   string    `json:"token"`
	Message string    `json:"message"`
}

type CreateProductRequest struct {
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	SKU               string   `json:"sku"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	SalePrice         *float64 `json:"salePrice"`
	StockQuantity     int      `json:"stockQuantity"`
	LowStockThreshold int      `json:"lowStockThreshold"`
	Material          string   `json:"material"`
	Color             string   `json:"color"`
	Size              string   `json:"size"`
	IsFeatured        bool     `json:"isFeatured"`
	IsActive          *bool    `json:"isActive"`
}
