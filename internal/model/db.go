package model

import "time"

type Product struct {
	ID                string `gorm:"primaryKey;size:36;not null"`
	Name              string `gorm:"size:255;not null"`
	Slug              string `gorm:"size:255;uniqueIndex"`
	SKU               string `gorm:"size:64;index"`
	Description       string
	Price             float64  `gorm:"not null"`
	SalePrice         *float64 // discounted price, overrides Price when set
	StockQuantity     int      `gorm:"not null;default:0"`
	LowStockThreshold int
	Material          string   `gorm:"size:64"`
	Color             string   `gorm:"size:64"`
	Size              string   `gorm:"size:64"`
	IsFeatured        bool     `gorm:"not null;default:false"`
	// no column default: gorm omits zero-value fields that carry one on
	// insert, which would flip a product created inactive back to active
	IsActive  bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectivePrice is the price a customer is charged right now.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

type Order struct {
	ID                  string      `gorm:"primaryKey;size:36;not null"`
	OrderNumber         string      `gorm:"size:32;uniqueIndex;not null"`
	CustomerID          string      `gorm:"size:36;index"`
	Status              OrderStatus `gorm:"size:32;index;not null"`
	CustomerEmail       string      `gorm:"size:255"`
	CustomerPhone       string      `gorm:"size:32"`
	CustomerFirstName   string      `gorm:"size:64"`
	CustomerLastName    string      `gorm:"size:64"`
	Subtotal            float64     `gorm:"not null"`
	TaxAmount           float64     `gorm:"not null;default:0"`
	ShippingAmount      float64     `gorm:"not null;default:0"`
	DiscountAmount      float64     `gorm:"not null;default:0"`
	TotalAmount         float64     `gorm:"not null"`
	ShippingMethod      string      `gorm:"size:64"`
	ShippingAddress     string      `gorm:"type:json"`
	BillingAddress      string      `gorm:"type:json"`
	SpecialInstructions string
	TrackingNumber      string `gorm:"size:64"`
	// client-generated key for exactly-once order creation
	IdempotencyKey *string `gorm:"size:64;uniqueIndex"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OrderItem struct {
	ID          string  `gorm:"primaryKey;size:36;not null"`
	OrderID     string  `gorm:"size:36;index;not null"`
	ProductID   string  `gorm:"size:36;index;not null"`
	ProductName string  `gorm:"size:255;not null"`
	ProductSKU  string  `gorm:"size:64"`
	Quantity    int     `gorm:"not null"`
	UnitPrice   float64 `gorm:"not null"`
	TotalPrice  float64 `gorm:"not null"`
	// frozen copy of the product at order time, protects historical
	// orders from later catalog edits
	ProductSnapshot string `gorm:"type:json"`
	CreatedAt       time.Time
}

type Payment struct {
	ID                   string        `gorm:"primaryKey;size:36;not null"`
	OrderID              string        `gorm:"size:36;index;not null"`
	PaymentMethod        PaymentMethod `gorm:"size:32;not null"`
	Status               PaymentStatus `gorm:"size:32;index;not null"`
	Amount               float64       `gorm:"not null"`
	Currency             string        `gorm:"size:8;not null"`
	GatewayTransactionID string        `gorm:"size:128"`
	GatewayReference     string        `gorm:"size:128"`
	BankName             string        `gorm:"size:128"`
	AccountNumber        string        `gorm:"size:32"`
	TransferReference    string        `gorm:"size:128"`
	PaymentDate          *time.Time
	Notes                string
	ProcessedBy          string `gorm:"size:36"` // admin who confirmed
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type PromoCode struct {
	ID                    string       `gorm:"primaryKey;size:36;not null"`
	Code                  string       `gorm:"size:64;uniqueIndex;not null"`
	DiscountType          DiscountType `gorm:"size:32;not null"`
	DiscountValue         float64      `gorm:"not null"`
	MaximumDiscountAmount *float64
	// same as Product.IsActive, a column default would swallow false on insert
	IsActive  bool `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

type InventoryLog struct {
	ID               string              `gorm:"primaryKey;size:36;not null"`
	ProductID        string              `gorm:"size:36;index;not null"`
	Type             InventoryChangeType `gorm:"size:32;not null"`
	QuantityChange   int                 `gorm:"not null"` // signed, negative for sales
	PreviousQuantity int                 `gorm:"not null"`
	NewQuantity      int                 `gorm:"not null"`
	CreatedAt        time.Time
}

type AdminActivityLog struct {
	ID           string `gorm:"primaryKey;size:36;not null"`
	AdminID      string `gorm:"size:36;index;not null"`
	Action       string `gorm:"size:64;index;not null"`
	ResourceType string `gorm:"size:64"`
	ResourceID   string `gorm:"size:36"`
	Details      string `gorm:"type:json"`
	CreatedAt    time.Time
}

type Admin struct {
	ID                  string `gorm:"primaryKey;size:36;not null"`
	Email               string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash        string `gorm:"size:128;not null"`
	Name                string `gorm:"size:128;not null"`
	Role                string `gorm:"size:32;not null"`
	IsActive            bool   `gorm:"not null"`
	LastLogin           *time.Time
	FailedLoginAttempts int `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
