// models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Movement types for InventoryMovement.
const (
	MovementIn     = "IN"
	MovementOut    = "OUT"
	MovementAdjust = "ADJUST"
)

type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU           string          `gorm:"column:sku;size:50;uniqueIndex;not null" json:"sku"`
	Name          string          `gorm:"size:150;not null" json:"name"`
	Category      string          `gorm:"size:50;index" json:"category"`
	Description   string          `gorm:"size:500" json:"description"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	StockQuantity int             `gorm:"not null;default:0" json:"stockQuantity"`
	MinStock      int             `gorm:"not null;default:0" json:"minStock"`
	IsActive      bool            `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// InventoryMovement records every stock change; the product's StockQuantity is
// updated in the same transaction that inserts the movement.
type InventoryMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Type       string    `gorm:"size:10;not null" json:"type"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Reason     string    `gorm:"size:255" json:"reason"`
	RecordedBy uuid.UUID `gorm:"type:uuid;not null" json:"recordedBy"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
