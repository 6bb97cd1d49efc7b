// models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusQuote     = "QUOTE"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Payment statuses. An order is PAID once amountPaid covers the total,
// PENDING while nothing has been received, otherwise PARTIAL.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusPaid    = "PAID"
)

type Order struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Folio    string    `gorm:"size:20;uniqueIndex;not null" json:"folio"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status   string    `gorm:"size:20;not null;default:'QUOTE'" json:"status"`

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	// Ledger aggregates, recomputed inside the same transaction as every
	// payment write. Invariant: BalanceDue == Total - AmountPaid.
	AmountPaid    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amountPaid"`
	BalanceDue    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balanceDue"`
	PaymentStatus string          `gorm:"size:20;not null;default:'PENDING'" json:"paymentStatus"`

	Notes     string     `gorm:"size:500" json:"notes"`
	CreatedBy uuid.UUID  `gorm:"type:uuid" json:"createdBy"`
	DueDate   *time.Time `json:"dueDate,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"lineTotal"`
}

// Payment is one received amount against an order.
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"orderId"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method     string          `gorm:"size:30;not null" json:"method"`
	Reference  string          `gorm:"size:100" json:"reference"`
	Notes      string          `gorm:"size:255" json:"notes"`
	ReceivedAt time.Time       `gorm:"not null" json:"receivedAt"`
	RecordedBy uuid.UUID       `gorm:"type:uuid;not null" json:"recordedBy"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}
