// models/invoice.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice statuses. Stamping against the PAC is an external step; the record
// only tracks its outcome.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusStamped   = "STAMPED"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice is the CFDI document for an order. FiscalUUID is the folio fiscal
// assigned by the PAC once stamped.
type Invoice struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	Order   *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	Series string `gorm:"size:10;not null" json:"series"`
	Folio  int    `gorm:"not null" json:"folio"`
	Status string `gorm:"size:20;not null;default:'DRAFT'" json:"status"`

	ReceiverRFC  string `gorm:"column:receiver_rfc;size:13;not null" json:"receiverRfc"`
	ReceiverName string `gorm:"size:150;not null" json:"receiverName"`
	CFDIUse      string `gorm:"column:cfdi_use;size:5;not null" json:"cfdiUse"`
	PaymentForm  string `gorm:"size:3;not null" json:"paymentForm"`
	PaymentMeth  string `gorm:"column:payment_method;size:3;not null" json:"paymentMethod"`

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	FiscalUUID  *string    `gorm:"column:fiscal_uuid;size:36;uniqueIndex" json:"fiscalUuid,omitempty"`
	StampedAt   *time.Time `json:"stampedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedBy uuid.UUID      `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
