// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationType defines what triggered the notification.
type NotificationType string

const (
	NotificationMaintenanceRequest NotificationType = "maintenance_request"
	NotificationMaintenanceStatus  NotificationType = "maintenance_status"
	NotificationPaymentReceived    NotificationType = "payment_received"
	NotificationInvoiceStamped     NotificationType = "invoice_stamped"
	NotificationLowStock           NotificationType = "low_stock"
	NotificationSystemAlert        NotificationType = "system_alert"
)

// Notification is one in-app message for either a staff user or a portal
// client (exactly one of UserID/ClientID is set). Data carries correlation
// ids such as maintenanceId or orderId.
type Notification struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	ClientID *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`

	Type    NotificationType `gorm:"size:50;not null;index" json:"type"`
	Title   string           `gorm:"size:200;not null" json:"title"`
	Message string           `gorm:"size:1000;not null" json:"message"`
	Data    datatypes.JSON   `gorm:"type:jsonb" json:"data,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}
