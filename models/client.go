// models/client.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer of the company. RFC is the Mexican tax id required on
// CFDI invoices. Latitude/Longitude locate the installation site and feed the
// technician travel-distance suggestion.
type Client struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:15" json:"phone"`
	RFC          string    `gorm:"column:rfc;size:13;index" json:"rfc"`
	Address      string    `gorm:"size:255" json:"address"`
	City         string    `gorm:"size:100" json:"city"`
	State        string    `gorm:"size:100" json:"state"`
	PostalCode   string    `gorm:"size:10" json:"postalCode"`
	Latitude     float64   `gorm:"column:latitude" json:"latitude"`
	Longitude    float64   `gorm:"column:longitude" json:"longitude"`
	PortalAccess bool      `gorm:"default:true" json:"portalAccess"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SolarSystems []SolarSystem `gorm:"foreignKey:ClientID" json:"solarSystems,omitempty"`
}

// SolarSystem is one installed array for a client. GrowattPlantID ties the
// system to the vendor's monitoring "plant".
type SolarSystem struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"clientId"`
	Client           *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Name             string     `gorm:"size:150;not null" json:"name"`
	PanelCount       int        `gorm:"not null" json:"panelCount"`
	CapacityKW       float64    `gorm:"column:capacity_kw;not null" json:"capacityKw"`
	InverterSerial   string     `gorm:"size:100" json:"inverterSerial"`
	GrowattPlantID   string     `gorm:"column:growatt_plant_id;size:50;index" json:"growattPlantId"`
	InstallationDate *time.Time `json:"installationDate,omitempty"`
	Status           string     `gorm:"size:30;default:'active'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
