// models/growatt.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GrowattDataCache holds the last known generation metrics for one client,
// written by the scheduled refresh job. Interactive handlers only ever read
// it or flip IsStale; freshness itself is derived at read time from
// ExpiresAt and IsStale together.
type GrowattDataCache struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"clientId"`

	PlantID   string `gorm:"size:50;index" json:"plantId"`
	PlantName string `gorm:"size:150" json:"plantName"`
	Status    string `gorm:"size:30" json:"status"`

	EnergyToday  *decimal.Decimal `gorm:"type:numeric(14,3)" json:"energyToday,omitempty"`
	EnergyMonth  *decimal.Decimal `gorm:"type:numeric(14,3)" json:"energyMonth,omitempty"`
	EnergyYear   *decimal.Decimal `gorm:"type:numeric(14,3)" json:"energyYear,omitempty"`
	EnergyTotal  *decimal.Decimal `gorm:"type:numeric(14,3)" json:"energyTotal,omitempty"`
	CurrentPower *decimal.Decimal `gorm:"type:numeric(14,3)" json:"currentPower,omitempty"`
	CO2Reduction *decimal.Decimal `gorm:"column:co2_reduction;type:numeric(14,3)" json:"co2Reduction,omitempty"`
	Revenue      *decimal.Decimal `gorm:"type:numeric(14,2)" json:"revenue,omitempty"`

	CachedAt  time.Time `gorm:"not null" json:"cachedAt"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	IsStale   bool      `gorm:"default:false;index" json:"isStale"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (GrowattDataCache) TableName() string {
	return "growatt_data_cache"
}
