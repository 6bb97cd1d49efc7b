// Package growatt caches generation metrics from the Growatt monitoring API.
// Interactive handlers only read the cache or mark it stale; rows are written
// by the refresh job.
package growatt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"mundosolar.mx/backend/models"
)

// DefaultTTL is how long a refreshed row stays fresh.
const DefaultTTL = 24 * time.Hour

// CachedData is the read-side view of one cache row with freshness derived
// at read time.
type CachedData struct {
	ClientID        uuid.UUID       `json:"clientId"`
	PlantID         string          `json:"plantId"`
	PlantName       string          `json:"plantName"`
	Status          string          `json:"status"`
	EnergyToday     decimal.Decimal `json:"energyToday"`
	EnergyMonth     decimal.Decimal `json:"energyMonth"`
	EnergyYear      decimal.Decimal `json:"energyYear"`
	EnergyTotal     decimal.Decimal `json:"energyTotal"`
	CurrentPower    decimal.Decimal `json:"currentPower"`
	CO2Reduction    decimal.Decimal `json:"co2Reduction"`
	Revenue         decimal.Decimal `json:"revenue"`
	CachedAt        time.Time       `json:"cachedAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	CacheAgeMinutes int             `json:"cacheAgeMinutes"`
	IsStale         bool            `json:"isStale"`
}

// Freshness derives the effective staleness of a row. Data is unreliable
// either because the refresh job explicitly flagged it (fetch failure) or
// because the expiry timestamp has passed; the two paths are independent and
// OR'd, never materialized.
func Freshness(cachedAt, expiresAt time.Time, storedStale bool, now time.Time) (ageMinutes int, isStale bool) {
	ageMinutes = int(now.Sub(cachedAt).Minutes())
	isStale = storedStale || now.After(expiresAt)
	return ageMinutes, isStale
}

func coerce(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

func toCachedData(row models.GrowattDataCache, now time.Time) CachedData {
	age, stale := Freshness(row.CachedAt, row.ExpiresAt, row.IsStale, now)
	return CachedData{
		ClientID:        row.ClientID,
		PlantID:         row.PlantID,
		PlantName:       row.PlantName,
		Status:          row.Status,
		EnergyToday:     coerce(row.EnergyToday),
		EnergyMonth:     coerce(row.EnergyMonth),
		EnergyYear:      coerce(row.EnergyYear),
		EnergyTotal:     coerce(row.EnergyTotal),
		CurrentPower:    coerce(row.CurrentPower),
		CO2Reduction:    coerce(row.CO2Reduction),
		Revenue:         coerce(row.Revenue),
		CachedAt:        row.CachedAt,
		ExpiresAt:       row.ExpiresAt,
		CacheAgeMinutes: age,
		IsStale:         stale,
	}
}

// CacheService reads and invalidates cache rows.
type CacheService struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

func NewCacheService(db *gorm.DB, log zerolog.Logger) *CacheService {
	return &CacheService{db: db, log: log, now: time.Now}
}

// GetCached returns the cached metrics for one client, or nil when no row
// exists.
func (s *CacheService) GetCached(clientID uuid.UUID) (*CachedData, error) {
	var row models.GrowattDataCache
	if err := s.db.First(&row, "client_id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	data := toCachedData(row, s.now())
	return &data, nil
}

// GetBulkCached returns cached metrics for many clients keyed by client id.
// Clients without a row are simply absent from the map.
func (s *CacheService) GetBulkCached(clientIDs []uuid.UUID) (map[uuid.UUID]CachedData, error) {
	var rows []models.GrowattDataCache
	if err := s.db.Where("client_id IN ?", clientIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	now := s.now()
	result := make(map[uuid.UUID]CachedData, len(rows))
	for _, row := range rows {
		result[row.ClientID] = toCachedData(row, now)
	}
	return result, nil
}

// Invalidate flips the stored stale flag for one client.
func (s *CacheService) Invalidate(clientID uuid.UUID) error {
	res := s.db.Model(&models.GrowattDataCache{}).
		Where("client_id = ?", clientID).
		Update("is_stale", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CleanupExpired deletes rows that are both past expiry and explicitly
// stale, returning the number removed.
func (s *CacheService) CleanupExpired() (int64, error) {
	res := s.db.Where("expires_at < ? AND is_stale = ?", s.now(), true).
		Delete(&models.GrowattDataCache{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Info().Int64("deleted", res.RowsAffected).Msg("growatt cache cleanup")
	}
	return res.RowsAffected, nil
}
