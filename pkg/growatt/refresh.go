package growatt

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
	"mundosolar.mx/backend/models"
)

// RefreshResult summarizes one run of the refresh job.
type RefreshResult struct {
	Updated      int `json:"updated"`
	MarkedStale  int `json:"markedStale"`
	PlantsSeen   int `json:"plantsSeen"`
	ClientsFound int `json:"clientsFound"`
}

// Refresher runs the scheduled cache refresh. It is invoked through an HTTP
// trigger, not an in-process timer.
type Refresher struct {
	svc    *CacheService
	client *Client
	ttl    time.Duration
}

func NewRefresher(svc *CacheService, client *Client, ttl time.Duration) *Refresher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Refresher{svc: svc, client: client, ttl: ttl}
}

func parseMetric(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// Refresh logs into the vendor API, matches plants to clients through their
// solar systems, and upserts one cache row per client. On fetch failure
// every existing row is marked stale instead, so readers see the data as
// unreliable rather than silently outdated.
func (r *Refresher) Refresh(ctx context.Context) (*RefreshResult, error) {
	result := &RefreshResult{}

	token, err := r.client.Login(ctx)
	if err != nil {
		n, markErr := r.markAllStale()
		if markErr != nil {
			r.svc.log.Error().Err(markErr).Msg("growatt: could not mark cache stale after login failure")
		}
		result.MarkedStale = n
		return result, err
	}

	plants, err := r.client.PlantList(ctx, token)
	if err != nil {
		n, markErr := r.markAllStale()
		if markErr != nil {
			r.svc.log.Error().Err(markErr).Msg("growatt: could not mark cache stale after fetch failure")
		}
		result.MarkedStale = n
		return result, err
	}
	result.PlantsSeen = len(plants)

	now := time.Now()
	for _, plant := range plants {
		var system models.SolarSystem
		if err := r.svc.db.First(&system, "growatt_plant_id = ?", plant.PlantID).Error; err != nil {
			continue // plant not linked to any client
		}
		result.ClientsFound++

		row := models.GrowattDataCache{
			ClientID:     system.ClientID,
			PlantID:      plant.PlantID,
			PlantName:    plant.PlantName,
			Status:       plant.Status,
			EnergyToday:  parseMetric(plant.EnergyToday),
			EnergyMonth:  parseMetric(plant.EnergyMonth),
			EnergyYear:   parseMetric(plant.EnergyYear),
			EnergyTotal:  parseMetric(plant.EnergyTotal),
			CurrentPower: parseMetric(plant.CurrentPower),
			CO2Reduction: parseMetric(plant.CO2Reduction),
			Revenue:      parseMetric(plant.Revenue),
			CachedAt:     now,
			ExpiresAt:    now.Add(r.ttl),
			IsStale:      false,
		}

		err := r.svc.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"plant_id", "plant_name", "status",
				"energy_today", "energy_month", "energy_year", "energy_total",
				"current_power", "co2_reduction", "revenue",
				"cached_at", "expires_at", "is_stale",
			}),
		}).Create(&row).Error
		if err != nil {
			r.svc.log.Warn().Err(err).Str("plantId", plant.PlantID).Msg("growatt: upsert failed")
			continue
		}
		result.Updated++
	}

	r.svc.log.Info().
		Int("plants", result.PlantsSeen).
		Int("updated", result.Updated).
		Msg("growatt cache refreshed")
	return result, nil
}

func (r *Refresher) markAllStale() (int, error) {
	res := r.svc.db.Model(&models.GrowattDataCache{}).
		Where("is_stale = ?", false).
		Update("is_stale", true)
	return int(res.RowsAffected), res.Error
}
