package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/pkg/growatt"
)

func growattCacheService() *growatt.CacheService {
	return growatt.NewCacheService(config.DB, config.Logger)
}

func growattTTL() time.Duration {
	if raw := os.Getenv("GROWATT_CACHE_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return growatt.DefaultTTL
}

// GetClientGeneration returns the cached Growatt metrics for a client with
// freshness derived at read time.
func GetClientGeneration(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de cliente inválido")
		return
	}

	data, err := growattCacheService().GetCached(clientID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if data == nil {
		respondError(w, http.StatusNotFound, "sin datos de generación para el cliente")
		return
	}
	respondJSON(w, http.StatusOK, data)
}

type bulkGenerationReq struct {
	ClientIDs []uuid.UUID `json:"clientIds" validate:"required,min=1,max=200"`
}

// GetBulkGeneration is the batched read used by the admin dashboard.
func GetBulkGeneration(w http.ResponseWriter, r *http.Request) {
	var req bulkGenerationReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	data, err := growattCacheService().GetBulkCached(req.ClientIDs)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// InvalidateClientGeneration marks a client's cached metrics stale.
func InvalidateClientGeneration(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de cliente inválido")
		return
	}

	if err := growattCacheService().Invalidate(clientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "sin datos de generación para el cliente")
			return
		}
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"invalidated": true})
}

// CleanupGenerationCache deletes rows that are both expired and stale.
func CleanupGenerationCache(w http.ResponseWriter, r *http.Request) {
	deleted, err := growattCacheService().CleanupExpired()
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}

// RefreshGenerationCache is the HTTP trigger for the scheduled refresh job.
func RefreshGenerationCache(w http.ResponseWriter, r *http.Request) {
	client := growatt.NewClient(
		os.Getenv("GROWATT_BASE_URL"),
		os.Getenv("GROWATT_USERNAME"),
		os.Getenv("GROWATT_PASSWORD"),
		config.Logger,
	)
	refresher := growatt.NewRefresher(growattCacheService(), client, growattTTL())

	result, err := refresher.Refresh(r.Context())
	if err != nil {
		// Existing rows were already marked stale by the refresher.
		config.Logger.Error().Err(err).Msg("growatt refresh failed")
		respondError(w, http.StatusBadGateway, "no se pudo actualizar la caché de Growatt")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
