package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/pkg/scheduling"
	"mundosolar.mx/backend/utils"
)

func availabilityService() *scheduling.AvailabilityService {
	return scheduling.NewAvailabilityService(config.DB)
}

func parseDateParam(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// GetHourlyAvailability returns the client-facing slot list for a date. A
// slot is marked unavailable only when every active technician conflicts.
func GetHourlyAvailability(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "parámetro date requerido (YYYY-MM-DD)")
		return
	}

	slots, err := availabilityService().HourlyAvailability(date)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}

// GetTechnicianAvailability is the admin view for one specific technician.
func GetTechnicianAvailability(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "parámetro date requerido (YYYY-MM-DD)")
		return
	}
	technicianID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de técnico inválido")
		return
	}

	slots, err := availabilityService().TechnicianAvailability(technicianID, date)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":         date.Format("2006-01-02"),
		"technicianId": technicianID,
		"slots":        slots,
	})
}

// SuggestTechnicians ranks free technicians for a date/hour by travel
// distance to the client's installation site.
func SuggestTechnicians(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "parámetro date requerido (YYYY-MM-DD)")
		return
	}
	hour, err := strconv.Atoi(r.URL.Query().Get("hour"))
	if err != nil || hour < scheduling.FirstSlotHour || hour > scheduling.LastSlotHour {
		respondError(w, http.StatusBadRequest, "parámetro hour fuera de rango")
		return
	}

	site := utils.Coordinate{}
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		var client models.Client
		if err := config.DB.First(&client, "id = ?", clientID).Error; err != nil {
			respondError(w, http.StatusNotFound, "cliente no encontrado")
			return
		}
		site = utils.Coordinate{Lat: client.Latitude, Lng: client.Longitude}
	}

	suggestions, err := availabilityService().SuggestTechnicians(date, hour, site)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestions)
}
