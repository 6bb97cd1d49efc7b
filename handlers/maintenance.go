package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/pkg/notify"
	"mundosolar.mx/backend/pkg/scheduling"
)

func workflowService() *scheduling.WorkflowService {
	notifier := notify.NewService(config.DB, config.Logger)
	return scheduling.NewWorkflowService(config.DB, notifier, config.Logger)
}

func GetAllMaintenances(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.MaintenanceRecord{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if technicianID := r.URL.Query().Get("technicianId"); technicianID != "" {
		query = query.Joins("JOIN maintenance_assignments ON maintenance_assignments.maintenance_id = maintenance_records.id").
			Where("maintenance_assignments.technician_id = ?", technicianID)
	}

	var total int64
	query.Count(&total)

	var records []models.MaintenanceRecord
	err := query.Preload("Client").Preload("Assignments").Preload("Assignments.Technician").
		Limit(limit).Offset(offset).Order("scheduled_date DESC NULLS LAST").Find(&records).Error
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: records, Page: page, Limit: limit, Total: total})
}

func GetMaintenance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var record models.MaintenanceRecord
	err := config.DB.Preload("Client").Preload("SolarSystem").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Assignments").Preload("Assignments.Technician").
		First(&record, "id = ?", id).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "mantenimiento no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

type createScheduledReq struct {
	ClientID      uuid.UUID   `json:"clientId" validate:"required"`
	SolarSystemID *uuid.UUID  `json:"solarSystemId"`
	TechnicianIDs []uuid.UUID `json:"technicianIds" validate:"required,min=1"`
	Type          string      `json:"type" validate:"required,max=50"`
	Title         string      `json:"title" validate:"required,max=200"`
	Description   string      `json:"description" validate:"omitempty,max=1000"`
	ScheduledDate time.Time   `json:"scheduledDate" validate:"required"`
	Priority      string      `json:"priority" validate:"omitempty,oneof=SCHEDULED URGENT"`
	Notes         string      `json:"notes" validate:"omitempty,max=500"`
}

// CreateScheduledMaintenance creates a visit directly in SCHEDULED with its
// technician assignments.
func CreateScheduledMaintenance(w http.ResponseWriter, r *http.Request) {
	var req createScheduledReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	claims := middleware.GetClaims(r)
	adminID, _ := uuid.Parse(claims.UserID)

	record, err := workflowService().CreateScheduled(scheduling.CreateScheduledInput{
		AdminID:       adminID,
		ClientID:      req.ClientID,
		SolarSystemID: req.SolarSystemID,
		TechnicianIDs: req.TechnicianIDs,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Priority:      req.Priority,
		Notes:         req.Notes,
	})
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

type transitionReq struct {
	Status models.MaintenanceStatus `json:"status" validate:"required,oneof=PENDING_APPROVAL SCHEDULED IN_PROGRESS COMPLETED CANCELLED"`
	Notes  string                   `json:"notes" validate:"omitempty,max=500"`
}

// TransitionMaintenanceStatus applies a status change and appends it to the
// history.
func TransitionMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var req transitionReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	claims := middleware.GetClaims(r)
	actorID, _ := uuid.Parse(claims.UserID)

	record, err := workflowService().TransitionStatus(id, req.Status, actorID, req.Notes)
	if err != nil {
		if errors.Is(err, scheduling.ErrMaintenanceNotFound) {
			respondError(w, http.StatusNotFound, "mantenimiento no encontrado")
			return
		}
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func GetMaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var history []models.MaintenanceStatusChange
	if err := config.DB.Where("maintenance_id = ?", id).Order("created_at").Find(&history).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
