// handlers/portal.go — client-portal surface. Every handler here resolves
// the client from the portal token, never from request parameters.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/pkg/scheduling"
)

// GetPortalProfile returns the client's own record with systems.
func GetPortalProfile(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	var client models.Client
	if err := config.DB.Preload("SolarSystems").First(&client, "id = ?", clientID).Error; err != nil {
		respondError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// GetPortalOrders lists the client's own orders with payments.
func GetPortalOrders(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	var orders []models.Order
	err := config.DB.Preload("Items").Preload("Items.Product").Preload("Payments").
		Where("client_id = ?", clientID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetPortalGeneration returns the client's cached Growatt dashboard data.
func GetPortalGeneration(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	data, err := growattCacheService().GetCached(clientID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if data == nil {
		respondError(w, http.StatusNotFound, "sin datos de generación")
		return
	}
	respondJSON(w, http.StatusOK, data)
}

type maintenanceRequestReq struct {
	SolarSystemID *uuid.UUID       `json:"solarSystemId"`
	Type          string           `json:"type" validate:"required,max=50"`
	Title         string           `json:"title" validate:"required,max=200"`
	Description   string           `json:"description" validate:"omitempty,max=1000"`
	PreferredDate *models.JSONTime `json:"preferredDate"`
	Priority      string           `json:"priority" validate:"omitempty,oneof=SCHEDULED URGENT"`
}

// CreateMaintenanceRequest files the client's request; it starts in
// PENDING_APPROVAL and notifies the admins.
func CreateMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)

	var req maintenanceRequestReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	if req.SolarSystemID != nil {
		var system models.SolarSystem
		if err := config.DB.First(&system, "id = ? AND client_id = ?", req.SolarSystemID, clientID).Error; err != nil {
			respondError(w, http.StatusNotFound, "sistema no encontrado")
			return
		}
	}

	var preferred *time.Time
	if req.PreferredDate != nil {
		t := req.PreferredDate.Time()
		if !t.IsZero() {
			preferred = &t
		}
	}

	record, err := workflowService().CreateRequest(scheduling.CreateRequestInput{
		ClientID:      clientID,
		SolarSystemID: req.SolarSystemID,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		PreferredDate: preferred,
		Priority:      req.Priority,
	})
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// GetPortalMaintenances lists the client's own maintenances with history.
func GetPortalMaintenances(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	var records []models.MaintenanceRecord
	err := config.DB.Preload("SolarSystem").Preload("History").
		Where("client_id = ?", clientID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// DeletePortalMaintenance removes one of the client's own maintenances;
// only cancelled records can be deleted.
func DeletePortalMaintenance(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetPortalClientID(r)
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := workflowService().DeleteByClient(id, clientID); err != nil {
		switch {
		case errors.Is(err, scheduling.ErrMaintenanceNotFound):
			respondError(w, http.StatusNotFound, "mantenimiento no encontrado")
		case errors.Is(err, scheduling.ErrNotOwner):
			respondError(w, http.StatusForbidden, "el mantenimiento no pertenece al cliente")
		case errors.Is(err, scheduling.ErrNotCancelled):
			respondError(w, http.StatusConflict, "solo se pueden eliminar mantenimientos cancelados")
		default:
			respondInternal(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// GetPortalAvailability exposes the hourly slot view to the portal.
func GetPortalAvailability(w http.ResponseWriter, r *http.Request) {
	GetHourlyAvailability(w, r)
}
