package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
)

type solarSystemReq struct {
	ClientID         uuid.UUID  `json:"clientId" validate:"required"`
	Name             string     `json:"name" validate:"required,max=150"`
	PanelCount       int        `json:"panelCount" validate:"required,gt=0"`
	CapacityKW       float64    `json:"capacityKw" validate:"required,gt=0"`
	InverterSerial   string     `json:"inverterSerial"`
	GrowattPlantID   string     `json:"growattPlantId"`
	InstallationDate *time.Time `json:"installationDate"`
	Status           string     `json:"status" validate:"omitempty,oneof=active inactive decommissioned"`
}

func GetAllSolarSystems(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.SolarSystem{})
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var total int64
	query.Count(&total)

	var systems []models.SolarSystem
	if err := query.Preload("Client").Limit(limit).Offset(offset).Order("created_at DESC").Find(&systems).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: systems, Page: page, Limit: limit, Total: total})
}

func GetSolarSystem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var system models.SolarSystem
	if err := config.DB.Preload("Client").First(&system, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "sistema no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, system)
}

func CreateSolarSystem(w http.ResponseWriter, r *http.Request) {
	var req solarSystemReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", req.ClientID).Error; err != nil {
		respondError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}

	system := models.SolarSystem{
		ClientID:         req.ClientID,
		Name:             req.Name,
		PanelCount:       req.PanelCount,
		CapacityKW:       req.CapacityKW,
		InverterSerial:   req.InverterSerial,
		GrowattPlantID:   req.GrowattPlantID,
		InstallationDate: req.InstallationDate,
		Status:           req.Status,
	}
	if system.Status == "" {
		system.Status = "active"
	}

	if err := config.DB.Create(&system).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, system)
}

func UpdateSolarSystem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var system models.SolarSystem
	if err := config.DB.First(&system, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "sistema no encontrado")
		return
	}

	var req solarSystemReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	system.Name = req.Name
	system.PanelCount = req.PanelCount
	system.CapacityKW = req.CapacityKW
	system.InverterSerial = req.InverterSerial
	system.GrowattPlantID = req.GrowattPlantID
	system.InstallationDate = req.InstallationDate
	if req.Status != "" {
		system.Status = req.Status
	}

	if err := config.DB.Save(&system).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, system)
}

func DeleteSolarSystem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var system models.SolarSystem
	if err := config.DB.First(&system, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "sistema no encontrado")
		return
	}
	if err := config.DB.Delete(&system).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
