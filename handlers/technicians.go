package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
)

type technicianReq struct {
	UserID    uuid.UUID `json:"userId" validate:"required"`
	Specialty string    `json:"specialty" validate:"omitempty,max=100"`
	HomeLat   float64   `json:"homeLat"`
	HomeLng   float64   `json:"homeLng"`
	IsActive  *bool     `json:"isActive"`
}

func GetAllTechnicians(w http.ResponseWriter, r *http.Request) {
	var technicians []models.Technician
	query := config.DB.Preload("User")
	if r.URL.Query().Get("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&technicians).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, technicians)
}

func CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var req technicianReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		respondError(w, http.StatusNotFound, "usuario no encontrado")
		return
	}
	if user.Role != models.RoleTechnician {
		respondError(w, http.StatusBadRequest, "el usuario no tiene rol de técnico")
		return
	}

	tech := models.Technician{
		UserID:    req.UserID,
		Specialty: req.Specialty,
		HomeLat:   req.HomeLat,
		HomeLng:   req.HomeLng,
		IsActive:  true,
	}
	if err := config.DB.Create(&tech).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tech)
}

func UpdateTechnician(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var tech models.Technician
	if err := config.DB.First(&tech, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "técnico no encontrado")
		return
	}

	var req technicianReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	tech.Specialty = req.Specialty
	tech.HomeLat = req.HomeLat
	tech.HomeLng = req.HomeLng
	if req.IsActive != nil {
		tech.IsActive = *req.IsActive
	}
	if err := config.DB.Save(&tech).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tech)
}
