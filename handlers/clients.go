package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/utils"
)

type clientReq struct {
	Name         string  `json:"name" validate:"required,min=2,max=150"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"omitempty,max=15"`
	RFC          string  `json:"rfc" validate:"omitempty,min=12,max=13"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode" validate:"omitempty,len=5"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PortalAccess *bool   `json:"portalAccess"`
	Password     string  `json:"password" validate:"omitempty,min=8"`
}

func GetAllClients(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	search := r.URL.Query().Get("search")

	query := config.DB.Model(&models.Client{}).Where("is_active = ?", true)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(rfc) LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var clients []models.Client
	if err := query.Limit(limit).Offset(offset).Order("name").Find(&clients).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: clients, Page: page, Limit: limit, Total: total})
}

func GetClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.Preload("SolarSystems").First(&client, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}
	site := utils.Coordinate{Lat: req.Latitude, Lng: req.Longitude}
	if utils.ValidCoordinate(site) && !utils.InServiceArea(site) {
		respondError(w, http.StatusBadRequest, "la ubicación está fuera del área de servicio")
		return
	}

	client := models.Client{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		RFC:        strings.ToUpper(req.RFC),
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	if req.PortalAccess != nil {
		client.PortalAccess = *req.PortalAccess
	} else {
		client.PortalAccess = true
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondInternal(w, err)
			return
		}
		client.PasswordHash = string(hash)
	}

	if err := config.DB.Create(&client).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "el correo ya está registrado")
		} else {
			respondInternal(w, err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}

	var req clientReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}
	site := utils.Coordinate{Lat: req.Latitude, Lng: req.Longitude}
	if utils.ValidCoordinate(site) && !utils.InServiceArea(site) {
		respondError(w, http.StatusBadRequest, "la ubicación está fuera del área de servicio")
		return
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.RFC = strings.ToUpper(req.RFC)
	client.Address = req.Address
	client.City = req.City
	client.State = req.State
	client.PostalCode = req.PostalCode
	client.Latitude = req.Latitude
	client.Longitude = req.Longitude
	if req.PortalAccess != nil {
		client.PortalAccess = *req.PortalAccess
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondInternal(w, err)
			return
		}
		client.PasswordHash = string(hash)
	}

	if err := config.DB.Save(&client).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// DeleteClient soft-deletes; history stays reachable for reports.
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "cliente no encontrado")
		return
	}
	if err := config.DB.Delete(&client).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
