package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
)

type productReq struct {
	SKU         string          `json:"sku" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=150"`
	Category    string          `json:"category" validate:"omitempty,max=50"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	MinStock    int             `json:"minStock" validate:"gte=0"`
}

func GetAllProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)
	if search := r.URL.Query().Get("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Limit(limit).Offset(offset).Order("name").Find(&products).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: products, Page: page, Limit: limit, Total: total})
}

func GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "producto no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}
	if req.UnitPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "el precio no puede ser negativo")
		return
	}

	product := models.Product{
		SKU:         strings.ToUpper(req.SKU),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		MinStock:    req.MinStock,
		IsActive:    true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "el SKU ya existe")
		} else {
			respondInternal(w, err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "producto no encontrado")
		return
	}

	var req productReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}
	if req.UnitPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "el precio no puede ser negativo")
		return
	}

	product.SKU = strings.ToUpper(req.SKU)
	product.Name = req.Name
	product.Category = req.Category
	product.Description = req.Description
	product.UnitPrice = req.UnitPrice
	product.MinStock = req.MinStock

	if err := config.DB.Save(&product).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var product models.Product
	if err := config.DB.First(&product, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "producto no encontrado")
		return
	}
	if err := config.DB.Delete(&product).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
