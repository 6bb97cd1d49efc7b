package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
)

type movementReq struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity  int       `json:"quantity" validate:"required"`
	Reason    string    `json:"reason" validate:"omitempty,max=255"`
}

// CreateInventoryMovement inserts the movement and updates the product stock
// in one transaction. OUT movements cannot drive stock negative.
func CreateInventoryMovement(w http.ResponseWriter, r *http.Request) {
	var req movementReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}
	claims := middleware.GetClaims(r)
	actorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var movement models.InventoryMovement
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", req.ProductID).Error; err != nil {
			return err
		}

		newStock := product.StockQuantity
		switch req.Type {
		case models.MovementIn:
			if req.Quantity <= 0 {
				return errors.New("la cantidad de entrada debe ser positiva")
			}
			newStock += req.Quantity
		case models.MovementOut:
			if req.Quantity <= 0 {
				return errors.New("la cantidad de salida debe ser positiva")
			}
			newStock -= req.Quantity
			if newStock < 0 {
				return errors.New("stock insuficiente")
			}
		case models.MovementAdjust:
			if req.Quantity < 0 {
				return errors.New("el ajuste no puede ser negativo")
			}
			newStock = req.Quantity
		}

		movement = models.InventoryMovement{
			ProductID:  req.ProductID,
			Type:       req.Type,
			Quantity:   req.Quantity,
			Reason:     req.Reason,
			RecordedBy: actorID,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
		return tx.Model(&product).Update("stock_quantity", newStock).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "producto no encontrado")
			return
		}
		respondError(w, http.StatusBadRequest, txErr.Error())
		return
	}
	respondJSON(w, http.StatusCreated, movement)
}

func GetInventoryMovements(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)
	productID := mux.Vars(r)["id"]

	query := config.DB.Model(&models.InventoryMovement{}).Where("product_id = ?", productID)

	var total int64
	query.Count(&total)

	var movements []models.InventoryMovement
	if err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&movements).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: movements, Page: page, Limit: limit, Total: total})
}

// GetLowStockProducts lists active products at or below their minimum stock.
func GetLowStockProducts(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	err := config.DB.
		Where("is_active = ? AND stock_quantity <= min_stock", true).
		Order("stock_quantity").
		Find(&products).Error
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}
