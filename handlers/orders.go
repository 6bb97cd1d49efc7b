package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
)

// IVA is the Mexican value-added tax applied to order subtotals.
var ivaRate = decimal.NewFromFloat(0.16)

type orderItemReq struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type orderReq struct {
	ClientID uuid.UUID      `json:"clientId" validate:"required"`
	Items    []orderItemReq `json:"items" validate:"required,min=1,dive"`
	Notes    string         `json:"notes" validate:"omitempty,max=500"`
	DueDate  *time.Time     `json:"dueDate"`
}

func nextOrderFolio(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Model(&models.Order{}).Unscoped().Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%06d", count+1), nil
}

func GetAllOrders(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.Order{})
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := r.URL.Query().Get("paymentStatus"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("Client").Limit(limit).Offset(offset).Order("created_at DESC").Find(&orders).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: orders, Page: page, Limit: limit, Total: total})
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var order models.Order
	err := config.DB.Preload("Client").Preload("Items").Preload("Items.Product").
		Preload("Payments").First(&order, "id = ?", id).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "pedido no encontrado")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// CreateOrder builds the order with line items priced from the current
// product catalog, applying IVA over the subtotal.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	claims := middleware.GetClaims(r)
	creatorID, _ := uuid.Parse(claims.UserID)

	var order models.Order
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, "id = ?", req.ClientID).Error; err != nil {
			return fmt.Errorf("cliente no encontrado")
		}

		folio, err := nextOrderFolio(tx)
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", it.ProductID).Error; err != nil {
				return fmt.Errorf("producto %s no encontrado", it.ProductID)
			}
			lineTotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			items = append(items, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: product.UnitPrice,
				LineTotal: lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		tax := subtotal.Mul(ivaRate).Round(2)
		total := subtotal.Add(tax)

		order = models.Order{
			Folio:         folio,
			ClientID:      req.ClientID,
			Status:        models.OrderStatusQuote,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			AmountPaid:    decimal.Zero,
			BalanceDue:    total,
			PaymentStatus: models.PaymentStatusPending,
			Notes:         req.Notes,
			CreatedBy:     creatorID,
			DueDate:       req.DueDate,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
	if txErr != nil {
		respondError(w, http.StatusBadRequest, txErr.Error())
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

type orderStatusReq struct {
	Status string `json:"status" validate:"required,oneof=QUOTE CONFIRMED COMPLETED CANCELLED"`
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req orderStatusReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "pedido no encontrado")
		return
	}

	order.Status = req.Status
	if err := config.DB.Save(&order).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder refuses when payments exist; delete those first through the
// ledger so totals stay consistent.
func DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var order models.Order
	if err := config.DB.First(&order, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "pedido no encontrado")
		return
	}

	var paymentCount int64
	config.DB.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&paymentCount)
	if paymentCount > 0 {
		respondError(w, http.StatusConflict, "el pedido tiene pagos registrados")
		return
	}

	if err := config.DB.Delete(&order).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
