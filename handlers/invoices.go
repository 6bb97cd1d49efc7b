package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/pkg/notify"
)

type invoiceReq struct {
	OrderID      uuid.UUID `json:"orderId" validate:"required"`
	Series       string    `json:"series" validate:"required,max=10"`
	ReceiverRFC  string    `json:"receiverRfc" validate:"required,min=12,max=13"`
	ReceiverName string    `json:"receiverName" validate:"required,max=150"`
	CFDIUse      string    `json:"cfdiUse" validate:"required,max=5"`
	PaymentForm  string    `json:"paymentForm" validate:"required,max=3"`
	PaymentMeth  string    `json:"paymentMethod" validate:"required,oneof=PUE PPD"`
}

func nextInvoiceFolio(tx *gorm.DB, series string) (int, error) {
	var maxFolio int
	err := tx.Model(&models.Invoice{}).Unscoped().
		Where("series = ?", series).
		Select("COALESCE(MAX(folio), 0)").Scan(&maxFolio).Error
	return maxFolio + 1, err
}

func GetAllInvoices(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := parsePagination(r)

	query := config.DB.Model(&models.Invoice{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if orderID := r.URL.Query().Get("orderId"); orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}

	var total int64
	query.Count(&total)

	var invoices []models.Invoice
	if err := query.Preload("Order").Limit(limit).Offset(offset).Order("created_at DESC").Find(&invoices).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: invoices, Page: page, Limit: limit, Total: total})
}

func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var invoice models.Invoice
	if err := config.DB.Preload("Order").Preload("Order.Client").First(&invoice, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "factura no encontrada")
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}

// CreateInvoice drafts the CFDI for an order, mirroring its totals. Stamping
// happens later against the PAC.
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	claims := middleware.GetClaims(r)
	creatorID, _ := uuid.Parse(claims.UserID)

	var invoice models.Invoice
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", req.OrderID).Error; err != nil {
			return fmt.Errorf("pedido no encontrado")
		}
		if order.Status == models.OrderStatusCancelled {
			return fmt.Errorf("no se puede facturar un pedido cancelado")
		}

		folio, err := nextInvoiceFolio(tx, req.Series)
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			OrderID:      req.OrderID,
			Series:       strings.ToUpper(req.Series),
			Folio:        folio,
			Status:       models.InvoiceStatusDraft,
			ReceiverRFC:  strings.ToUpper(req.ReceiverRFC),
			ReceiverName: req.ReceiverName,
			CFDIUse:      strings.ToUpper(req.CFDIUse),
			PaymentForm:  req.PaymentForm,
			PaymentMeth:  req.PaymentMeth,
			Subtotal:     order.Subtotal,
			Tax:          order.Tax,
			Total:        order.Total,
			CreatedBy:    creatorID,
		}
		return tx.Create(&invoice).Error
	})
	if txErr != nil {
		respondError(w, http.StatusBadRequest, txErr.Error())
		return
	}
	respondJSON(w, http.StatusCreated, invoice)
}

type stampInvoiceReq struct {
	FiscalUUID string `json:"fiscalUuid" validate:"required,uuid"`
}

// StampInvoice records the PAC stamping outcome on a draft.
func StampInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req stampInvoiceReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Order").First(&invoice, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "factura no encontrada")
		return
	}
	if invoice.Status != models.InvoiceStatusDraft {
		respondError(w, http.StatusConflict, "solo los borradores pueden timbrarse")
		return
	}

	now := time.Now()
	invoice.Status = models.InvoiceStatusStamped
	invoice.FiscalUUID = &req.FiscalUUID
	invoice.StampedAt = &now
	if err := config.DB.Save(&invoice).Error; err != nil {
		respondInternal(w, err)
		return
	}

	if invoice.Order != nil {
		notify.NewService(config.DB, config.Logger).NotifyClient(invoice.Order.ClientID,
			models.NotificationInvoiceStamped,
			"Factura timbrada",
			fmt.Sprintf("Tu factura %s-%d fue timbrada.", invoice.Series, invoice.Folio),
			map[string]interface{}{"invoiceId": invoice.ID.String(), "orderId": invoice.OrderID.String()})
	}

	respondJSON(w, http.StatusOK, invoice)
}

// CancelInvoice cancels a draft or stamped invoice.
func CancelInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "factura no encontrada")
		return
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		respondError(w, http.StatusConflict, "la factura ya está cancelada")
		return
	}

	now := time.Now()
	invoice.Status = models.InvoiceStatusCancelled
	invoice.CancelledAt = &now
	if err := config.DB.Save(&invoice).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}
