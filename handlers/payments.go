package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/middleware"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/pkg/ledger"
	"mundosolar.mx/backend/pkg/notify"
)

func ledgerService() *ledger.Service {
	return ledger.NewService(config.DB, config.Logger)
}

type addPaymentReq struct {
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"required,oneof=cash transfer card check"`
	Reference  string          `json:"reference" validate:"omitempty,max=100"`
	Notes      string          `json:"notes" validate:"omitempty,max=255"`
	ReceivedAt *time.Time      `json:"receivedAt"`
}

// AddPayment registers a payment against an order; the ledger service keeps
// the order aggregates consistent in one transaction.
func AddPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de pedido inválido")
		return
	}

	var req addPaymentReq
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "datos inválidos: "+err.Error())
		return
	}

	claims := middleware.GetClaims(r)
	actorID, _ := uuid.Parse(claims.UserID)

	in := ledger.AddPaymentInput{
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
		RecordedBy: actorID,
	}
	if req.ReceivedAt != nil {
		in.ReceivedAt = *req.ReceivedAt
	}

	payment, summary, err := ledgerService().AddPayment(orderID, in)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "pedido no encontrado")
		case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrOrderCancelled):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondInternal(w, err)
		}
		return
	}

	// Best-effort heads-up to the client; the payment is already committed.
	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderID).Error; err == nil {
		notify.NewService(config.DB, config.Logger).NotifyClient(order.ClientID,
			models.NotificationPaymentReceived,
			"Pago recibido",
			"Registramos un pago a tu pedido "+order.Folio+".",
			map[string]interface{}{"orderId": orderID.String(), "paymentId": payment.ID.String()})
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"payment": payment,
		"order":   summary,
	})
}

func GetOrderPayments(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	var payments []models.Payment
	if err := config.DB.Where("order_id = ?", orderID).Order("received_at DESC").Find(&payments).Error; err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// DeletePayment removes a payment and recomputes the order ledger.
func DeletePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de pedido inválido")
		return
	}
	paymentID, err := uuid.Parse(vars["paymentId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de pago inválido")
		return
	}

	summary, err := ledgerService().DeletePayment(orderID, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrOrderNotFound), errors.Is(err, ledger.ErrPaymentNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ledger.ErrPaymentMismatch):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondInternal(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"order": summary})
}
