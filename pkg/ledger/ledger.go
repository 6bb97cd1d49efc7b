// Package ledger owns the order payment ledger: every payment write
// recomputes the order's aggregate fields inside one database transaction so
// order totals can never drift from the payment rows.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"mundosolar.mx/backend/models"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidAmount    = errors.New("payment amount must be greater than zero")
	ErrOrderCancelled   = errors.New("cannot register payments on a cancelled order")
	ErrPaymentMismatch  = errors.New("payment does not belong to order")
)

// Service performs ledger mutations against the database.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

// Summary is the recomputed aggregate view of an order after a mutation.
type Summary struct {
	OrderID       uuid.UUID       `json:"orderId"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	PaymentStatus string          `json:"paymentStatus"`
}

// StatusFor returns the three-way payment status: PAID once amountPaid covers
// the total, PENDING while nothing has been received, otherwise PARTIAL.
func StatusFor(total, amountPaid decimal.Decimal) string {
	if amountPaid.GreaterThanOrEqual(total) && total.GreaterThan(decimal.Zero) {
		return models.PaymentStatusPaid
	}
	if amountPaid.IsZero() {
		return models.PaymentStatusPending
	}
	return models.PaymentStatusPartial
}

// ApplyPayment returns the new aggregates after adding amount.
func ApplyPayment(total, currentPaid, amount decimal.Decimal) (amountPaid, balanceDue decimal.Decimal, status string) {
	amountPaid = currentPaid.Add(amount)
	balanceDue = total.Sub(amountPaid)
	return amountPaid, balanceDue, StatusFor(total, amountPaid)
}

// RemovePayment returns the new aggregates after deleting a payment of
// amount. The recomputed amountPaid is floored at zero to guard against
// over-deletion.
func RemovePayment(total, currentPaid, amount decimal.Decimal) (amountPaid, balanceDue decimal.Decimal, status string) {
	amountPaid = currentPaid.Sub(amount)
	if amountPaid.IsNegative() {
		amountPaid = decimal.Zero
	}
	balanceDue = total.Sub(amountPaid)
	return amountPaid, balanceDue, StatusFor(total, amountPaid)
}

// AddPaymentInput carries the fields of a new payment.
type AddPaymentInput struct {
	Amount     decimal.Decimal
	Method     string
	Reference  string
	Notes      string
	ReceivedAt time.Time
	RecordedBy uuid.UUID
}

// AddPayment inserts the payment row and recomputes the order aggregates as a
// single atomic unit. The order row is locked for the duration of the
// transaction so concurrent payments on the same order serialize.
func (s *Service) AddPayment(orderID uuid.UUID, in AddPaymentInput) (*models.Payment, *Summary, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, nil, ErrInvalidAmount
	}
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = time.Now()
	}

	var payment models.Payment
	var summary Summary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status == models.OrderStatusCancelled {
			return ErrOrderCancelled
		}

		payment = models.Payment{
			OrderID:    orderID,
			Amount:     in.Amount,
			Method:     in.Method,
			Reference:  in.Reference,
			Notes:      in.Notes,
			ReceivedAt: in.ReceivedAt,
			RecordedBy: in.RecordedBy,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		amountPaid, balanceDue, status := ApplyPayment(order.Total, order.AmountPaid, in.Amount)
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"amount_paid":    amountPaid,
			"balance_due":    balanceDue,
			"payment_status": status,
		}).Error; err != nil {
			return fmt.Errorf("update order aggregates: %w", err)
		}

		summary = Summary{
			OrderID:       order.ID,
			Total:         order.Total,
			AmountPaid:    amountPaid,
			BalanceDue:    balanceDue,
			PaymentStatus: status,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("orderId", orderID.String()).
		Str("amount", in.Amount.String()).
		Str("status", summary.PaymentStatus).
		Msg("payment registered")

	return &payment, &summary, nil
}

// DeletePayment removes the payment row and recomputes the order aggregates
// symmetrically, flooring amountPaid at zero.
func (s *Service) DeletePayment(orderID, paymentID uuid.UUID) (*Summary, error) {
	var summary Summary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		var payment models.Payment
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.OrderID != orderID {
			return ErrPaymentMismatch
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}

		amountPaid, balanceDue, status := RemovePayment(order.Total, order.AmountPaid, payment.Amount)
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"amount_paid":    amountPaid,
			"balance_due":    balanceDue,
			"payment_status": status,
		}).Error; err != nil {
			return fmt.Errorf("update order aggregates: %w", err)
		}

		summary = Summary{
			OrderID:       order.ID,
			Total:         order.Total,
			AmountPaid:    amountPaid,
			BalanceDue:    balanceDue,
			PaymentStatus: status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("orderId", orderID.String()).
		Str("paymentId", paymentID.String()).
		Str("status", summary.PaymentStatus).
		Msg("payment deleted")

	return &summary, nil
}
