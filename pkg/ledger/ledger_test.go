package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"mundosolar.mx/backend/models"
)

func d(v string) decimal.Decimal {
	dec, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return dec
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		paid     string
		expected string
	}{
		{"nothing paid", "10000", "0", models.PaymentStatusPending},
		{"partially paid", "10000", "4000", models.PaymentStatusPartial},
		{"fully paid", "10000", "10000", models.PaymentStatusPaid},
		{"overpaid still PAID", "10000", "12000", models.PaymentStatusPaid},
		{"one centavo short", "10000", "9999.99", models.PaymentStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(d(tt.total), d(tt.paid)); got != tt.expected {
				t.Errorf("StatusFor(%s, %s) = %s, expected %s", tt.total, tt.paid, got, tt.expected)
			}
		})
	}
}

// Mirrors the canonical add/add/delete sequence: total 10000, pay 4000, pay
// 6000, then delete the 6000 payment.
func TestPaymentSequence(t *testing.T) {
	total := d("10000")

	paid, due, status := ApplyPayment(total, decimal.Zero, d("4000"))
	if !paid.Equal(d("4000")) || !due.Equal(d("6000")) || status != models.PaymentStatusPartial {
		t.Fatalf("after first payment: paid=%s due=%s status=%s", paid, due, status)
	}

	paid, due, status = ApplyPayment(total, paid, d("6000"))
	if !paid.Equal(d("10000")) || !due.Equal(d("0")) || status != models.PaymentStatusPaid {
		t.Fatalf("after second payment: paid=%s due=%s status=%s", paid, due, status)
	}

	paid, due, status = RemovePayment(total, paid, d("6000"))
	if !paid.Equal(d("4000")) || !due.Equal(d("6000")) || status != models.PaymentStatusPartial {
		t.Fatalf("after deleting second payment: paid=%s due=%s status=%s", paid, due, status)
	}
}

func TestRemovePaymentFloorsAtZero(t *testing.T) {
	total := d("10000")

	paid, due, status := RemovePayment(total, d("3000"), d("5000"))
	if !paid.Equal(decimal.Zero) {
		t.Errorf("amountPaid = %s, expected 0", paid)
	}
	if !due.Equal(total) {
		t.Errorf("balanceDue = %s, expected %s", due, total)
	}
	if status != models.PaymentStatusPending {
		t.Errorf("status = %s, expected PENDING", status)
	}
}

func TestLedgerInvariantHolds(t *testing.T) {
	total := d("25000")
	paid := decimal.Zero

	ops := []struct {
		remove bool
		amount string
	}{
		{false, "5000"},
		{false, "7500.50"},
		{true, "5000"},
		{false, "22500"},
		{true, "7500.50"},
		{true, "100000"}, // over-delete, must floor
	}

	for i, op := range ops {
		var due decimal.Decimal
		if op.remove {
			paid, due, _ = RemovePayment(total, paid, d(op.amount))
		} else {
			paid, due, _ = ApplyPayment(total, paid, d(op.amount))
		}
		if paid.IsNegative() {
			t.Fatalf("op %d: amountPaid went negative: %s", i, paid)
		}
		if !due.Equal(total.Sub(paid)) {
			t.Fatalf("op %d: balanceDue %s != total-amountPaid %s", i, due, total.Sub(paid))
		}
	}
}
