package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Standalone check for the order ledger: every order's amount_paid must
// equal the sum of its payments and balance_due must equal
// total - amount_paid. Run with: go run ./scripts/verify_ledger
type ledgerRow struct {
	ID            string  `gorm:"column:id"`
	Folio         string  `gorm:"column:folio"`
	Total         float64 `gorm:"column:total"`
	AmountPaid    float64 `gorm:"column:amount_paid"`
	BalanceDue    float64 `gorm:"column:balance_due"`
	PaymentsTotal float64 `gorm:"column:payments_total"`
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("========================================")
	fmt.Println("VERIFICATION: Order Payment Ledger")
	fmt.Println("========================================")

	var rows []ledgerRow
	query := `
		SELECT o.id, o.folio, o.total, o.amount_paid, o.balance_due,
		       COALESCE(SUM(p.amount), 0) AS payments_total
		FROM orders o
		LEFT JOIN payments p ON p.order_id = o.id
		WHERE o.deleted_at IS NULL
		GROUP BY o.id, o.folio, o.total, o.amount_paid, o.balance_due
	`
	if err := db.Raw(query).Scan(&rows).Error; err != nil {
		log.Fatal("Query failed:", err)
	}

	bad := 0
	for _, r := range rows {
		driftPaid := r.AmountPaid - r.PaymentsTotal
		driftDue := r.BalanceDue - (r.Total - r.AmountPaid)
		if driftPaid > 0.005 || driftPaid < -0.005 || driftDue > 0.005 || driftDue < -0.005 {
			bad++
			fmt.Printf("MISMATCH %s (%s): total=%.2f paid=%.2f due=%.2f payments=%.2f\n",
				r.Folio, r.ID, r.Total, r.AmountPaid, r.BalanceDue, r.PaymentsTotal)
		}
	}

	fmt.Printf("\nChecked %d orders, %d mismatches\n", len(rows), bad)
	if bad > 0 {
		os.Exit(1)
	}
	fmt.Println("Ledger is consistent.")
}
