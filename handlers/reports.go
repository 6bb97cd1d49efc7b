package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"mundosolar.mx/backend/config"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/utils"
)

type dashboardSummary struct {
	ActiveClients       int64           `json:"activeClients"`
	InstalledSystems    int64           `json:"installedSystems"`
	OpenOrders          int64           `json:"openOrders"`
	PendingMaintenances int64           `json:"pendingMaintenances"`
	LowStockProducts    int64           `json:"lowStockProducts"`
	MonthRevenue        decimal.Decimal `json:"monthRevenue"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
}

// GetDashboard aggregates the landing-page counters. Reads go through the
// retry helper; a transient failure on one counter should not 500 the whole
// dashboard load.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	var summary dashboardSummary

	err := utils.RetryOnce("dashboard counters", func() error {
		if err := config.DB.Model(&models.Client{}).Where("is_active = ?", true).
			Count(&summary.ActiveClients).Error; err != nil {
			return err
		}
		if err := config.DB.Model(&models.SolarSystem{}).Where("status = ?", "active").
			Count(&summary.InstalledSystems).Error; err != nil {
			return err
		}
		if err := config.DB.Model(&models.Order{}).
			Where("status IN ?", []string{models.OrderStatusQuote, models.OrderStatusConfirmed}).
			Count(&summary.OpenOrders).Error; err != nil {
			return err
		}
		if err := config.DB.Model(&models.MaintenanceRecord{}).
			Where("status IN ?", []models.MaintenanceStatus{models.MaintenancePendingApproval, models.MaintenanceScheduled}).
			Count(&summary.PendingMaintenances).Error; err != nil {
			return err
		}
		if err := config.DB.Model(&models.Product{}).
			Where("is_active = ? AND stock_quantity <= min_stock", true).
			Count(&summary.LowStockProducts).Error; err != nil {
			return err
		}

		monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day()).Truncate(24 * time.Hour)
		var monthRevenue decimal.NullDecimal
		if err := config.DB.Model(&models.Payment{}).
			Where("received_at >= ?", monthStart).
			Select("SUM(amount)").Scan(&monthRevenue).Error; err != nil {
			return err
		}
		summary.MonthRevenue = monthRevenue.Decimal

		var outstanding decimal.NullDecimal
		if err := config.DB.Model(&models.Order{}).
			Where("status IN ?", []string{models.OrderStatusConfirmed, models.OrderStatusCompleted}).
			Select("SUM(balance_due)").Scan(&outstanding).Error; err != nil {
			return err
		}
		summary.OutstandingBalance = outstanding.Decimal
		return nil
	})
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func parsePeriod(r *http.Request) (from, to time.Time) {
	now := time.Now()
	from = now.AddDate(0, -1, 0)
	to = now
	if raw := r.URL.Query().Get("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = t
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = t.AddDate(0, 0, 1) // inclusive end day
		}
	}
	return from, to
}

// GetOrdersReport lists orders in a period plus aggregate totals.
func GetOrdersReport(w http.ResponseWriter, r *http.Request) {
	from, to := parsePeriod(r)

	var orders []models.Order
	err := utils.RetryOnce("orders report", func() error {
		return config.DB.Preload("Client").
			Where("created_at >= ? AND created_at < ?", from, to).
			Order("created_at").Find(&orders).Error
	})
	if err != nil {
		respondInternal(w, err)
		return
	}

	total := decimal.Zero
	paid := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
		paid = paid.Add(o.AmountPaid)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"from":       from.Format("2006-01-02"),
		"to":         to.Format("2006-01-02"),
		"orders":     orders,
		"totalSold":  total,
		"totalPaid":  paid,
		"balanceDue": total.Sub(paid),
	})
}

// GetPaymentsReport lists payments received in a period.
func GetPaymentsReport(w http.ResponseWriter, r *http.Request) {
	from, to := parsePeriod(r)

	var payments []models.Payment
	err := utils.RetryOnce("payments report", func() error {
		return config.DB.Where("received_at >= ? AND received_at < ?", from, to).
			Order("received_at").Find(&payments).Error
	})
	if err != nil {
		respondInternal(w, err)
		return
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"from":     from.Format("2006-01-02"),
		"to":       to.Format("2006-01-02"),
		"payments": payments,
		"total":    total,
	})
}

// GetMaintenanceReport counts maintenances grouped by status in a period.
func GetMaintenanceReport(w http.ResponseWriter, r *http.Request) {
	from, to := parsePeriod(r)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var counts []statusCount
	err := utils.RetryOnce("maintenance report", func() error {
		return config.DB.Model(&models.MaintenanceRecord{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Select("status, COUNT(*) as count").
			Group("status").Scan(&counts).Error
	})
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"from":     from.Format("2006-01-02"),
		"to":       to.Format("2006-01-02"),
		"byStatus": counts,
	})
}
