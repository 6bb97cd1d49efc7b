package routes

import (
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/handlers"
	"mundosolar.mx/backend/middleware"
)

func RegisterReportRoutes(api *mux.Router) {
	api.HandleFunc("/dashboard", middleware.RequirePermission("report", "read", handlers.GetDashboard)).Methods("GET")
	api.HandleFunc("/reports/orders", middleware.RequirePermission("report", "read", handlers.GetOrdersReport)).Methods("GET")
	api.HandleFunc("/reports/payments", middleware.RequirePermission("report", "read", handlers.GetPaymentsReport)).Methods("GET")
	api.HandleFunc("/reports/maintenances", middleware.RequirePermission("report", "read", handlers.GetMaintenanceReport)).Methods("GET")
	api.HandleFunc("/reports/orders/export", middleware.RequirePermission("report", "read", handlers.ExportOrdersToExcel)).Methods("GET")
	api.HandleFunc("/reports/inventory/export", middleware.RequirePermission("report", "read", handlers.ExportInventoryToExcel)).Methods("GET")
}
