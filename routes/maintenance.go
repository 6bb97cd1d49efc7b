package routes

import (
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/handlers"
	"mundosolar.mx/backend/middleware"
)

// RegisterMaintenanceRoutes wires the maintenance workflow and the
// availability queries used when scheduling visits.
func RegisterMaintenanceRoutes(api *mux.Router) {
	api.HandleFunc("/maintenances", middleware.RequirePermission("maintenance", "read", handlers.GetAllMaintenances)).Methods("GET")
	api.HandleFunc("/maintenances", middleware.RequirePermission("maintenance", "create", handlers.CreateScheduledMaintenance)).Methods("POST")
	api.HandleFunc("/maintenances/{id}", middleware.RequirePermission("maintenance", "read", handlers.GetMaintenance)).Methods("GET")
	api.HandleFunc("/maintenances/{id}/status", middleware.RequirePermission("maintenance", "update", handlers.TransitionMaintenanceStatus)).Methods("PATCH")
	api.HandleFunc("/maintenances/{id}/history", middleware.RequirePermission("maintenance", "read", handlers.GetMaintenanceHistory)).Methods("GET")

	api.HandleFunc("/availability/hours", middleware.RequirePermission("maintenance", "read", handlers.GetHourlyAvailability)).Methods("GET")
	api.HandleFunc("/availability/technicians/{id}", middleware.RequirePermission("maintenance", "read", handlers.GetTechnicianAvailability)).Methods("GET")
	api.HandleFunc("/availability/suggest", middleware.RequirePermission("maintenance", "read", handlers.SuggestTechnicians)).Methods("GET")
}
