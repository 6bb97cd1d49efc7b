package routes

import (
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/handlers"
)

// RegisterPortalRoutes wires the client-facing portal API. All routes
// here run behind PortalMiddleware, so handlers only ever see the
// authenticated client's own data.
func RegisterPortalRoutes(portal *mux.Router) {
	portal.HandleFunc("/profile", handlers.GetPortalProfile).Methods("GET")
	portal.HandleFunc("/orders", handlers.GetPortalOrders).Methods("GET")
	portal.HandleFunc("/generation", handlers.GetPortalGeneration).Methods("GET")
	portal.HandleFunc("/maintenances", handlers.GetPortalMaintenances).Methods("GET")
	portal.HandleFunc("/maintenances", handlers.CreateMaintenanceRequest).Methods("POST")
	portal.HandleFunc("/maintenances/{id}", handlers.DeletePortalMaintenance).Methods("DELETE")
	portal.HandleFunc("/availability/hours", handlers.GetPortalAvailability).Methods("GET")
	portal.HandleFunc("/notifications", handlers.GetPortalNotifications).Methods("GET")
	portal.HandleFunc("/notifications/{id}/read", handlers.MarkPortalNotificationRead).Methods("PATCH")
}
