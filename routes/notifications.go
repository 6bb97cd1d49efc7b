package routes

import (
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/handlers"
)

// RegisterNotificationRoutes wires the staff notification inbox. No
// permission gate here: every authenticated user reads their own rows.
func RegisterNotificationRoutes(api *mux.Router) {
	api.HandleFunc("/notifications", handlers.GetMyNotifications).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods("PATCH")
	api.HandleFunc("/notifications/read-all", handlers.MarkAllNotificationsRead).Methods("PATCH")
}
