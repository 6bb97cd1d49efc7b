package routes

import (
	"github.com/gorilla/mux"
	"mundosolar.mx/backend/handlers"
	"mundosolar.mx/backend/middleware"
)

// RegisterGrowattRoutes wires the monitoring cache endpoints. The refresh
// and cleanup endpoints live outside /api/v1 so a cron job can hit them
// with the shared internal token instead of a staff JWT.
func RegisterGrowattRoutes(api *mux.Router, root *mux.Router) {
	api.HandleFunc("/generation/{id}", middleware.RequirePermission("generation", "read", handlers.GetClientGeneration)).Methods("GET")
	api.HandleFunc("/generation", middleware.RequirePermission("generation", "read", handlers.GetBulkGeneration)).Methods("POST")
	api.HandleFunc("/generation/{id}", middleware.RequirePermission("generation", "update", handlers.InvalidateClientGeneration)).Methods("DELETE")

	internal := root.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalTokenMiddleware)
	internal.HandleFunc("/generation/refresh", handlers.RefreshGenerationCache).Methods("POST")
	internal.HandleFunc("/generation/cleanup", handlers.CleanupGenerationCache).Methods("POST")
}
