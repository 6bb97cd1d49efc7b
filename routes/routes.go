package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"mundosolar.mx/backend/handlers"
	"mundosolar.mx/backend/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/portal/login", handlers.PortalLogin).Methods("POST")

	// =====================================================
	// Staff API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/me/password", handlers.ChangePassword).Methods("PUT")

	registerClientRoutes(api)
	registerCatalogRoutes(api)
	registerOrderRoutes(api)
	RegisterMaintenanceRoutes(api)
	RegisterGrowattRoutes(api, r)
	RegisterNotificationRoutes(api)
	RegisterReportRoutes(api)

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	// =====================================================
	// Client Portal Routes (signed portal token)
	// =====================================================
	portal := r.PathPrefix("/portal/api").Subrouter()
	portal.Use(middleware.SecurityMiddleware)
	portal.Use(middleware.PortalMiddleware)
	RegisterPortalRoutes(portal)

	return r
}

func registerClientRoutes(api *mux.Router) {
	api.HandleFunc("/clients", middleware.RequirePermission("client", "read", handlers.GetAllClients)).Methods("GET")
	api.HandleFunc("/clients", middleware.RequirePermission("client", "create", handlers.CreateClient)).Methods("POST")
	api.HandleFunc("/clients/{id}", middleware.RequirePermission("client", "read", handlers.GetClient)).Methods("GET")
	api.HandleFunc("/clients/{id}", middleware.RequirePermission("client", "update", handlers.UpdateClient)).Methods("PUT")
	api.HandleFunc("/clients/{id}", middleware.RequirePermission("client", "delete", handlers.DeleteClient)).Methods("DELETE")

	api.HandleFunc("/systems", middleware.RequirePermission("system", "read", handlers.GetAllSolarSystems)).Methods("GET")
	api.HandleFunc("/systems", middleware.RequirePermission("system", "create", handlers.CreateSolarSystem)).Methods("POST")
	api.HandleFunc("/systems/{id}", middleware.RequirePermission("system", "read", handlers.GetSolarSystem)).Methods("GET")
	api.HandleFunc("/systems/{id}", middleware.RequirePermission("system", "update", handlers.UpdateSolarSystem)).Methods("PUT")
	api.HandleFunc("/systems/{id}", middleware.RequirePermission("system", "delete", handlers.DeleteSolarSystem)).Methods("DELETE")
}

func registerCatalogRoutes(api *mux.Router) {
	api.HandleFunc("/products", middleware.RequirePermission("product", "read", handlers.GetAllProducts)).Methods("GET")
	api.HandleFunc("/products", middleware.RequirePermission("product", "create", handlers.CreateProduct)).Methods("POST")
	api.HandleFunc("/products/{id}", middleware.RequirePermission("product", "read", handlers.GetProduct)).Methods("GET")
	api.HandleFunc("/products/{id}", middleware.RequirePermission("product", "update", handlers.UpdateProduct)).Methods("PUT")
	api.HandleFunc("/products/{id}", middleware.RequirePermission("product", "delete", handlers.DeleteProduct)).Methods("DELETE")

	api.HandleFunc("/products/{id}/movements", middleware.RequirePermission("inventory", "read", handlers.GetInventoryMovements)).Methods("GET")
	api.HandleFunc("/inventory/movements", middleware.RequirePermission("inventory", "create", handlers.CreateInventoryMovement)).Methods("POST")
	api.HandleFunc("/inventory/low-stock", middleware.RequirePermission("inventory", "read", handlers.GetLowStockProducts)).Methods("GET")
}

func registerOrderRoutes(api *mux.Router) {
	api.HandleFunc("/orders", middleware.RequirePermission("order", "read", handlers.GetAllOrders)).Methods("GET")
	api.HandleFunc("/orders", middleware.RequirePermission("order", "create", handlers.CreateOrder)).Methods("POST")
	api.HandleFunc("/orders/{id}", middleware.RequirePermission("order", "read", handlers.GetOrder)).Methods("GET")
	api.HandleFunc("/orders/{id}/status", middleware.RequirePermission("order", "update", handlers.UpdateOrderStatus)).Methods("PATCH")
	api.HandleFunc("/orders/{id}", middleware.RequirePermission("order", "delete", handlers.DeleteOrder)).Methods("DELETE")

	api.HandleFunc("/orders/{id}/payments", middleware.RequirePermission("payment", "read", handlers.GetOrderPayments)).Methods("GET")
	api.HandleFunc("/orders/{id}/payments", middleware.RequirePermission("payment", "create", handlers.AddPayment)).Methods("POST")
	api.HandleFunc("/orders/{id}/payments/{paymentId}", middleware.RequirePermission("payment", "delete", handlers.DeletePayment)).Methods("DELETE")

	api.HandleFunc("/invoices", middleware.RequirePermission("invoice", "read", handlers.GetAllInvoices)).Methods("GET")
	api.HandleFunc("/invoices", middleware.RequirePermission("invoice", "create", handlers.CreateInvoice)).Methods("POST")
	api.HandleFunc("/invoices/{id}", middleware.RequirePermission("invoice", "read", handlers.GetInvoice)).Methods("GET")
	api.HandleFunc("/invoices/{id}/stamp", middleware.RequirePermission("invoice", "update", handlers.StampInvoice)).Methods("POST")
	api.HandleFunc("/invoices/{id}/cancel", middleware.RequirePermission("invoice", "update", handlers.CancelInvoice)).Methods("POST")
}

func registerAdminRoutes(admin *mux.Router) {
	admin.HandleFunc("/users", middleware.RequirePermission("user", "read", handlers.GetAllUsers)).Methods("GET")
	admin.HandleFunc("/users/{id}", middleware.RequirePermission("user", "update", handlers.UpdateUser)).Methods("PUT")
	admin.HandleFunc("/technicians", middleware.RequirePermission("user", "read", handlers.GetAllTechnicians)).Methods("GET")
	admin.HandleFunc("/technicians", middleware.RequirePermission("user", "create", handlers.CreateTechnician)).Methods("POST")
	admin.HandleFunc("/technicians/{id}", middleware.RequirePermission("user", "update", handlers.UpdateTechnician)).Methods("PUT")
}
