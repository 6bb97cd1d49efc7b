package routes

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// Handlers that load an entity read mux.Vars(r)["id"], so every route with
// a path parameter must declare it as {id}.
func TestResourceRoutesExposeIDVariable(t *testing.T) {
	router, ok := RegisterRoutes().(*mux.Router)
	if !ok {
		t.Fatal("RegisterRoutes did not return a *mux.Router")
	}

	const someID = "0b38d7a1-6f7e-4a59-9c72-5ad1e53c9f10"

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get client", "GET", "/api/v1/clients/" + someID},
		{"get order", "GET", "/api/v1/orders/" + someID},
		{"get client generation", "GET", "/api/v1/generation/" + someID},
		{"invalidate client generation", "DELETE", "/api/v1/generation/" + someID},
		{"technician availability", "GET", "/api/v1/availability/technicians/" + someID},
		{"portal maintenance delete", "DELETE", "/portal/api/maintenances/" + someID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			var match mux.RouteMatch
			if !router.Match(req, &match) {
				t.Fatalf("%s %s did not match any route", tt.method, tt.path)
			}
			if got := match.Vars["id"]; got != someID {
				t.Errorf("%s %s: Vars[\"id\"] = %q, expected %q (vars: %v)",
					tt.method, tt.path, got, someID, match.Vars)
			}
		})
	}
}
