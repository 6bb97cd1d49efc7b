package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetTechnicianAvailabilityRejectsBadID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/availability/technicians/not-a-uuid?date=2026-03-02", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rr := httptest.NewRecorder()

	GetTechnicianAvailability(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "id de técnico inválido") {
		t.Errorf("body = %s, expected the technician id error", rr.Body.String())
	}
}

func TestGetTechnicianAvailabilityRequiresDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/availability/technicians/0b38d7a1-6f7e-4a59-9c72-5ad1e53c9f10", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "0b38d7a1-6f7e-4a59-9c72-5ad1e53c9f10"})
	rr := httptest.NewRecorder()

	GetTechnicianAvailability(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "date") {
		t.Errorf("body = %s, expected the date parameter error", rr.Body.String())
	}
}
