package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateClientRejectsOutOfServiceArea(t *testing.T) {
	// Mexico City sits well outside the coverage polygon.
	body := `{"name":"Cliente Lejano","email":"lejano@example.com","latitude":19.4326,"longitude":-99.1332}`
	req := httptest.NewRequest("POST", "/api/v1/clients", strings.NewReader(body))
	rr := httptest.NewRecorder()

	CreateClient(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "área de servicio") {
		t.Errorf("body = %s, expected the service area error", rr.Body.String())
	}
}
