package utils

import "testing"

func TestDistanceKM(t *testing.T) {
	// Guadalajara centro to Zapopan centro, roughly 8 km apart.
	gdl := Coordinate{Lat: 20.6767, Lng: -103.3475}
	zap := Coordinate{Lat: 20.7236, Lng: -103.3848}

	d := DistanceKM(gdl, zap)
	if d < 5 || d > 12 {
		t.Errorf("DistanceKM(gdl, zapopan) = %.2f, expected between 5 and 12", d)
	}

	if d0 := DistanceKM(gdl, gdl); d0 != 0 {
		t.Errorf("DistanceKM(p, p) = %.4f, expected 0", d0)
	}
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		expected bool
	}{
		{"valid mexico point", Coordinate{20.67, -103.35}, true},
		{"zero-zero treated as unset", Coordinate{0, 0}, false},
		{"latitude out of range", Coordinate{91, 0}, false},
		{"longitude out of range", Coordinate{0, -181}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCoordinate(tt.coord); got != tt.expected {
				t.Errorf("ValidCoordinate(%+v) = %v, expected %v", tt.coord, got, tt.expected)
			}
		})
	}
}

func TestInServiceArea(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		expected bool
	}{
		{"guadalajara centro", Coordinate{20.6767, -103.3475}, true},
		{"zapopan", Coordinate{20.7236, -103.3848}, true},
		{"mexico city", Coordinate{19.4326, -99.1332}, false},
		{"monterrey", Coordinate{25.6866, -100.3161}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InServiceArea(tt.coord); got != tt.expected {
				t.Errorf("InServiceArea(%+v) = %v, expected %v", tt.coord, got, tt.expected)
			}
		})
	}
}

func TestIsPointInServiceArea(t *testing.T) {
	square := []Coordinate{
		{Lat: 20.0, Lng: -104.0},
		{Lat: 21.0, Lng: -104.0},
		{Lat: 21.0, Lng: -103.0},
		{Lat: 20.0, Lng: -103.0},
	}

	if !IsPointInServiceArea(Coordinate{20.5, -103.5}, square) {
		t.Error("expected center point to be inside the service area")
	}
	if IsPointInServiceArea(Coordinate{22.0, -103.5}, square) {
		t.Error("expected far point to be outside the service area")
	}
	if IsPointInServiceArea(Coordinate{20.5, -103.5}, square[:2]) {
		t.Error("expected degenerate polygon to contain nothing")
	}
}
