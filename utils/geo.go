package utils

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Coordinate is a geographic point with latitude and longitude.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKM returns the great-circle distance between two coordinates in
// kilometers. Used to rank free technicians by travel distance to a client's
// installation site.
func DistanceKM(a, b Coordinate) float64 {
	return geo.Distance(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat}) / 1000.0
}

// ValidCoordinate reports whether a coordinate lies in the valid lat/lng
// ranges. Zero-zero is treated as "not set".
func ValidCoordinate(c Coordinate) bool {
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// ServiceArea is the installation coverage polygon: the Guadalajara
// metropolitan area plus the surrounding Jalisco municipalities crews
// can reach in a day trip.
var ServiceArea = []Coordinate{
	{Lat: 19.8, Lng: -104.5},
	{Lat: 21.3, Lng: -104.5},
	{Lat: 21.3, Lng: -102.5},
	{Lat: 19.8, Lng: -102.5},
}

// InServiceArea reports whether an installation site falls inside the
// company's coverage polygon.
func InServiceArea(c Coordinate) bool {
	return IsPointInServiceArea(c, ServiceArea)
}

// IsPointInServiceArea checks if a point falls inside a polygonal service
// area.
func IsPointInServiceArea(point Coordinate, area []Coordinate) bool {
	if len(area) < 3 {
		return false
	}
	ring := make(orb.Ring, 0, len(area)+1)
	for _, c := range area {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	// close the ring
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return planar.RingContains(ring, orb.Point{point.Lng, point.Lat})
}
