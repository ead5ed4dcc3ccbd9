package utils

import (
	"github.com/umahmood/haversine"
)

// DistanceKm is a direct "as-the-crow-flies" great-circle distance.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := haversine.Coord{Lat: lat1, Lon: lon1}
	p2 := haversine.Coord{Lat: lat2, Lon: lon2}
	_, km := haversine.Distance(p1, p2)
	return km
}
