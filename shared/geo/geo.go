// Package geo provides distance math for nearby-search features.
package geo

import "math"

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WithinRadius reports whether the target coordinate lies within radiusKm of
// the origin.
func WithinRadius(originLat, originLon, targetLat, targetLon, radiusKm float64) bool {
	return Distance(originLat, originLon, targetLat, targetLon) <= radiusKm
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
