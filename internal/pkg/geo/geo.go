package geo

import "math"

const earthRadiusMeters = 6371000

// Distance computes the great-circle distance between two coordinates in
// meters using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Verdict is the result of evaluating a coordinate against a geofence.
type Verdict struct {
	Distance float64
	Within   bool
}

// Evaluate measures the distance from (lat, lng) to the geofence center and
// reports whether it falls inside the radius. The boundary counts as inside.
func Evaluate(lat, lng, centerLat, centerLng, radiusMeters float64) Verdict {
	d := Distance(lat, lng, centerLat, centerLng)
	return Verdict{
		Distance: d,
		Within:   d <= radiusMeters,
	}
}
