package location

import "time"

// Geofence radius bounds in meters.
const (
	MinGeofenceRadius = 50
	MaxGeofenceRadius = 500
)

// Location is a physical site cleaners are assigned to. Coordinates may be
// nil when geocoding failed; such a location cannot support geofence-enforced
// check-in and the attendance service fails closed on it.
type Location struct {
	ID              string
	Name            string
	Address         string
	Latitude        *float64
	Longitude       *float64
	GeofenceRadius  float64
	GeofenceEnabled bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCoordinates reports whether the location was geocoded successfully.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
