package location

import "errors"

// Location domain errors
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidRadius    = errors.New("geofence radius must be between 50 and 500 meters")
	ErrUnableToGeocode  = errors.New("unable to geocode this address")
)
