package session

import (
	"errors"
	"fmt"
)

// Session domain errors
var (
	ErrSessionNotFound            = errors.New("session not found")
	ErrAlreadyCheckedIn           = errors.New("an open session already exists")
	ErrAlreadyCheckedOut          = errors.New("session is already checked out")
	ErrNoOpenSession              = errors.New("no open session to check out")
	ErrNotAssigned                = errors.New("cleaner is not assigned to this location")
	ErrLocationNotAvailable       = errors.New("location is not available")
	ErrLocationMissingCoordinates = errors.New("location has no coordinates")
	ErrCleanerInactive            = errors.New("cleaner account is deactivated")
)

// OutsideGeofenceError rejects a check-in attempted beyond the allowed
// radius. Distance and Radius are surfaced to the client so the app can
// tell the cleaner how far off they are.
type OutsideGeofenceError struct {
	Distance float64
	Radius   float64
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("outside geofence: %.0fm away, allowed radius %.0fm", e.Distance, e.Radius)
}
