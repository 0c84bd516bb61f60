package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/assignment"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/invitation"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var geofenceErr *session.OutsideGeofenceError
	if errors.As(err, &geofenceErr) {
		OutsideGeofence(w, geofenceErr.Distance, geofenceErr.Radius)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Unauthorized")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrAdminOnly):
		Forbidden(w, "Admin access required")
	case errors.Is(err, auth.ErrCleanerOnly):
		Forbidden(w, "Cleaner access required")

	// Session domain errors
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, session.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in")
	case errors.Is(err, session.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, session.ErrNoOpenSession):
		NotFound(w, "No open session to check out")
	case errors.Is(err, session.ErrNotAssigned):
		Forbidden(w, "Not assigned to this location")
	case errors.Is(err, session.ErrLocationNotAvailable):
		BadRequest(w, "Location not available", nil)
	case errors.Is(err, session.ErrLocationMissingCoordinates):
		BadRequest(w, "Location is missing coordinates", nil)
	case errors.Is(err, session.ErrCleanerInactive):
		Forbidden(w, "Account is deactivated")

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, profile.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrInvalidRadius):
		BadRequest(w, fmt.Sprintf("Geofence radius must be between %d and %d meters", location.MinGeofenceRadius, location.MaxGeofenceRadius), nil)
	case errors.Is(err, location.ErrUnableToGeocode):
		BadRequest(w, "Unable to geocode address", nil)

	// Assignment domain errors
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, assignment.ErrAssignmentExists):
		Conflict(w, "Cleaner is already assigned to this location")

	// Checklist domain errors
	case errors.Is(err, checklist.ErrItemNotFound):
		NotFound(w, "Checklist item not found")

	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired):
		BadRequest(w, "Invitation has expired", nil)
	case errors.Is(err, invitation.ErrInvitationAccepted):
		Conflict(w, "Invitation has already been accepted")
	case errors.Is(err, invitation.ErrInvitationPending):
		Conflict(w, "An invitation is already pending for this email")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func formatMeters(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
