package location

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

type CreateLocationRequest struct {
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	GeofenceRadius  *float64 `json:"geofence_radius,omitempty"`
	GeofenceEnabled *bool    `json:"geofence_enabled,omitempty"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if r.GeofenceRadius != nil && (*r.GeofenceRadius < MinGeofenceRadius || *r.GeofenceRadius > MaxGeofenceRadius) {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_radius",
			Message: "geofence_radius must be between 50 and 500 meters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLocationRequest struct {
	ID              string   `json:"-"`
	Name            *string  `json:"name,omitempty"`
	Address         *string  `json:"address,omitempty"`
	GeofenceRadius  *float64 `json:"geofence_radius,omitempty"`
	GeofenceEnabled *bool    `json:"geofence_enabled,omitempty"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Address != nil && validator.IsEmpty(*r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address must not be empty",
		})
	}

	if r.GeofenceRadius != nil && (*r.GeofenceRadius < MinGeofenceRadius || *r.GeofenceRadius > MaxGeofenceRadius) {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_radius",
			Message: "geofence_radius must be between 50 and 500 meters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	Search *string `json:"search,omitempty"`
	Active *bool   `json:"active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LocationResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	GeofenceRadius  float64  `json:"geofence_radius"`
	GeofenceEnabled bool     `json:"geofence_enabled"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       string   `json:"created_at"`
}

type ListLocationsResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Locations  []LocationResponse `json:"locations"`
}

// Service defines location management business logic
type Service interface {
	// Create geocodes the address and stores a new location (admin)
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)

	// Update edits a location, re-geocoding when the address changes (admin)
	Update(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)

	Get(ctx context.Context, id string) (LocationResponse, error)

	List(ctx context.Context, filter Filter) (ListLocationsResponse, error)

	SetActive(ctx context.Context, id string, active bool) (LocationResponse, error)
}
