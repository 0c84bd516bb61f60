package settings

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	CompanyName           *string  `json:"company_name,omitempty"`
	LogoURL               *string  `json:"logo_url,omitempty"`
	PrimaryColor          *string  `json:"primary_color,omitempty"`
	SecondaryColor        *string  `json:"secondary_color,omitempty"`
	DefaultGeofenceRadius *float64 `json:"default_geofence_radius,omitempty"`
	GeofenceEnabled       *bool    `json:"geofence_enabled,omitempty"`
	NotifyOnCheckin       *bool    `json:"notify_on_checkin,omitempty"`
	NotifyOnCheckout      *bool    `json:"notify_on_checkout,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CompanyName != nil && validator.IsEmpty(*r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not be empty",
		})
	}

	if r.DefaultGeofenceRadius != nil &&
		(*r.DefaultGeofenceRadius < location.MinGeofenceRadius || *r.DefaultGeofenceRadius > location.MaxGeofenceRadius) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_geofence_radius",
			Message: "default_geofence_radius must be between 50 and 500 meters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	CompanyName           string  `json:"company_name"`
	LogoURL               *string `json:"logo_url,omitempty"`
	PrimaryColor          string  `json:"primary_color"`
	SecondaryColor        string  `json:"secondary_color"`
	DefaultGeofenceRadius float64 `json:"default_geofence_radius"`
	GeofenceEnabled       bool    `json:"geofence_enabled"`
	NotifyOnCheckin       bool    `json:"notify_on_checkin"`
	NotifyOnCheckout      bool    `json:"notify_on_checkout"`
}

// PublicSettingsResponse carries only the branding fields safe to serve
// without authentication, for the login screen.
type PublicSettingsResponse struct {
	CompanyName    string  `json:"company_name"`
	LogoURL        *string `json:"logo_url,omitempty"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
}

// Service defines organization settings business logic
type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	GetPublic(ctx context.Context) (PublicSettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
