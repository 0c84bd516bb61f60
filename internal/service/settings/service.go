package settings

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
)

type settingsService struct {
	repo settings.Repository
}

// NewSettingsService creates the organization settings service.
func NewSettingsService(repo settings.Repository) settings.Service {
	return &settingsService{repo: repo}
}

// Get implements settings.Service.
func (s *settingsService) Get(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return toResponse(current), nil
}

// GetPublic implements settings.Service. Only branding fields leave the
// building; enforcement and notification toggles stay behind auth.
func (s *settingsService) GetPublic(ctx context.Context) (settings.PublicSettingsResponse, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return settings.PublicSettingsResponse{}, err
	}

	return settings.PublicSettingsResponse{
		CompanyName:    current.CompanyName,
		LogoURL:        current.LogoURL,
		PrimaryColor:   current.PrimaryColor,
		SecondaryColor: current.SecondaryColor,
	}, nil
}

// Update implements settings.Service.
func (s *settingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	if req.CompanyName != nil {
		current.CompanyName = *req.CompanyName
	}
	if req.LogoURL != nil {
		current.LogoURL = req.LogoURL
	}
	if req.PrimaryColor != nil {
		current.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		current.SecondaryColor = *req.SecondaryColor
	}
	if req.DefaultGeofenceRadius != nil {
		current.DefaultGeofenceRadius = *req.DefaultGeofenceRadius
	}
	if req.GeofenceEnabled != nil {
		current.GeofenceEnabled = *req.GeofenceEnabled
	}
	if req.NotifyOnCheckin != nil {
		current.NotifyOnCheckin = *req.NotifyOnCheckin
	}
	if req.NotifyOnCheckout != nil {
		current.NotifyOnCheckout = *req.NotifyOnCheckout
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return toResponse(updated), nil
}

func toResponse(s settings.Settings) settings.SettingsResponse {
	return settings.SettingsResponse{
		CompanyName:           s.CompanyName,
		LogoURL:               s.LogoURL,
		PrimaryColor:          s.PrimaryColor,
		SecondaryColor:        s.SecondaryColor,
		DefaultGeofenceRadius: s.DefaultGeofenceRadius,
		GeofenceEnabled:       s.GeofenceEnabled,
		NotifyOnCheckin:       s.NotifyOnCheckin,
		NotifyOnCheckout:      s.NotifyOnCheckout,
	}
}
