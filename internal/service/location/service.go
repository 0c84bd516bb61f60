package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/geocode"
)

type locationService struct {
	locations location.Repository
	settings  settings.Repository
	geocoder  geocode.Client
}

// NewLocationService creates the location management service.
func NewLocationService(locations location.Repository, settingsRepo settings.Repository, geocoder geocode.Client) location.Service {
	return &locationService{
		locations: locations,
		settings:  settingsRepo,
		geocoder:  geocoder,
	}
}

// Create implements location.Service. The address is geocoded here, never
// during check-in.
func (s *locationService) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	radius, err := s.resolveRadius(ctx, req.GeofenceRadius)
	if err != nil {
		return location.LocationResponse{}, err
	}

	enabled := true
	if req.GeofenceEnabled != nil {
		enabled = *req.GeofenceEnabled
	}

	loc := location.Location{
		Name:            req.Name,
		Address:         req.Address,
		GeofenceRadius:  radius,
		GeofenceEnabled: enabled,
		IsActive:        true,
	}

	result, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			return location.LocationResponse{}, location.ErrUnableToGeocode
		}
		return location.LocationResponse{}, fmt.Errorf("failed to geocode address: %w", err)
	}
	loc.Latitude = &result.Latitude
	loc.Longitude = &result.Longitude

	created, err := s.locations.Create(ctx, loc)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return toResponse(created), nil
}

// Update implements location.Service. A changed address is re-geocoded;
// anything else keeps the stored coordinates.
func (s *locationService) Update(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc, err := s.locations.GetByID(ctx, req.ID)
	if err != nil {
		return location.LocationResponse{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.GeofenceRadius != nil {
		loc.GeofenceRadius = *req.GeofenceRadius
	}
	if req.GeofenceEnabled != nil {
		loc.GeofenceEnabled = *req.GeofenceEnabled
	}

	if req.Address != nil && *req.Address != loc.Address {
		loc.Address = *req.Address

		result, err := s.geocoder.Geocode(ctx, loc.Address)
		if err != nil {
			if errors.Is(err, geocode.ErrNoResults) {
				return location.LocationResponse{}, location.ErrUnableToGeocode
			}
			return location.LocationResponse{}, fmt.Errorf("failed to geocode address: %w", err)
		}
		loc.Latitude = &result.Latitude
		loc.Longitude = &result.Longitude
	}

	if err := s.locations.Update(ctx, loc); err != nil {
		return location.LocationResponse{}, err
	}

	return toResponse(loc), nil
}

// Get implements location.Service.
func (s *locationService) Get(ctx context.Context, id string) (location.LocationResponse, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return toResponse(loc), nil
}

// List implements location.Service.
func (s *locationService) List(ctx context.Context, filter location.Filter) (location.ListLocationsResponse, error) {
	if err := filter.Validate(); err != nil {
		return location.ListLocationsResponse{}, err
	}

	locations, total, err := s.locations.List(ctx, filter)
	if err != nil {
		return location.ListLocationsResponse{}, err
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, toResponse(loc))
	}

	return location.ListLocationsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Locations:  responses,
	}, nil
}

// SetActive implements location.Service.
func (s *locationService) SetActive(ctx context.Context, id string, active bool) (location.LocationResponse, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}

	if err := s.locations.SetActive(ctx, id, active); err != nil {
		return location.LocationResponse{}, err
	}

	loc.IsActive = active
	return toResponse(loc), nil
}

// resolveRadius falls back to the organization default, clamped to the
// allowed bounds.
func (s *locationService) resolveRadius(ctx context.Context, requested *float64) (float64, error) {
	if requested != nil {
		return *requested, nil
	}

	snap, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}

	radius := snap.DefaultGeofenceRadius
	if radius < location.MinGeofenceRadius {
		radius = location.MinGeofenceRadius
	}
	if radius > location.MaxGeofenceRadius {
		radius = location.MaxGeofenceRadius
	}
	return radius, nil
}

func toResponse(l location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:              l.ID,
		Name:            l.Name,
		Address:         l.Address,
		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
		GeofenceRadius:  l.GeofenceRadius,
		GeofenceEnabled: l.GeofenceEnabled,
		IsActive:        l.IsActive,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
}
