package cleaner

import (
	"context"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
)

type cleanerService struct {
	profiles profile.Repository
}

// NewCleanerService creates the cleaner management service.
func NewCleanerService(profiles profile.Repository) profile.Service {
	return &cleanerService{profiles: profiles}
}

// ListCleaners implements profile.Service.
func (s *cleanerService) ListCleaners(ctx context.Context, filter profile.CleanerFilter) (profile.ListCleanersResponse, error) {
	if err := filter.Validate(); err != nil {
		return profile.ListCleanersResponse{}, err
	}

	cleaners, total, err := s.profiles.ListCleaners(ctx, filter)
	if err != nil {
		return profile.ListCleanersResponse{}, err
	}

	responses := make([]profile.CleanerResponse, 0, len(cleaners))
	for _, c := range cleaners {
		responses = append(responses, toResponse(c))
	}

	return profile.ListCleanersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Cleaners:   responses,
	}, nil
}

// GetCleaner implements profile.Service.
func (s *cleanerService) GetCleaner(ctx context.Context, id string) (profile.CleanerResponse, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.CleanerResponse{}, err
	}
	if p.Role != auth.RoleCleaner {
		return profile.CleanerResponse{}, profile.ErrProfileNotFound
	}

	return toResponse(p), nil
}

// SetCleanerActive implements profile.Service.
func (s *cleanerService) SetCleanerActive(ctx context.Context, id string, active bool) (profile.CleanerResponse, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.CleanerResponse{}, err
	}
	if p.Role != auth.RoleCleaner {
		return profile.CleanerResponse{}, profile.ErrProfileNotFound
	}

	if err := s.profiles.SetActive(ctx, id, active); err != nil {
		return profile.CleanerResponse{}, err
	}

	p.IsActive = active
	return toResponse(p), nil
}

// GetMyProfile implements profile.Service.
func (s *cleanerService) GetMyProfile(ctx context.Context) (profile.CleanerResponse, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return profile.CleanerResponse{}, err
	}

	p, err := s.profiles.GetByID(ctx, identity.UserID)
	if err != nil {
		return profile.CleanerResponse{}, err
	}

	return toResponse(p), nil
}

// UpdateMyProfile implements profile.Service.
func (s *cleanerService) UpdateMyProfile(ctx context.Context, req profile.UpdateProfileRequest) (profile.CleanerResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.CleanerResponse{}, err
	}

	identity, err := auth.FromContext(ctx)
	if err != nil {
		return profile.CleanerResponse{}, err
	}

	p, err := s.profiles.GetByID(ctx, identity.UserID)
	if err != nil {
		return profile.CleanerResponse{}, err
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return profile.CleanerResponse{}, err
	}

	return toResponse(p), nil
}

func toResponse(p profile.Profile) profile.CleanerResponse {
	return profile.CleanerResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
