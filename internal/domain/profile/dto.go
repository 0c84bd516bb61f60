package profile

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

type CleanerFilter struct {
	Search *string `json:"search,omitempty"`
	Active *bool   `json:"active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *CleanerFilter) Validate() error {
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

type UpdateProfileRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CleanerResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

type ListCleanersResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Cleaners   []CleanerResponse `json:"cleaners"`
}

// Service defines cleaner management business logic
type Service interface {
	// ListCleaners retrieves cleaner profiles (admin)
	ListCleaners(ctx context.Context, filter CleanerFilter) (ListCleanersResponse, error)

	// GetCleaner retrieves a single cleaner profile (admin)
	GetCleaner(ctx context.Context, id string) (CleanerResponse, error)

	// SetCleanerActive soft-activates or deactivates a cleaner (admin)
	SetCleanerActive(ctx context.Context, id string, active bool) (CleanerResponse, error)

	// GetMyProfile retrieves the authenticated caller's profile
	GetMyProfile(ctx context.Context) (CleanerResponse, error)

	// UpdateMyProfile updates the authenticated caller's profile
	UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (CleanerResponse, error)
}
