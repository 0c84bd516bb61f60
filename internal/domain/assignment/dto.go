package assignment

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

type CreateAssignmentRequest struct {
	CleanerID  string `json:"cleaner_id"`
	LocationID string `json:"location_id"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CleanerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "cleaner_id",
			Message: "cleaner_id is required",
		})
	}

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Filter struct {
	CleanerID  *string `json:"cleaner_id,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`

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

type AssignmentResponse struct {
	ID              string  `json:"id"`
	CleanerID       string  `json:"cleaner_id"`
	LocationID      string  `json:"location_id"`
	CleanerName     *string `json:"cleaner_name,omitempty"`
	LocationName    *string `json:"location_name,omitempty"`
	LocationAddress *string `json:"location_address,omitempty"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
}

type ListAssignmentsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// Service defines assignment management business logic
type Service interface {
	// Create links a cleaner to a location and emails the cleaner (admin)
	Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)

	List(ctx context.Context, filter Filter) (ListAssignmentsResponse, error)

	// ListMine returns the caller's active assignments (cleaner)
	ListMine(ctx context.Context) ([]AssignmentResponse, error)

	SetActive(ctx context.Context, id string, active bool) (AssignmentResponse, error)
}
