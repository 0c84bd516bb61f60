package checklist

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

type CreateItemsRequest struct {
	Labels     []string `json:"labels"`
	LocationID *string  `json:"location_id,omitempty"`
}

func (r *CreateItemsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Labels) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "labels",
			Message: "at least one label is required",
		})
	}

	for _, label := range r.Labels {
		if validator.IsEmpty(label) {
			errs = append(errs, validator.ValidationError{
				Field:   "labels",
				Message: "labels must not be empty",
			})
			break
		}
	}

	if r.LocationID != nil && validator.IsEmpty(*r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ItemResponse struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	IsDefault  bool    `json:"is_default"`
	LocationID *string `json:"location_id,omitempty"`
	SortOrder  int     `json:"sort_order"`
	IsActive   bool    `json:"is_active"`
}

// Service defines checklist management business logic
type Service interface {
	// CreateItems appends items to the default set or a location's set (admin)
	CreateItems(ctx context.Context, req CreateItemsRequest) ([]ItemResponse, error)

	// List returns default items or a location's own items (admin)
	List(ctx context.Context, locationID *string) ([]ItemResponse, error)

	SetActive(ctx context.Context, id string, active bool) (ItemResponse, error)
}
