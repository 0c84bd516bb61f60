package assignment

import "context"

// Repository defines data access methods for assignments.
type Repository interface {
	// Create inserts a new assignment; a duplicate cleaner/location pair
	// returns ErrAssignmentExists
	Create(ctx context.Context, a Assignment) (Assignment, error)

	GetByID(ctx context.Context, id string) (Assignment, error)

	// GetActive returns the active assignment linking a cleaner to a
	// location, or nil when none exists
	GetActive(ctx context.Context, cleanerID, locationID string) (*Assignment, error)

	// ListForCleaner returns active assignments with joined location data,
	// used for the cleaner's check-in screen
	ListForCleaner(ctx context.Context, cleanerID string) ([]Assignment, error)

	List(ctx context.Context, filter Filter) ([]Assignment, int64, error)

	SetActive(ctx context.Context, id string, active bool) error
}
