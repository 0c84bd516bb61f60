package profile

import "context"

// Repository defines data access methods for profiles.
type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)

	GetByID(ctx context.Context, id string) (Profile, error)

	GetByEmail(ctx context.Context, email string) (Profile, error)

	// ListCleaners retrieves cleaner profiles with filters and pagination
	ListCleaners(ctx context.Context, filter CleanerFilter) ([]Profile, int64, error)

	// ListActiveAdmins retrieves every active administrator, used for
	// notification fan-out
	ListActiveAdmins(ctx context.Context) ([]Profile, error)

	Update(ctx context.Context, p Profile) error

	SetActive(ctx context.Context, id string, active bool) error
}
