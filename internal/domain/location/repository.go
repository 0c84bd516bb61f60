package location

import "context"

// Repository defines data access methods for locations.
type Repository interface {
	Create(ctx context.Context, l Location) (Location, error)

	GetByID(ctx context.Context, id string) (Location, error)

	List(ctx context.Context, filter Filter) ([]Location, int64, error)

	Update(ctx context.Context, l Location) error

	SetActive(ctx context.Context, id string, active bool) error
}
