package settings

import "context"

// Repository defines data access methods for organization settings.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
}
