package checklist

import "context"

// Repository defines data access methods for checklist items.
type Repository interface {
	CreateBatch(ctx context.Context, items []Item) ([]Item, error)

	// ListPresented returns the active items shown to a cleaner at a
	// location: the default set plus that location's own items, ordered by
	// sort order
	ListPresented(ctx context.Context, locationID string) ([]Item, error)

	// List returns default items when locationID is nil, otherwise the
	// items scoped to that location. Inactive items are included so admins
	// can re-enable them.
	List(ctx context.Context, locationID *string) ([]Item, error)

	GetByID(ctx context.Context, id string) (Item, error)

	SetActive(ctx context.Context, id string, active bool) error
}
