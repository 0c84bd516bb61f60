package invitation

import "context"

// Repository defines data access methods for invitations.
type Repository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	GetByID(ctx context.Context, id string) (Invitation, error)

	GetByToken(ctx context.Context, token string) (Invitation, error)

	// GetPendingByEmail returns the unaccepted invitation for an email, or
	// nil when none exists
	GetPendingByEmail(ctx context.Context, email string) (*Invitation, error)

	MarkAccepted(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]Invitation, error)
}
