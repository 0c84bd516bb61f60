package session

import (
	"context"
	"time"
)

// Repository defines data access methods for attendance sessions.
type Repository interface {
	// Create inserts an open session. The database enforces at most one
	// open session per cleaner; a violation returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, s Session) (Session, error)

	GetByID(ctx context.Context, id string) (Session, error)

	// GetByIDForCleaner returns the session only when owned by cleanerID,
	// otherwise ErrSessionNotFound
	GetByIDForCleaner(ctx context.Context, id, cleanerID string) (Session, error)

	// GetOpenByCleaner returns the cleaner's open session, or nil when
	// none exists
	GetOpenByCleaner(ctx context.Context, cleanerID string) (*Session, error)

	// Close marks the session checked out with the given check-out facts.
	// Closing an already-closed session returns ErrAlreadyCheckedOut.
	Close(ctx context.Context, id string, checkoutAt time.Time, lat, lng, distance float64, within bool, remarks *string) (Session, error)

	CreateTasks(ctx context.Context, tasks []Task) error

	CreatePhotos(ctx context.Context, photos []Photo) error

	ListTasks(ctx context.Context, sessionID string) ([]Task, error)

	ListPhotos(ctx context.Context, sessionID string) ([]Photo, error)

	List(ctx context.Context, filter Filter) ([]Session, int64, error)
}
