package profile

import (
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
)

// Profile is a platform user: an administrator or a cleaner. Deactivation is
// a soft flag; deactivated cleaners keep their history but cannot start new
// sessions.
type Profile struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	Role         auth.Role
	AvatarURL    *string
	PasswordHash string
	IsActive     bool
	InvitedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
