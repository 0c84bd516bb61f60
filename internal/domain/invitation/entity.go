package invitation

import "time"

// Invitation is a pending offer to join as a cleaner, redeemed by token.
type Invitation struct {
	ID         string
	Email      string
	FullName   string
	Token      string
	InvitedBy  string
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

func (i Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i Invitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}
