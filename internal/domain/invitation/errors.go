package invitation

import "errors"

// Invitation domain errors
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrInvitationAccepted = errors.New("invitation has already been accepted")
	ErrInvitationPending  = errors.New("an invitation is already pending for this email")
)
