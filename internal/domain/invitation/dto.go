package invitation

import (
	"context"

	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

type InviteRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (r *InviteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid email address",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AcceptInvitationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r *AcceptInvitationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type InvitationResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	ExpiresAt string `json:"expires_at"`
	Accepted  bool   `json:"accepted"`
	CreatedAt string `json:"created_at"`
}

// Service defines cleaner invitation business logic
type Service interface {
	// Invite creates a pending invitation and emails the cleaner (admin)
	Invite(ctx context.Context, req InviteRequest) (InvitationResponse, error)

	// Resend regenerates the token and expiry and re-sends the email (admin)
	Resend(ctx context.Context, id string) (InvitationResponse, error)

	// Revoke deletes a pending invitation (admin)
	Revoke(ctx context.Context, id string) error

	List(ctx context.Context) ([]InvitationResponse, error)

	// Accept redeems a token, creating the cleaner profile (public)
	Accept(ctx context.Context, req AcceptInvitationRequest) error
}
