package invitation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/invitation"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/email"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Expiry is how long an invitation token stays redeemable.
const Expiry = 7 * 24 * time.Hour

type invitationService struct {
	invitations invitation.Repository
	profiles    profile.Repository
	settings    settings.Repository
	email       email.Service
	tx          database.TxManager
	frontendURL string

	now func() time.Time
}

// NewInvitationService creates the cleaner invitation service.
func NewInvitationService(
	invitations invitation.Repository,
	profiles profile.Repository,
	settingsRepo settings.Repository,
	emailSvc email.Service,
	tx database.TxManager,
	frontendURL string,
) invitation.Service {
	return &invitationService{
		invitations: invitations,
		profiles:    profiles,
		settings:    settingsRepo,
		email:       emailSvc,
		tx:          tx,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// Invite implements invitation.Service.
func (s *invitationService) Invite(ctx context.Context, req invitation.InviteRequest) (invitation.InvitationResponse, error) {
	if err := req.Validate(); err != nil {
		return invitation.InvitationResponse{}, err
	}

	identity, err := auth.FromContext(ctx)
	if err != nil {
		return invitation.InvitationResponse{}, err
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.profiles.GetByEmail(ctx, normalizedEmail); err == nil {
		return invitation.InvitationResponse{}, profile.ErrEmailExists
	}

	pending, err := s.invitations.GetPendingByEmail(ctx, normalizedEmail)
	if err != nil {
		return invitation.InvitationResponse{}, err
	}
	if pending != nil {
		return invitation.InvitationResponse{}, invitation.ErrInvitationPending
	}

	inv, err := s.invitations.Create(ctx, invitation.Invitation{
		Email:     normalizedEmail,
		FullName:  strings.TrimSpace(req.FullName),
		Token:     uuid.New().String(),
		InvitedBy: identity.UserID,
		ExpiresAt: s.now().Add(Expiry).UTC(),
	})
	if err != nil {
		return invitation.InvitationResponse{}, err
	}

	s.sendInvitationEmail(ctx, inv)

	return toResponse(inv), nil
}

// Resend implements invitation.Service. The old token stops working.
func (s *invitationService) Resend(ctx context.Context, id string) (invitation.InvitationResponse, error) {
	inv, err := s.invitations.GetByID(ctx, id)
	if err != nil {
		return invitation.InvitationResponse{}, err
	}
	if inv.IsAccepted() {
		return invitation.InvitationResponse{}, invitation.ErrInvitationAccepted
	}

	identity, err := auth.FromContext(ctx)
	if err != nil {
		return invitation.InvitationResponse{}, err
	}

	if err := s.invitations.Delete(ctx, inv.ID); err != nil {
		return invitation.InvitationResponse{}, err
	}

	fresh, err := s.invitations.Create(ctx, invitation.Invitation{
		Email:     inv.Email,
		FullName:  inv.FullName,
		Token:     uuid.New().String(),
		InvitedBy: identity.UserID,
		ExpiresAt: s.now().Add(Expiry).UTC(),
	})
	if err != nil {
		return invitation.InvitationResponse{}, err
	}

	s.sendInvitationEmail(ctx, fresh)

	return toResponse(fresh), nil
}

// Revoke implements invitation.Service.
func (s *invitationService) Revoke(ctx context.Context, id string) error {
	inv, err := s.invitations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.IsAccepted() {
		return invitation.ErrInvitationAccepted
	}

	return s.invitations.Delete(ctx, id)
}

// List implements invitation.Service.
func (s *invitationService) List(ctx context.Context) ([]invitation.InvitationResponse, error) {
	invitations, err := s.invitations.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]invitation.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, toResponse(inv))
	}

	return responses, nil
}

// Accept implements invitation.Service. The profile insert and the
// invitation update commit together.
func (s *invitationService) Accept(ctx context.Context, req invitation.AcceptInvitationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	inv, err := s.invitations.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if inv.IsAccepted() {
		return invitation.ErrInvitationAccepted
	}
	if inv.IsExpired(s.now()) {
		return invitation.ErrInvitationExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.profiles.Create(txCtx, profile.Profile{
			FullName:     inv.FullName,
			Email:        inv.Email,
			Role:         auth.RoleCleaner,
			PasswordHash: string(hash),
			IsActive:     true,
			InvitedBy:    &inv.InvitedBy,
		}); err != nil {
			return err
		}

		return s.invitations.MarkAccepted(txCtx, inv.ID)
	})
}

func (s *invitationService) sendInvitationEmail(ctx context.Context, inv invitation.Invitation) {
	companyName := "CleanTrack"
	if snap, err := s.settings.Get(ctx); err == nil {
		companyName = snap.CompanyName
	}

	link := fmt.Sprintf("%s/invite/%s", strings.TrimRight(s.frontendURL, "/"), inv.Token)

	if err := s.email.SendInvitation(inv.Email, email.InvitationEmail{
		CompanyName: companyName,
		InviteLink:  link,
		ExpiresAt:   inv.ExpiresAt.Format("Mon, 02 Jan 2006"),
	}); err != nil {
		slog.Error("Failed to send invitation email", "to", inv.Email, "error", err)
	}
}

func toResponse(inv invitation.Invitation) invitation.InvitationResponse {
	return invitation.InvitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		FullName:  inv.FullName,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
		Accepted:  inv.IsAccepted(),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
}
