package assignment

import (
	"context"
	"log/slog"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/assignment"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/email"
)

type assignmentService struct {
	assignments assignment.Repository
	profiles    profile.Repository
	locations   location.Repository
	settings    settings.Repository
	email       email.Service
}

// NewAssignmentService creates the assignment management service.
func NewAssignmentService(
	assignments assignment.Repository,
	profiles profile.Repository,
	locations location.Repository,
	settingsRepo settings.Repository,
	emailSvc email.Service,
) assignment.Service {
	return &assignmentService{
		assignments: assignments,
		profiles:    profiles,
		locations:   locations,
		settings:    settingsRepo,
		email:       emailSvc,
	}
}

// Create implements assignment.Service. The notification email is best
// effort; a delivery failure does not undo the assignment.
func (s *assignmentService) Create(ctx context.Context, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	cleaner, err := s.profiles.GetByID(ctx, req.CleanerID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if cleaner.Role != auth.RoleCleaner {
		return assignment.AssignmentResponse{}, profile.ErrProfileNotFound
	}

	loc, err := s.locations.GetByID(ctx, req.LocationID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	created, err := s.assignments.Create(ctx, assignment.Assignment{
		CleanerID:  req.CleanerID,
		LocationID: req.LocationID,
		IsActive:   true,
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	go s.sendAssignmentEmail(cleaner, loc)

	created.CleanerName = &cleaner.FullName
	created.LocationName = &loc.Name
	created.LocationAddress = &loc.Address
	return toResponse(created), nil
}

// List implements assignment.Service.
func (s *assignmentService) List(ctx context.Context, filter assignment.Filter) (assignment.ListAssignmentsResponse, error) {
	if err := filter.Validate(); err != nil {
		return assignment.ListAssignmentsResponse{}, err
	}

	assignments, total, err := s.assignments.List(ctx, filter)
	if err != nil {
		return assignment.ListAssignmentsResponse{}, err
	}

	responses := make([]assignment.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, toResponse(a))
	}

	return assignment.ListAssignmentsResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Assignments: responses,
	}, nil
}

// ListMine implements assignment.Service.
func (s *assignmentService) ListMine(ctx context.Context) ([]assignment.AssignmentResponse, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListForCleaner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]assignment.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, toResponse(a))
	}

	return responses, nil
}

// SetActive implements assignment.Service.
func (s *assignmentService) SetActive(ctx context.Context, id string, active bool) (assignment.AssignmentResponse, error) {
	if err := s.assignments.SetActive(ctx, id, active); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	return toResponse(a), nil
}

func (s *assignmentService) sendAssignmentEmail(cleaner profile.Profile, loc location.Location) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	companyName := "CleanTrack"
	if snap, err := s.settings.Get(ctx); err == nil {
		companyName = snap.CompanyName
	}

	if err := s.email.SendAssignment(cleaner.Email, email.AssignmentEmail{
		CompanyName:  companyName,
		CleanerName:  cleaner.FullName,
		LocationName: loc.Name,
		Address:      loc.Address,
	}); err != nil {
		slog.Error("Failed to send assignment email", "to", cleaner.Email, "error", err)
	}
}

func toResponse(a assignment.Assignment) assignment.AssignmentResponse {
	return assignment.AssignmentResponse{
		ID:              a.ID,
		CleanerID:       a.CleanerID,
		LocationID:      a.LocationID,
		CleanerName:     a.CleanerName,
		LocationName:    a.LocationName,
		LocationAddress: a.LocationAddress,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}
