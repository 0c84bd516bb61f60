package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/assignment"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/geo"
	"github.com/cleantrack/cleantrack-backend-go/internal/service/notifier"
	"github.com/cleantrack/cleantrack-backend-go/internal/service/photo"
)

type attendanceService struct {
	sessions    session.Repository
	assignments assignment.Repository
	locations   location.Repository
	profiles    profile.Repository
	checklists  checklist.Repository
	settings    settings.Repository
	binder      photo.Binder
	notifier    notifier.Notifier
	tx          database.TxManager

	now func() time.Time
}

// NewAttendanceService creates the attendance service.
func NewAttendanceService(
	sessions session.Repository,
	assignments assignment.Repository,
	locations location.Repository,
	profiles profile.Repository,
	checklists checklist.Repository,
	settingsRepo settings.Repository,
	binder photo.Binder,
	dispatcher notifier.Notifier,
	tx database.TxManager,
) session.Service {
	return &attendanceService{
		sessions:    sessions,
		assignments: assignments,
		locations:   locations,
		profiles:    profiles,
		checklists:  checklists,
		settings:    settingsRepo,
		binder:      binder,
		notifier:    dispatcher,
		tx:          tx,
		now:         time.Now,
	}
}

// CheckIn implements session.Service.
func (s *attendanceService) CheckIn(ctx context.Context, req session.CheckInRequest) (session.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return session.CheckInResponse{}, err
	}

	identity, err := auth.FromContext(ctx)
	if err != nil {
		return session.CheckInResponse{}, err
	}

	cleaner, err := s.profiles.GetByID(ctx, identity.UserID)
	if err != nil {
		return session.CheckInResponse{}, err
	}
	if !cleaner.IsActive {
		return session.CheckInResponse{}, session.ErrCleanerInactive
	}

	open, err := s.sessions.GetOpenByCleaner(ctx, identity.UserID)
	if err != nil {
		return session.CheckInResponse{}, err
	}
	if open != nil {
		return session.CheckInResponse{}, session.ErrAlreadyCheckedIn
	}

	asg, err := s.assignments.GetActive(ctx, identity.UserID, req.LocationID)
	if err != nil {
		return session.CheckInResponse{}, err
	}
	if asg == nil {
		return session.CheckInResponse{}, session.ErrNotAssigned
	}

	loc, err := s.locations.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return session.CheckInResponse{}, session.ErrLocationNotAvailable
		}
		return session.CheckInResponse{}, err
	}
	if !loc.IsActive {
		return session.CheckInResponse{}, session.ErrLocationNotAvailable
	}

	if !loc.HasCoordinates() {
		return session.CheckInResponse{}, session.ErrLocationMissingCoordinates
	}

	// Settings snapshot taken once; the rest of the request reasons from it.
	snap, err := s.settings.Get(ctx)
	if err != nil {
		return session.CheckInResponse{}, err
	}

	enforce := snap.GeofenceEnabled && loc.GeofenceEnabled

	within := true
	distance := 0.0
	if enforce {
		if loc.GeofenceRadius <= 0 {
			return session.CheckInResponse{}, session.ErrLocationMissingCoordinates
		}
		verdict := geo.Evaluate(req.Latitude, req.Longitude, *loc.Latitude, *loc.Longitude, loc.GeofenceRadius)
		within = verdict.Within
		distance = verdict.Distance
		if !within {
			return session.CheckInResponse{}, &session.OutsideGeofenceError{
				Distance: distance,
				Radius:   loc.GeofenceRadius,
			}
		}
	}

	created, err := s.sessions.Create(ctx, session.Session{
		CleanerID:             identity.UserID,
		LocationID:            loc.ID,
		AssignmentID:          asg.ID,
		Status:                session.StatusCheckedIn,
		CheckinAt:             s.now().UTC(),
		CheckinLatitude:       req.Latitude,
		CheckinLongitude:      req.Longitude,
		CheckinDistanceMeters: distance,
		CheckinWithinGeofence: within,
	})
	if err != nil {
		return session.CheckInResponse{}, err
	}

	s.notifier.NotifyCheckin(notifier.SessionOpened{
		CleanerName:     cleaner.FullName,
		CleanerEmail:    cleaner.Email,
		LocationName:    loc.Name,
		CheckinAt:       created.CheckinAt,
		CompanyName:     snap.CompanyName,
		LogoURL:         derefString(snap.LogoURL),
		NotifyOnCheckin: snap.NotifyOnCheckin,
	})

	return session.CheckInResponse{
		SessionID:      created.ID,
		LocationID:     loc.ID,
		LocationName:   loc.Name,
		CheckinAt:      created.CheckinAt.Format(time.RFC3339),
		DistanceMeters: distance,
		WithinGeofence: within,
	}, nil
}

// CheckOut implements session.Service. Being outside the geofence never
// rejects a check-out; the compliance flag just records it.
func (s *attendanceService) CheckOut(ctx context.Context, req session.CheckOutRequest) (session.SessionSummary, error) {
	if err := req.Validate(); err != nil {
		return session.SessionSummary{}, err
	}

	identity, err := auth.FromContext(ctx)
	if err != nil {
		return session.SessionSummary{}, err
	}

	open, err := s.sessions.GetOpenByCleaner(ctx, identity.UserID)
	if err != nil {
		return session.SessionSummary{}, err
	}
	if open == nil {
		return session.SessionSummary{}, session.ErrNoOpenSession
	}

	loc, err := s.locations.GetByID(ctx, open.LocationID)
	if err != nil {
		return session.SessionSummary{}, err
	}

	snap, err := s.settings.Get(ctx)
	if err != nil {
		return session.SessionSummary{}, err
	}

	enforce := snap.GeofenceEnabled && loc.GeofenceEnabled

	within := true
	distance := 0.0
	if loc.HasCoordinates() {
		verdict := geo.Evaluate(req.Latitude, req.Longitude, *loc.Latitude, *loc.Longitude, loc.GeofenceRadius)
		distance = verdict.Distance
		if enforce && loc.GeofenceRadius > 0 {
			within = verdict.Within
		}
	}

	presented, err := s.checklists.ListPresented(ctx, loc.ID)
	if err != nil {
		return session.SessionSummary{}, err
	}

	tasks, completed, total := ScoreChecklist(open.ID, presented, req.Tasks)

	checkoutAt := s.now().UTC()

	// Photos are stored before the closing transaction; a binder failure
	// aborts the check-out rather than leaving a session closed without
	// its evidence.
	photos, err := s.binder.Bind(ctx, open.ID, checkoutAt, req.Photos)
	if err != nil {
		return session.SessionSummary{}, fmt.Errorf("failed to bind photos: %w", err)
	}

	remarks := normalizeRemarks(req.Remarks)

	var closed session.Session
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		closed, err = s.sessions.Close(txCtx, open.ID, checkoutAt, req.Latitude, req.Longitude, distance, within, remarks)
		if err != nil {
			return err
		}
		if err := s.sessions.CreateTasks(txCtx, tasks); err != nil {
			return err
		}
		return s.sessions.CreatePhotos(txCtx, photos)
	})
	if err != nil {
		// Leave uploaded photos behind for cleanup rather than failing the
		// error path on a second storage call.
		slog.Error("Check-out transaction failed", "session_id", open.ID, "error", err)
		return session.SessionSummary{}, err
	}

	durationMinutes := closed.DurationMinutes()
	durationLabel := FormatDuration(durationMinutes)

	s.notifier.NotifyCheckout(notifier.SessionClosed{
		CleanerName:      derefString(closed.CleanerName),
		CleanerEmail:     derefString(closed.CleanerEmail),
		LocationName:     loc.Name,
		LocationAddress:  loc.Address,
		CheckinAt:        closed.CheckinAt,
		CheckoutAt:       checkoutAt,
		DurationLabel:    durationLabel,
		TasksCompleted:   completed,
		TotalTasks:       total,
		PhotosCount:      len(photos),
		HasRemarks:       remarks != nil,
		WithinGeofence:   within,
		CompanyName:      snap.CompanyName,
		LogoURL:          derefString(snap.LogoURL),
		NotifyOnCheckout: snap.NotifyOnCheckout,
	})

	return session.SessionSummary{
		SessionID:       closed.ID,
		LocationID:      loc.ID,
		LocationName:    loc.Name,
		CheckinAt:       closed.CheckinAt.Format(time.RFC3339),
		CheckoutAt:      checkoutAt.Format(time.RFC3339),
		DurationMinutes: durationMinutes,
		DurationLabel:   durationLabel,
		TasksCompleted:  completed,
		TotalTasks:      total,
		PhotosCount:     len(photos),
		WithinGeofence:  within,
		Remarks:         remarks,
	}, nil
}

// Current implements session.Service.
func (s *attendanceService) Current(ctx context.Context) (*session.SessionDetail, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	open, err := s.sessions.GetOpenByCleaner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}

	detail, err := s.toDetail(ctx, *open)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// History implements session.Service. Cleaners only ever see their own rows.
func (s *attendanceService) History(ctx context.Context, filter session.Filter) (session.ListSessionsResponse, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return session.ListSessionsResponse{}, err
	}

	filter.CleanerID = &identity.UserID
	if err := filter.Validate(); err != nil {
		return session.ListSessionsResponse{}, err
	}

	return s.list(ctx, filter)
}

// ListActivity implements session.Service.
func (s *attendanceService) ListActivity(ctx context.Context, filter session.Filter) (session.ListSessionsResponse, error) {
	if err := filter.Validate(); err != nil {
		return session.ListSessionsResponse{}, err
	}

	return s.list(ctx, filter)
}

// GetSession implements session.Service.
func (s *attendanceService) GetSession(ctx context.Context, id string) (session.SessionDetail, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return session.SessionDetail{}, err
	}

	var sess session.Session
	if identity.Role == auth.RoleCleaner {
		sess, err = s.sessions.GetByIDForCleaner(ctx, id, identity.UserID)
	} else {
		sess, err = s.sessions.GetByID(ctx, id)
	}
	if err != nil {
		return session.SessionDetail{}, err
	}

	return s.toDetail(ctx, sess)
}

func (s *attendanceService) list(ctx context.Context, filter session.Filter) (session.ListSessionsResponse, error) {
	sessions, total, err := s.sessions.List(ctx, filter)
	if err != nil {
		return session.ListSessionsResponse{}, err
	}

	items := make([]session.SessionListItem, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, toListItem(sess))
	}

	return session.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Sessions:   items,
	}, nil
}

func (s *attendanceService) toDetail(ctx context.Context, sess session.Session) (session.SessionDetail, error) {
	tasks, err := s.sessions.ListTasks(ctx, sess.ID)
	if err != nil {
		return session.SessionDetail{}, err
	}

	photos, err := s.sessions.ListPhotos(ctx, sess.ID)
	if err != nil {
		return session.SessionDetail{}, err
	}

	taskResponses := make([]session.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		taskResponses = append(taskResponses, session.TaskResponse{
			ItemID:    t.ItemID,
			Label:     t.Label,
			Completed: t.Completed,
		})
	}

	photoResponses := make([]session.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		url, err := s.binder.SignedURL(ctx, p.Path)
		if err != nil {
			slog.Error("Failed to sign photo URL", "path", p.Path, "error", err)
			continue
		}
		photoResponses = append(photoResponses, session.PhotoResponse{
			ID:        p.ID,
			URL:       url,
			SizeBytes: p.SizeBytes,
		})
	}

	detail := session.SessionDetail{
		ID:              sess.ID,
		CleanerID:       sess.CleanerID,
		CleanerName:     sess.CleanerName,
		LocationID:      sess.LocationID,
		LocationName:    sess.LocationName,
		LocationAddress: sess.LocationAddress,
		Status:          sess.Status,
		CheckinAt:       sess.CheckinAt.Format(time.RFC3339),
		CheckinWithin:   sess.CheckinWithinGeofence,
		CheckoutWithin:  sess.CheckoutWithinGeofence,
		DurationMinutes: sess.DurationMinutes(),
		Remarks:         sess.Remarks,
		Tasks:           taskResponses,
		Photos:          photoResponses,
	}
	if sess.CheckoutAt != nil {
		out := sess.CheckoutAt.Format(time.RFC3339)
		detail.CheckoutAt = &out
	}

	return detail, nil
}

func toListItem(sess session.Session) session.SessionListItem {
	item := session.SessionListItem{
		ID:              sess.ID,
		CleanerID:       sess.CleanerID,
		CleanerName:     sess.CleanerName,
		LocationID:      sess.LocationID,
		LocationName:    sess.LocationName,
		Status:          sess.Status,
		CheckinAt:       sess.CheckinAt.Format(time.RFC3339),
		DurationMinutes: sess.DurationMinutes(),
		WithinGeofence:  sess.CheckinWithinGeofence,
	}
	if sess.CheckoutAt != nil {
		out := sess.CheckoutAt.Format(time.RFC3339)
		item.CheckoutAt = &out
		if sess.CheckoutWithinGeofence != nil {
			item.WithinGeofence = sess.CheckinWithinGeofence && *sess.CheckoutWithinGeofence
		}
	}
	return item
}

func normalizeRemarks(remarks *string) *string {
	if remarks == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*remarks)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
