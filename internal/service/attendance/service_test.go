package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/assignment"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/settings"
	"github.com/cleantrack/cleantrack-backend-go/internal/service/notifier"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCleanerID = "cleaner-1"

func cleanerContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": testCleanerID,
		"email":   "maria@example.com",
		"role":    "cleaner",
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// ---- fakes ----

type fakeSessionRepo struct {
	open    *session.Session
	created *session.Session

	closed      *session.Session
	savedTasks  []session.Task
	savedPhotos []session.Photo
}

func (f *fakeSessionRepo) Create(ctx context.Context, s session.Session) (session.Session, error) {
	s.ID = "sess-1"
	f.created = &s
	return s, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (session.Session, error) {
	if f.closed != nil && f.closed.ID == id {
		return *f.closed, nil
	}
	return session.Session{}, session.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetByIDForCleaner(ctx context.Context, id, cleanerID string) (session.Session, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSessionRepo) GetOpenByCleaner(ctx context.Context, cleanerID string) (*session.Session, error) {
	return f.open, nil
}

func (f *fakeSessionRepo) Close(ctx context.Context, id string, checkoutAt time.Time, lat, lng, distance float64, within bool, remarks *string) (session.Session, error) {
	if f.open == nil || f.open.ID != id {
		return session.Session{}, session.ErrSessionNotFound
	}
	closed := *f.open
	closed.Status = session.StatusCheckedOut
	closed.CheckoutAt = &checkoutAt
	closed.CheckoutLatitude = &lat
	closed.CheckoutLongitude = &lng
	closed.CheckoutDistanceMeters = &distance
	closed.CheckoutWithinGeofence = &within
	closed.Remarks = remarks
	f.closed = &closed
	return closed, nil
}

func (f *fakeSessionRepo) CreateTasks(ctx context.Context, tasks []session.Task) error {
	f.savedTasks = append(f.savedTasks, tasks...)
	return nil
}

func (f *fakeSessionRepo) CreatePhotos(ctx context.Context, photos []session.Photo) error {
	f.savedPhotos = append(f.savedPhotos, photos...)
	return nil
}

func (f *fakeSessionRepo) ListTasks(ctx context.Context, sessionID string) ([]session.Task, error) {
	return f.savedTasks, nil
}

func (f *fakeSessionRepo) ListPhotos(ctx context.Context, sessionID string) ([]session.Photo, error) {
	return f.savedPhotos, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filter session.Filter) ([]session.Session, int64, error) {
	return nil, 0, nil
}

type fakeAssignmentRepo struct {
	active *assignment.Assignment
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	return assignment.Assignment{}, assignment.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) GetActive(ctx context.Context, cleanerID, locationID string) (*assignment.Assignment, error) {
	return f.active, nil
}

func (f *fakeAssignmentRepo) ListForCleaner(ctx context.Context, cleanerID string) ([]assignment.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssignmentRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

type fakeLocationRepo struct {
	loc location.Location
	err error
}

func (f *fakeLocationRepo) Create(ctx context.Context, l location.Location) (location.Location, error) {
	return l, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	return f.loc, f.err
}

func (f *fakeLocationRepo) List(ctx context.Context, filter location.Filter) ([]location.Location, int64, error) {
	return nil, 0, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, l location.Location) error { return nil }

func (f *fakeLocationRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

type fakeProfileRepo struct {
	prof profile.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	return f.prof, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	return f.prof, nil
}

func (f *fakeProfileRepo) ListCleaners(ctx context.Context, filter profile.CleanerFilter) ([]profile.Profile, int64, error) {
	return nil, 0, nil
}

func (f *fakeProfileRepo) ListActiveAdmins(ctx context.Context) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p profile.Profile) error { return nil }

func (f *fakeProfileRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

type fakeChecklistRepo struct {
	presented []checklist.Item
}

func (f *fakeChecklistRepo) CreateBatch(ctx context.Context, items []checklist.Item) ([]checklist.Item, error) {
	return items, nil
}

func (f *fakeChecklistRepo) ListPresented(ctx context.Context, locationID string) ([]checklist.Item, error) {
	return f.presented, nil
}

func (f *fakeChecklistRepo) List(ctx context.Context, locationID *string) ([]checklist.Item, error) {
	return nil, nil
}

func (f *fakeChecklistRepo) GetByID(ctx context.Context, id string) (checklist.Item, error) {
	return checklist.Item{}, checklist.ErrItemNotFound
}

func (f *fakeChecklistRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

type fakeSettingsRepo struct {
	current settings.Settings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	return f.current, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	return s, nil
}

type fakeBinder struct {
	err   error
	bound []session.Photo
}

func (f *fakeBinder) Bind(ctx context.Context, sessionID string, checkoutAt time.Time, uploads []session.PhotoUpload) ([]session.Photo, error) {
	if f.err != nil {
		return nil, f.err
	}
	photos := make([]session.Photo, 0, len(uploads))
	for i := range uploads {
		photos = append(photos, session.Photo{
			SessionID: sessionID,
			Path:      "checkouts/2026-08-31/" + sessionID + "-" + string(rune('1'+i)) + ".jpg",
			SizeBytes: 1024,
		})
	}
	f.bound = photos
	return photos, nil
}

func (f *fakeBinder) SignedURL(ctx context.Context, path string) (string, error) {
	return "https://files.test/" + path, nil
}

type fakeNotifier struct {
	opened []notifier.SessionOpened
	closed []notifier.SessionClosed
}

func (f *fakeNotifier) NotifyCheckin(event notifier.SessionOpened)   { f.opened = append(f.opened, event) }
func (f *fakeNotifier) NotifyCheckout(event notifier.SessionClosed) { f.closed = append(f.closed, event) }
func (f *fakeNotifier) Stop()                                       {}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- fixtures ----

func floatPtr(v float64) *float64 { return &v }

func activeLocation() location.Location {
	return location.Location{
		ID:              "loc-1",
		Name:            "Harbor Office",
		Address:         "1 Quay St",
		Latitude:        floatPtr(0),
		Longitude:       floatPtr(0),
		GeofenceRadius:  100,
		GeofenceEnabled: true,
		IsActive:        true,
	}
}

func defaultSettings() settings.Settings {
	return settings.Settings{
		CompanyName:           "CleanTrack",
		DefaultGeofenceRadius: 100,
		GeofenceEnabled:       true,
		NotifyOnCheckin:       true,
		NotifyOnCheckout:      true,
	}
}

type fixture struct {
	svc      *attendanceService
	sessions *fakeSessionRepo
	assigns  *fakeAssignmentRepo
	locs     *fakeLocationRepo
	profs    *fakeProfileRepo
	lists    *fakeChecklistRepo
	setts    *fakeSettingsRepo
	binder   *fakeBinder
	events   *fakeNotifier
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		sessions: &fakeSessionRepo{},
		assigns:  &fakeAssignmentRepo{active: &assignment.Assignment{ID: "asg-1", CleanerID: testCleanerID, LocationID: "loc-1", IsActive: true}},
		locs:     &fakeLocationRepo{loc: activeLocation()},
		profs:    &fakeProfileRepo{prof: profile.Profile{ID: testCleanerID, FullName: "Maria Lopez", Email: "maria@example.com", Role: auth.RoleCleaner, IsActive: true}},
		lists:    &fakeChecklistRepo{},
		setts:    &fakeSettingsRepo{current: defaultSettings()},
		binder:   &fakeBinder{},
		events:   &fakeNotifier{},
	}

	f.svc = &attendanceService{
		sessions:    f.sessions,
		assignments: f.assigns,
		locations:   f.locs,
		profiles:    f.profs,
		checklists:  f.lists,
		settings:    f.setts,
		binder:      f.binder,
		notifier:    f.events,
		tx:          passthroughTx{},
		now:         func() time.Time { return now },
	}
	return f
}

// ---- check-in ----

func TestCheckInSuccess(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)
	ctx := cleanerContext(t)

	resp, err := f.svc.CheckIn(ctx, session.CheckInRequest{
		LocationID: "loc-1",
		Latitude:   0.0005, // ~55m from center, inside the 100m radius
		Longitude:  0,
	})

	require.NoError(t, err)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "Harbor Office", resp.LocationName)
	assert.True(t, resp.WithinGeofence)
	assert.InDelta(t, 55.6, resp.DistanceMeters, 1.0)

	require.NotNil(t, f.sessions.created)
	assert.Equal(t, session.StatusCheckedIn, f.sessions.created.Status)
	assert.Equal(t, now, f.sessions.created.CheckinAt)

	require.Len(t, f.events.opened, 1)
	assert.Equal(t, "Maria Lopez", f.events.opened[0].CleanerName)
	assert.True(t, f.events.opened[0].NotifyOnCheckin)
}

func TestCheckInOutsideGeofence(t *testing.T) {
	f := newFixture(time.Now())
	ctx := cleanerContext(t)

	_, err := f.svc.CheckIn(ctx, session.CheckInRequest{
		LocationID: "loc-1",
		Latitude:   0.01, // ~1.1km away
		Longitude:  0,
	})

	var geofenceErr *session.OutsideGeofenceError
	require.ErrorAs(t, err, &geofenceErr)
	assert.Equal(t, 100.0, geofenceErr.Radius)
	assert.Greater(t, geofenceErr.Distance, 1000.0)

	assert.Nil(t, f.sessions.created, "no session row on rejection")
	assert.Empty(t, f.events.opened)
}

func TestCheckInEnforcementDisabledGlobally(t *testing.T) {
	f := newFixture(time.Now())
	f.setts.current.GeofenceEnabled = false
	ctx := cleanerContext(t)

	resp, err := f.svc.CheckIn(ctx, session.CheckInRequest{
		LocationID: "loc-1",
		Latitude:   0.01,
		Longitude:  0,
	})

	require.NoError(t, err)
	assert.True(t, resp.WithinGeofence)
	assert.Zero(t, resp.DistanceMeters)
}

func TestCheckInEnforcementDisabledPerLocation(t *testing.T) {
	f := newFixture(time.Now())
	f.locs.loc.GeofenceEnabled = false
	ctx := cleanerContext(t)

	resp, err := f.svc.CheckIn(ctx, session.CheckInRequest{
		LocationID: "loc-1",
		Latitude:   0.01,
		Longitude:  0,
	})

	require.NoError(t, err)
	assert.True(t, resp.WithinGeofence)
}

func TestCheckInAlreadyCheckedIn(t *testing.T) {
	f := newFixture(time.Now())
	f.sessions.open = &session.Session{ID: "sess-0", CleanerID: testCleanerID, Status: session.StatusCheckedIn}
	ctx := cleanerContext(t)

	_, err := f.svc.CheckIn(ctx, session.CheckInRequest{LocationID: "loc-1", Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, session.ErrAlreadyCheckedIn)
}

func TestCheckInNotAssigned(t *testing.T) {
	f := newFixture(time.Now())
	f.assigns.active = nil
	ctx := cleanerContext(t)

	_, err := f.svc.CheckIn(ctx, session.CheckInRequest{LocationID: "loc-1", Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, session.ErrNotAssigned)
}

func TestCheckInInactiveCleaner(t *testing.T) {
	f := newFixture(time.Now())
	f.profs.prof.IsActive = false
	ctx := cleanerContext(t)

	_, err := f.svc.CheckIn(ctx, session.CheckInRequest{LocationID: "loc-1", Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, session.ErrCleanerInactive)
}

func TestCheckInInactiveLocation(t *testing.T) {
	f := newFixture(time.Now())
	f.locs.loc.IsActive = false
	ctx := cleanerContext(t)

	_, err := f.svc.CheckIn(ctx, session.CheckInRequest{LocationID: "loc-1", Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, session.ErrLocationNotAvailable)
}

func TestCheckInLocationMissingCoordinates(t *testing.T) {
	f := newFixture(time.Now())
	f.locs.loc.Latitude = nil
	f.locs.loc.Longitude = nil
	ctx := cleanerContext(t)

	_, err := f.svc.CheckIn(ctx, session.CheckInRequest{LocationID: "loc-1", Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, session.ErrLocationMissingCoordinates)
}

// ---- check-out ----

func openSession(checkinAt time.Time) *session.Session {
	name := "Maria Lopez"
	email := "maria@example.com"
	return &session.Session{
		ID:                    "sess-1",
		CleanerID:             testCleanerID,
		LocationID:            "loc-1",
		AssignmentID:          "asg-1",
		Status:                session.StatusCheckedIn,
		CheckinAt:             checkinAt,
		CheckinWithinGeofence: true,
		CleanerName:           &name,
		CleanerEmail:          &email,
	}
}

func TestCheckOutSuccess(t *testing.T) {
	checkin := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	now := checkin.Add(95 * time.Minute)
	f := newFixture(now)
	f.sessions.open = openSession(checkin)
	f.lists.presented = []checklist.Item{
		{ID: "item-1", Label: "Vacuum floors"},
		{ID: "item-2", Label: "Empty bins"},
		{ID: "item-3", Label: "Clean windows"},
	}
	ctx := cleanerContext(t)

	remarks := "  all done  "
	summary, err := f.svc.CheckOut(ctx, session.CheckOutRequest{
		Latitude:  0.0005,
		Longitude: 0,
		Remarks:   &remarks,
		Tasks: []session.TaskAnswer{
			{ItemID: "item-1", Completed: true},
			{ItemID: "item-2", Completed: true},
		},
		Photos: []session.PhotoUpload{
			{Filename: "a.jpg", Size: 100},
			{Filename: "b.jpg", Size: 100},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 95, summary.DurationMinutes)
	assert.Equal(t, "1h 35m", summary.DurationLabel)
	assert.Equal(t, 2, summary.TasksCompleted)
	assert.Equal(t, 3, summary.TotalTasks)
	assert.Equal(t, 2, summary.PhotosCount)
	assert.True(t, summary.WithinGeofence)
	require.NotNil(t, summary.Remarks)
	assert.Equal(t, "all done", *summary.Remarks)

	assert.Len(t, f.sessions.savedTasks, 3, "one row per presented item")
	assert.Len(t, f.sessions.savedPhotos, 2)

	require.Len(t, f.events.closed, 1)
	assert.Equal(t, "1h 35m", f.events.closed[0].DurationLabel)
	assert.True(t, f.events.closed[0].HasRemarks)
}

func TestCheckOutOutsideGeofenceStillSucceeds(t *testing.T) {
	checkin := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	f := newFixture(checkin.Add(30 * time.Minute))
	f.sessions.open = openSession(checkin)
	ctx := cleanerContext(t)

	summary, err := f.svc.CheckOut(ctx, session.CheckOutRequest{
		Latitude:  0.01, // ~1.1km away
		Longitude: 0,
	})

	require.NoError(t, err)
	assert.False(t, summary.WithinGeofence, "compliance flag records the violation")

	require.NotNil(t, f.sessions.closed)
	require.NotNil(t, f.sessions.closed.CheckoutWithinGeofence)
	assert.False(t, *f.sessions.closed.CheckoutWithinGeofence)
}

func TestCheckOutNoOpenSession(t *testing.T) {
	f := newFixture(time.Now())
	ctx := cleanerContext(t)

	_, err := f.svc.CheckOut(ctx, session.CheckOutRequest{Latitude: 0, Longitude: 0})

	assert.ErrorIs(t, err, session.ErrNoOpenSession)
}

func TestCheckOutBinderFailureAborts(t *testing.T) {
	checkin := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	f := newFixture(checkin.Add(time.Hour))
	f.sessions.open = openSession(checkin)
	f.binder.err = errors.New("disk full")
	ctx := cleanerContext(t)

	_, err := f.svc.CheckOut(ctx, session.CheckOutRequest{
		Latitude:  0,
		Longitude: 0,
		Photos:    []session.PhotoUpload{{Filename: "a.jpg", Size: 100}},
	})

	require.Error(t, err)
	assert.Nil(t, f.sessions.closed, "session stays open when photos cannot be stored")
	assert.Empty(t, f.events.closed)
}

func TestCheckOutClampsNegativeDuration(t *testing.T) {
	checkin := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	// Clock skew: now before check-in
	f := newFixture(checkin.Add(-10 * time.Minute))
	f.sessions.open = openSession(checkin)
	ctx := cleanerContext(t)

	summary, err := f.svc.CheckOut(ctx, session.CheckOutRequest{Latitude: 0, Longitude: 0})

	require.NoError(t, err)
	assert.Equal(t, 0, summary.DurationMinutes)
	assert.Equal(t, "0m", summary.DurationLabel)
}
