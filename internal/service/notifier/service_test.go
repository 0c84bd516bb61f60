package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentCheckin struct {
	to   string
	data email.CheckinEmail
}

type sentCheckout struct {
	to   string
	data email.CheckoutEmail
}

// recordingEmail captures sends; workers deliver concurrently so access is
// guarded.
type recordingEmail struct {
	mu        sync.Mutex
	checkins  []sentCheckin
	checkouts []sentCheckout
}

func (r *recordingEmail) SendCheckin(to string, data email.CheckinEmail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkins = append(r.checkins, sentCheckin{to: to, data: data})
	return nil
}

func (r *recordingEmail) SendCheckout(to string, data email.CheckoutEmail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkouts = append(r.checkouts, sentCheckout{to: to, data: data})
	return nil
}

func (r *recordingEmail) SendAssignment(to string, data email.AssignmentEmail) error { return nil }

func (r *recordingEmail) SendInvitation(to string, data email.InvitationEmail) error { return nil }

type adminProfileRepo struct {
	admins []profile.Profile
}

func (f *adminProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (f *adminProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *adminProfileRepo) GetByEmail(ctx context.Context, e string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *adminProfileRepo) ListCleaners(ctx context.Context, filter profile.CleanerFilter) ([]profile.Profile, int64, error) {
	return nil, 0, nil
}

func (f *adminProfileRepo) ListActiveAdmins(ctx context.Context) ([]profile.Profile, error) {
	return f.admins, nil
}

func (f *adminProfileRepo) Update(ctx context.Context, p profile.Profile) error { return nil }

func (f *adminProfileRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func twoAdmins() []profile.Profile {
	return []profile.Profile{
		{ID: "admin-1", Email: "owner@example.com", Role: auth.RoleAdmin, IsActive: true},
		{ID: "admin-2", Email: "ops@example.com", Role: auth.RoleAdmin, IsActive: true},
	}
}

func TestNotifyCheckinFansOutToCleanerAndAdmins(t *testing.T) {
	mail := &recordingEmail{}
	n := NewNotifier(mail, &adminProfileRepo{admins: twoAdmins()}, Config{WorkerCount: 1})

	n.NotifyCheckin(SessionOpened{
		CleanerName:     "Maria Lopez",
		CleanerEmail:    "maria@example.com",
		LocationName:    "Harbor Office",
		CheckinAt:       time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		CompanyName:     "CleanTrack",
		NotifyOnCheckin: true,
	})
	n.Stop()

	require.Len(t, mail.checkins, 3)

	assert.Equal(t, "maria@example.com", mail.checkins[0].to)
	assert.False(t, mail.checkins[0].data.AdminView)

	adminTo := []string{mail.checkins[1].to, mail.checkins[2].to}
	assert.ElementsMatch(t, []string{"owner@example.com", "ops@example.com"}, adminTo)
	assert.True(t, mail.checkins[1].data.AdminView)
	assert.True(t, mail.checkins[2].data.AdminView)

	assert.Equal(t, "Mon, 31 Aug 2026 09:00", mail.checkins[0].data.CheckinTime)
}

func TestNotifyCheckinRespectsToggle(t *testing.T) {
	mail := &recordingEmail{}
	n := NewNotifier(mail, &adminProfileRepo{admins: twoAdmins()}, Config{WorkerCount: 1})

	n.NotifyCheckin(SessionOpened{
		CleanerEmail:    "maria@example.com",
		NotifyOnCheckin: false,
	})
	n.Stop()

	assert.Empty(t, mail.checkins)
}

func TestNotifyCheckoutFansOutWithSummary(t *testing.T) {
	mail := &recordingEmail{}
	n := NewNotifier(mail, &adminProfileRepo{admins: twoAdmins()}, Config{WorkerCount: 1})

	n.NotifyCheckout(SessionClosed{
		CleanerName:      "Maria Lopez",
		CleanerEmail:     "maria@example.com",
		LocationName:     "Harbor Office",
		CheckinAt:        time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		CheckoutAt:       time.Date(2026, 8, 31, 10, 35, 0, 0, time.UTC),
		DurationLabel:    "1h 35m",
		TasksCompleted:   2,
		TotalTasks:       3,
		PhotosCount:      2,
		WithinGeofence:   true,
		CompanyName:      "CleanTrack",
		NotifyOnCheckout: true,
	})
	n.Stop()

	require.Len(t, mail.checkouts, 3)

	cleanerMail := mail.checkouts[0]
	assert.Equal(t, "maria@example.com", cleanerMail.to)
	assert.False(t, cleanerMail.data.AdminView)
	assert.Equal(t, "1h 35m", cleanerMail.data.DurationLabel)
	assert.Equal(t, 2, cleanerMail.data.TasksCompleted)
	assert.Equal(t, 3, cleanerMail.data.TotalTasks)

	assert.True(t, mail.checkouts[1].data.AdminView)
	assert.True(t, mail.checkouts[2].data.AdminView)
}

func TestNotifyCheckoutRespectsToggle(t *testing.T) {
	mail := &recordingEmail{}
	n := NewNotifier(mail, &adminProfileRepo{admins: twoAdmins()}, Config{WorkerCount: 1})

	n.NotifyCheckout(SessionClosed{
		CleanerEmail:     "maria@example.com",
		NotifyOnCheckout: false,
	})
	n.Stop()

	assert.Empty(t, mail.checkouts)
}

func TestStopDrainsQueuedEvents(t *testing.T) {
	mail := &recordingEmail{}
	n := NewNotifier(mail, &adminProfileRepo{}, Config{WorkerCount: 1, QueueSize: 16})

	for i := 0; i < 5; i++ {
		n.NotifyCheckin(SessionOpened{
			CleanerEmail:    "maria@example.com",
			NotifyOnCheckin: true,
		})
	}
	n.Stop()

	// No admins configured, so exactly one email per event.
	assert.Len(t, mail.checkins, 5)
}
