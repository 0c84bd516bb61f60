package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/email"
)

// SessionOpened is emitted after a check-in commits. It carries the settings
// snapshot taken during the request so a concurrent settings change cannot
// affect whether this event fans out.
type SessionOpened struct {
	CleanerName  string
	CleanerEmail string
	LocationName string
	CheckinAt    time.Time

	CompanyName     string
	LogoURL         string
	NotifyOnCheckin bool
}

// SessionClosed is emitted after a check-out commits.
type SessionClosed struct {
	CleanerName     string
	CleanerEmail    string
	LocationName    string
	LocationAddress string
	CheckinAt       time.Time
	CheckoutAt      time.Time
	DurationLabel   string
	TasksCompleted  int
	TotalTasks      int
	PhotosCount     int
	HasRemarks      bool
	WithinGeofence  bool

	CompanyName      string
	LogoURL          string
	NotifyOnCheckout bool
}

// Notifier fans attendance events out to the cleaner and every active admin.
// Emission never blocks the request path and delivery failures are logged,
// not propagated.
type Notifier interface {
	NotifyCheckin(event SessionOpened)
	NotifyCheckout(event SessionClosed)
	Stop()
}

// Config holds notifier configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

type service struct {
	email    email.Service
	profiles profile.Repository

	queue  chan interface{}
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotifier creates a notifier with background delivery workers.
func NewNotifier(emailSvc email.Service, profiles profile.Repository, cfg Config) Notifier {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		email:    emailSvc,
		profiles: profiles,
		queue:    make(chan interface{}, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	slog.Info("Notifier started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// NotifyCheckin implements Notifier.
func (s *service) NotifyCheckin(event SessionOpened) {
	s.emit(event)
}

// NotifyCheckout implements Notifier.
func (s *service) NotifyCheckout(event SessionClosed) {
	s.emit(event)
}

func (s *service) emit(event interface{}) {
	select {
	case s.queue <- event:
	default:
		slog.Warn("Notification queue full, dropping event")
	}
}

// Stop drains the queue and waits for workers to finish.
func (s *service) Stop() {
	close(s.stopCh)
	close(s.queue)
	s.wg.Wait()
	slog.Info("Notifier stopped")
}

func (s *service) worker() {
	defer s.wg.Done()

	for event := range s.queue {
		switch e := event.(type) {
		case SessionOpened:
			s.deliverCheckin(e)
		case SessionClosed:
			s.deliverCheckout(e)
		}
	}
}

func (s *service) deliverCheckin(e SessionOpened) {
	if !e.NotifyOnCheckin {
		return
	}

	checkinTime := e.CheckinAt.Format("Mon, 02 Jan 2006 15:04")

	if err := s.email.SendCheckin(e.CleanerEmail, email.CheckinEmail{
		CompanyName:  e.CompanyName,
		LogoURL:      e.LogoURL,
		CleanerName:  e.CleanerName,
		LocationName: e.LocationName,
		CheckinTime:  checkinTime,
	}); err != nil {
		slog.Error("Failed to send check-in email to cleaner", "to", e.CleanerEmail, "error", err)
	}

	for _, admin := range s.activeAdmins() {
		if err := s.email.SendCheckin(admin.Email, email.CheckinEmail{
			CompanyName:  e.CompanyName,
			LogoURL:      e.LogoURL,
			CleanerName:  e.CleanerName,
			LocationName: e.LocationName,
			CheckinTime:  checkinTime,
			AdminView:    true,
		}); err != nil {
			slog.Error("Failed to send check-in email to admin", "to", admin.Email, "error", err)
		}
	}
}

func (s *service) deliverCheckout(e SessionClosed) {
	if !e.NotifyOnCheckout {
		return
	}

	data := email.CheckoutEmail{
		CompanyName:     e.CompanyName,
		LogoURL:         e.LogoURL,
		CleanerName:     e.CleanerName,
		LocationName:    e.LocationName,
		LocationAddress: e.LocationAddress,
		CheckinTime:     e.CheckinAt.Format("Mon, 02 Jan 2006 15:04"),
		CheckoutTime:    e.CheckoutAt.Format("Mon, 02 Jan 2006 15:04"),
		DurationLabel:   e.DurationLabel,
		TasksCompleted:  e.TasksCompleted,
		TotalTasks:      e.TotalTasks,
		PhotosCount:     e.PhotosCount,
		HasRemarks:      e.HasRemarks,
		WithinGeofence:  e.WithinGeofence,
	}

	if err := s.email.SendCheckout(e.CleanerEmail, data); err != nil {
		slog.Error("Failed to send check-out email to cleaner", "to", e.CleanerEmail, "error", err)
	}

	adminData := data
	adminData.AdminView = true
	for _, admin := range s.activeAdmins() {
		if err := s.email.SendCheckout(admin.Email, adminData); err != nil {
			slog.Error("Failed to send check-out email to admin", "to", admin.Email, "error", err)
		}
	}
}

func (s *service) activeAdmins() []profile.Profile {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admins, err := s.profiles.ListActiveAdmins(ctx)
	if err != nil {
		slog.Error("Failed to list active admins for notification fan-out", "error", err)
		return nil
	}
	return admins
}
