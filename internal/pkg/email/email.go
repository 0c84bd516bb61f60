package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// CheckinEmail holds the data rendered into the check-in notification.
// AdminView switches between the cleaner-facing and admin-facing wording.
type CheckinEmail struct {
	CompanyName  string
	LogoURL      string
	CleanerName  string
	LocationName string
	CheckinTime  string
	AdminView    bool
}

// CheckoutEmail holds the data rendered into the check-out summary email.
type CheckoutEmail struct {
	CompanyName     string
	LogoURL         string
	CleanerName     string
	LocationName    string
	LocationAddress string
	CheckinTime     string
	CheckoutTime    string
	DurationLabel   string
	TasksCompleted  int
	TotalTasks      int
	PhotosCount     int
	HasRemarks      bool
	WithinGeofence  bool
	AdminView       bool
}

type AssignmentEmail struct {
	CompanyName  string
	CleanerName  string
	LocationName string
	Address      string
}

type InvitationEmail struct {
	CompanyName string
	InviteLink  string
	ExpiresAt   string
}

// Service defines the interface for sending emails
type Service interface {
	SendCheckin(to string, data CheckinEmail) error
	SendCheckout(to string, data CheckoutEmail) error
	SendAssignment(to string, data AssignmentEmail) error
	SendInvitation(to string, data InvitationEmail) error
}

type serviceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewService creates a new email service instance
func NewService(cfg config.SMTPConfig) (Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &serviceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

func (s *serviceImpl) SendCheckin(to string, data CheckinEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "checkin.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Checked in at %s", data.LocationName)
	if data.AdminView {
		subject = fmt.Sprintf("%s checked in at %s", data.CleanerName, data.LocationName)
	}
	return s.sendHTML(to, subject, body.String())
}

func (s *serviceImpl) SendCheckout(to string, data CheckoutEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "checkout.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Checked out from %s", data.LocationName)
	if data.AdminView {
		subject = fmt.Sprintf("%s checked out from %s", data.CleanerName, data.LocationName)
	}
	return s.sendHTML(to, subject, body.String())
}

func (s *serviceImpl) SendAssignment(to string, data AssignmentEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "assignment.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("New location assigned: %s", data.LocationName), body.String())
}

func (s *serviceImpl) SendInvitation(to string, data InvitationEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "invitation.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("You're invited to join %s", data.CompanyName), body.String())
}

func (s *serviceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
