package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/validator"
)

// Photo evidence limits enforced at check-out
const (
	MaxPhotos        = 5
	MaxPhotoSize     = 5 * 1024 * 1024
	MaxRemarksLength = 500
)

type CheckInRequest struct {
	LocationID string  `json:"location_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TaskAnswer marks one presented checklist item as done or not. Items the
// cleaner never answers are scored as not completed.
type TaskAnswer struct {
	ItemID    string `json:"item_id"`
	Completed bool   `json:"completed"`
}

// PhotoUpload is one incoming evidence file from the multipart form.
type PhotoUpload struct {
	Filename string
	Size     int64
	File     io.Reader
}

type CheckOutRequest struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Remarks   *string      `json:"remarks,omitempty"`
	Tasks     []TaskAnswer `json:"tasks"`
	Photos    []PhotoUpload
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Remarks != nil && len(*r.Remarks) > MaxRemarksLength {
		errs = append(errs, validator.ValidationError{
			Field:   "remarks",
			Message: fmt.Sprintf("remarks must not exceed %d characters", MaxRemarksLength),
		})
	}

	for _, p := range r.Photos {
		if p.Size > MaxPhotoSize {
			errs = append(errs, validator.ValidationError{
				Field:   "photos",
				Message: "photos must not exceed 5 MB each",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInResponse struct {
	SessionID      string  `json:"session_id"`
	LocationID     string  `json:"location_id"`
	LocationName   string  `json:"location_name"`
	CheckinAt      string  `json:"checkin_at"`
	DistanceMeters float64 `json:"distance_meters"`
	WithinGeofence bool    `json:"within_geofence"`
}

type TaskResponse struct {
	ItemID    string `json:"item_id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

type PhotoResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}

// SessionSummary is the closed-session recap shown after check-out and in
// history views.
type SessionSummary struct {
	SessionID       string  `json:"session_id"`
	LocationID      string  `json:"location_id"`
	LocationName    string  `json:"location_name"`
	CheckinAt       string  `json:"checkin_at"`
	CheckoutAt      string  `json:"checkout_at"`
	DurationMinutes int     `json:"duration_minutes"`
	DurationLabel   string  `json:"duration_label"`
	TasksCompleted  int     `json:"tasks_completed"`
	TotalTasks      int     `json:"total_tasks"`
	PhotosCount     int     `json:"photos_count"`
	WithinGeofence  bool    `json:"within_geofence"`
	Remarks         *string `json:"remarks,omitempty"`
}

// SessionDetail is the full record with tasks and signed photo URLs.
type SessionDetail struct {
	ID              string          `json:"id"`
	CleanerID       string          `json:"cleaner_id"`
	CleanerName     *string         `json:"cleaner_name,omitempty"`
	LocationID      string          `json:"location_id"`
	LocationName    *string         `json:"location_name,omitempty"`
	LocationAddress *string         `json:"location_address,omitempty"`
	Status          string          `json:"status"`
	CheckinAt       string          `json:"checkin_at"`
	CheckinWithin   bool            `json:"checkin_within_geofence"`
	CheckoutAt      *string         `json:"checkout_at,omitempty"`
	CheckoutWithin  *bool           `json:"checkout_within_geofence,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Remarks         *string         `json:"remarks,omitempty"`
	Tasks           []TaskResponse  `json:"tasks"`
	Photos          []PhotoResponse `json:"photos"`
}

type Filter struct {
	CleanerID  *string    `json:"cleaner_id,omitempty"`
	LocationID *string    `json:"location_id,omitempty"`
	Status     *string    `json:"status,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{StatusCheckedIn, StatusCheckedOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be checked_in or checked_out",
		})
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionListItem struct {
	ID              string  `json:"id"`
	CleanerID       string  `json:"cleaner_id"`
	CleanerName     *string `json:"cleaner_name,omitempty"`
	LocationID      string  `json:"location_id"`
	LocationName    *string `json:"location_name,omitempty"`
	Status          string  `json:"status"`
	CheckinAt       string  `json:"checkin_at"`
	CheckoutAt      *string `json:"checkout_at,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	WithinGeofence  bool    `json:"within_geofence"`
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Sessions   []SessionListItem `json:"sessions"`
}

// Service defines attendance business logic
type Service interface {
	// CheckIn opens a session after verifying the cleaner's assignment,
	// the location, and the geofence (cleaner)
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes the caller's open session, scoring the checklist and
	// binding photo evidence. Being outside the geofence never rejects a
	// check-out; it only flags compliance. (cleaner)
	CheckOut(ctx context.Context, req CheckOutRequest) (SessionSummary, error)

	// Current returns the caller's open session, or nil (cleaner)
	Current(ctx context.Context) (*SessionDetail, error)

	// History lists the caller's own sessions (cleaner)
	History(ctx context.Context, filter Filter) (ListSessionsResponse, error)

	// ListActivity lists sessions across all cleaners (admin)
	ListActivity(ctx context.Context, filter Filter) (ListSessionsResponse, error)

	// GetSession returns full detail; cleaners can only read their own
	GetSession(ctx context.Context, id string) (SessionDetail, error)
}
