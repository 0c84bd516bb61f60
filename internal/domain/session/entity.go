package session

import "time"

// Session status values
const (
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
)

// Session is one attendance record: a check-in, optionally closed by a
// check-out. At most one open session exists per cleaner at any time.
type Session struct {
	ID           string
	CleanerID    string
	LocationID   string
	AssignmentID string
	Status       string

	CheckinAt             time.Time
	CheckinLatitude       float64
	CheckinLongitude      float64
	CheckinDistanceMeters float64
	CheckinWithinGeofence bool

	CheckoutAt             *time.Time
	CheckoutLatitude       *float64
	CheckoutLongitude      *float64
	CheckoutDistanceMeters *float64
	CheckoutWithinGeofence *bool

	Remarks *string

	CreatedAt time.Time

	// Joined
	CleanerName     *string
	CleanerEmail    *string
	LocationName    *string
	LocationAddress *string
}

// DurationMinutes returns whole minutes between check-in and check-out,
// never negative. Zero for open sessions.
func (s Session) DurationMinutes() int {
	if s.CheckoutAt == nil {
		return 0
	}
	mins := int(s.CheckoutAt.Sub(s.CheckinAt).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

// Task is one scored checklist row recorded at check-out.
type Task struct {
	ID        string
	SessionID string
	ItemID    string
	Label     string
	Completed bool
	CreatedAt time.Time
}

// Photo is one stored piece of check-out evidence.
type Photo struct {
	ID        string
	SessionID string
	Path      string
	SizeBytes int64
	CreatedAt time.Time
}
