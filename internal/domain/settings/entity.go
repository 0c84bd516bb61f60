package settings

import "time"

// Settings is the single-row organization configuration. Services load a
// snapshot at the start of each operation so a concurrent update cannot
// change enforcement mid-request.
type Settings struct {
	CompanyName           string
	LogoURL               *string
	PrimaryColor          string
	SecondaryColor        string
	DefaultGeofenceRadius float64
	GeofenceEnabled       bool
	NotifyOnCheckin       bool
	NotifyOnCheckout      bool
	UpdatedAt             time.Time
}
