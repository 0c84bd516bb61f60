package assignment

import "time"

// Assignment links a cleaner to a location. Only active assignments permit
// check-in.
type Assignment struct {
	ID         string
	CleanerID  string
	LocationID string
	IsActive   bool
	CreatedAt  time.Time

	// Joined
	CleanerName     *string
	LocationName    *string
	LocationAddress *string
}
