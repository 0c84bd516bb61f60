package checklist

import "time"

// Item is a single checklist entry. Default items apply to every location;
// location items (LocationID set) only appear at that location.
type Item struct {
	ID         string
	Label      string
	IsDefault  bool
	LocationID *string
	SortOrder  int
	IsActive   bool
	CreatedAt  time.Time
}
