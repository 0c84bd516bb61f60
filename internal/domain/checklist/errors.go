package checklist

import "errors"

// Checklist domain errors
var (
	ErrItemNotFound = errors.New("checklist item not found")
)
