package assignment

import "errors"

// Assignment domain errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentExists   = errors.New("assignment already exists")
)
