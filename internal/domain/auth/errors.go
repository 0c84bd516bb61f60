package auth

import "errors"

// Auth domain errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminOnly          = errors.New("admin access required")
	ErrCleanerOnly        = errors.New("cleaner access required")
)
