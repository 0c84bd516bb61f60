package auth

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCleaner Role = "cleaner"
)

// Identity is the authenticated caller resolved from JWT claims.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// FromContext extracts the caller identity from the request's JWT claims.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrUnauthorized
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Identity{}, ErrUnauthorized
	}

	email, _ := claims["email"].(string)

	return Identity{
		UserID: userID,
		Email:  email,
		Role:   Role(roleStr),
	}, nil
}
