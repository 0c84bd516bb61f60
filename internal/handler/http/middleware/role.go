package middleware

import (
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/auth"
	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(auth.RoleAdmin, auth.ErrAdminOnly, next)
}

// RequireCleaner requires cleaner role
func RequireCleaner(next http.Handler) http.Handler {
	return requireRole(auth.RoleCleaner, auth.ErrCleanerOnly, next)
}

func requireRole(want auth.Role, denied error, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, denied)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, denied)
			return
		}

		if auth.Role(roleStr) != want {
			response.HandleError(w, denied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
