package http

import (
	"log/slog"
	"os"

	"github.com/cleantrack/cleantrack-backend-go/internal/config"
	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/middleware"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Cleaner    CleanerHandler
	Location   LocationHandler
	Assignment AssignmentHandler
	Checklist  ChecklistHandler
	Settings   SettingsHandler
	Invitation InvitationHandler
	File       FileHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cleantrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Signed photo evidence links; the signature is the auth.
	r.Get("/files", h.File.Serve)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		r.Get("/settings/public", h.Settings.GetPublic)
		r.Post("/invitations/accept", h.Invitation.Accept)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Cleaner.GetMe)
				r.Put("/", h.Cleaner.UpdateMe)
			})

			r.Get("/sessions/{id}", h.Attendance.Get)

			// Cleaner only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCleaner)

				r.Get("/assignments/my", h.Assignment.ListMine)

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/checkin", h.Attendance.CheckIn)
					r.Post("/checkout", h.Attendance.CheckOut)
					r.Get("/current", h.Attendance.Current)
					r.Get("/history", h.Attendance.History)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/activity", h.Attendance.ListActivity)

				r.Route("/cleaners", func(r chi.Router) {
					r.Get("/", h.Cleaner.List)
					r.Get("/{id}", h.Cleaner.Get)
					r.Post("/{id}/activate", h.Cleaner.Activate)
					r.Post("/{id}/deactivate", h.Cleaner.Deactivate)
				})

				r.Route("/locations", func(r chi.Router) {
					r.Get("/", h.Location.List)
					r.Post("/", h.Location.Create)
					r.Get("/{id}", h.Location.Get)
					r.Put("/{id}", h.Location.Update)
					r.Post("/{id}/activate", h.Location.Activate)
					r.Post("/{id}/deactivate", h.Location.Deactivate)
				})

				r.Route("/assignments", func(r chi.Router) {
					r.Get("/", h.Assignment.List)
					r.Post("/", h.Assignment.Create)
					r.Post("/{id}/activate", h.Assignment.Activate)
					r.Post("/{id}/deactivate", h.Assignment.Deactivate)
				})

				r.Route("/checklist-items", func(r chi.Router) {
					r.Get("/", h.Checklist.List)
					r.Post("/", h.Checklist.Create)
					r.Post("/{id}/activate", h.Checklist.Activate)
					r.Post("/{id}/deactivate", h.Checklist.Deactivate)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.Settings.Get)
					r.Patch("/", h.Settings.Update)
				})

				r.Route("/invitations", func(r chi.Router) {
					r.Get("/", h.Invitation.List)
					r.Post("/", h.Invitation.Invite)
					r.Post("/{id}/resend", h.Invitation.Resend)
					r.Delete("/{id}", h.Invitation.Revoke)
				})
			})
		})
	})
	return r
}
