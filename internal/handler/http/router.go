package http

import (
	"log/slog"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	StaffService   staff.StaffService
}

type Handlers struct {
	Auth       AuthHandler
	Staff      StaffHandler
	Attendance AttendanceHandler
	Salary     SalaryHandler
	Health     HealthHandler
}

func NewRouter(JWTService jwt.Service, cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	staffMiddleware := middleware.NewStaffMiddleware(cfg.StaffService)

	r.Use(cfg.Metrics.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", cfg.Metrics.Handler())
	if h.Health != nil {
		r.Get("/healthz", h.Health.Ready)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/session", h.Auth.Session)
			r.Get("/staff/me", h.Staff.GetMyProfile)

			r.Group(func(r chi.Router) {
				r.Use(staffMiddleware.RequireStaff)

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/", h.Attendance.Mark)
					r.Get("/today", h.Attendance.GetToday)
					r.Get("/history", h.Attendance.GetHistory)
					r.Get("/month", h.Attendance.GetMonth)
				})

				r.Get("/salary", h.Salary.GetBreakdown)
			})
		})
	})

	return r
}
