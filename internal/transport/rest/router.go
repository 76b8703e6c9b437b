package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"pto-tracker/internal/auth"
	"pto-tracker/internal/pto"
	"pto-tracker/internal/transport/middleware"
	"pto-tracker/internal/transport/swagger"
	"pto-tracker/internal/user"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RouterConfig carries the pieces the route table needs.
type RouterConfig struct {
	AllowedOrigins string
	MetricsEnabled bool
	MetricsPath    string
}

// RegisterAllRoutes wires the route table. No version prefix; auth on every
// /pto/* route plus /users/me.
func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, ptoHandler *pto.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics)
	}

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if cfg.MetricsEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, middleware.MetricsHandler())
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)
			pr.Post("/logout", authHandler.Logout)
		})
	})

	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.AuthMiddleware)

		pr.Get("/users/me", userHandler.GetCurrentUser)

		pr.Route("/pto", func(r chi.Router) {
			r.Get("/balance", ptoHandler.GetBalance)
			r.Get("/requests", ptoHandler.GetRequests)
			r.Post("/request", ptoHandler.SubmitRequest)
		})
	})
}
