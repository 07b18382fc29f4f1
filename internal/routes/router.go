package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/andysilva90/flight-fare-optimizer/internal/api"
	"github.com/andysilva90/flight-fare-optimizer/internal/db"
	"github.com/andysilva90/flight-fare-optimizer/internal/jobs"
	"github.com/andysilva90/flight-fare-optimizer/internal/logging"
	"github.com/andysilva90/flight-fare-optimizer/internal/metrics"
	"github.com/andysilva90/flight-fare-optimizer/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Periodic dataset refresh from disk, if configured
	jobs.InitializeJobs(context.Background(), deps.Services.Dataset)

	RegisterAPIRoutes(r, deps)

	return r
}
