package routes

import (
	"net/http"
	"time"

	"fleet-experiment/tarmac/internal/api"
	"fleet-experiment/tarmac/internal/db"
	"fleet-experiment/tarmac/internal/logging"
	"fleet-experiment/tarmac/internal/metrics"
	"fleet-experiment/tarmac/internal/middleware"
	"fleet-experiment/tarmac/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	handlers := api.NewHandlers(deps)

	workers.InitWorkers(deps.Services.Scenario, deps.Services.Queue, metricsReg)

	RegisterAPIRoutes(r, handlers, deps)

	return r
}
