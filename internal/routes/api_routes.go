package routes

import (
	"fleet-experiment/tarmac/internal/api"
	"fleet-experiment/tarmac/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes plus the public download
// route. Kept separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies) {

	// Public: single-use signed download links, no API key required.
	r.Group(func(public chi.Router) {
		public.Use(middleware.RateLimitMiddleware)
		public.Get("/public/scenarios/download", handlers.DownloadScenario())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.RateLimitMiddleware)
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys))

		v1.Post("/scenarios", handlers.GenerateScenario())
		v1.Post("/scenarios/bulk", handlers.GenerateBulk())
		v1.Post("/scenarios/queue", handlers.QueueScenario())
		v1.Get("/scenarios/{run_id}", handlers.GetScenario())
		v1.Get("/scenarios/{run_id}/link", handlers.GetDownloadLink())

		v1.Get("/runs", handlers.ListRuns())
		v1.Get("/runs/stats", handlers.GetRunStats())
	})
}
