package routes

import (
	"github.com/andysilva90/flight-fare-optimizer/internal/api"
	"github.com/andysilva90/flight-fare-optimizer/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {

	itinerarySvc := deps.Services.Itinerary
	datasetSvc := deps.Services.Dataset
	signer := deps.Services.Signer

	// Shared itinerary links are public: the token is the credential.
	r.Group(func(public chi.Router) {
		public.Use(middleware.RateLimitMiddleware)
		public.Get("/shared/{token}", api.SharedItineraryHandler(itinerarySvc, signer))
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.RateLimitMiddleware)
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys))

		v1.Get("/flights", api.ListFlightsHandler(itinerarySvc))

		v1.Route("/itineraries", func(it chi.Router) {
			it.Post("/cheapest", api.CheapestFlightHandler(itinerarySvc))
			it.Post("/route", api.CheapestRouteHandler(itinerarySvc))
			it.Post("/share", api.ShareItineraryHandler(signer))
		})

		v1.Route("/admin/data", func(admin chi.Router) {
			admin.Post("/import", api.ImportDatasetHandler(datasetSvc))
			admin.Get("/stats", api.DatasetStatsHandler(datasetSvc))
		})
	})
}
