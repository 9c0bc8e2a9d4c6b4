package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"hos-trip-planner/internal/api/handlers"
	"hos-trip-planner/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(geocoder ports.Geocoder, routes ports.RouteProvider, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	tripHandler := &handlers.TripHandler{
		Geocoder: geocoder,
		Routes:   routes,
	}
	geocodeHandler := &handlers.GeocodeHandler{Geocoder: geocoder}

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate-route", tripHandler.CalculateRoute)
		r.Get("/geocode", geocodeHandler.Geocode)
		r.Get("/location-suggestions", geocodeHandler.Suggestions)
	})

	return r
}
