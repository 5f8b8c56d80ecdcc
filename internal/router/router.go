package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/peakbaguio/peak-baguio/internal/api/auth"
	"github.com/peakbaguio/peak-baguio/internal/api/category"
	"github.com/peakbaguio/peak-baguio/internal/api/itinerary"
	"github.com/peakbaguio/peak-baguio/internal/api/options"
	"github.com/peakbaguio/peak-baguio/internal/api/report"
	"github.com/peakbaguio/peak-baguio/internal/api/spot"
)

// Config carries the handlers and middleware the router mounts. Server-wide
// middleware (request ID, logging, recoverer) is applied in main.go before
// this router is mounted.
type Config struct {
	AuthHandler      *auth.Handler
	SpotHandler      *spot.Handler
	CategoryHandler  *category.Handler
	OptionsHandler   *options.Handler
	ItineraryHandler *itinerary.Handler
	ReportHandler    *report.Handler

	Authenticate func(http.Handler) http.Handler
	RequireAdmin func(http.Handler) http.Handler
}

// SetupRouter wires the public, authenticated and admin route groups.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.Refresh)

			r.Get("/categories", cfg.CategoryHandler.List)
			r.Get("/categories/{categoryID}", cfg.CategoryHandler.Get)

			r.Get("/spots", cfg.SpotHandler.List)
			r.Get("/spots/{spotID}", cfg.SpotHandler.Get)
			r.Get("/spots/{spotID}/activities", cfg.SpotHandler.ListActivities)
			r.Get("/spots/{spotID}/dining", cfg.SpotHandler.ListDining)

			r.Get("/options", cfg.OptionsHandler.List)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Post("/itineraries", cfg.ItineraryHandler.Generate)
			r.Get("/itineraries", cfg.ItineraryHandler.List)
			r.Get("/itineraries/{itineraryID}", cfg.ItineraryHandler.Get)
			r.Post("/itineraries/{itineraryID}/plan", cfg.ItineraryHandler.Plan)
			r.Post("/itineraries/{itineraryID}/used", cfg.ItineraryHandler.MarkUsed)
			r.Delete("/itineraries/{itineraryID}", cfg.ItineraryHandler.Delete)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)
			r.Use(cfg.RequireAdmin)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/categories", cfg.CategoryHandler.Create)
				r.Put("/categories/{categoryID}", cfg.CategoryHandler.Update)
				r.Delete("/categories/{categoryID}", cfg.CategoryHandler.Delete)

				r.Post("/spots", cfg.SpotHandler.Create)
				r.Put("/spots/{spotID}", cfg.SpotHandler.Update)
				r.Delete("/spots/{spotID}", cfg.SpotHandler.Delete)
				r.Post("/spots/{spotID}/activities", cfg.SpotHandler.AddActivity)
				r.Delete("/spots/{spotID}/activities/{activityID}", cfg.SpotHandler.RemoveActivity)
				r.Post("/spots/{spotID}/dining", cfg.SpotHandler.AddDining)
				r.Delete("/spots/{spotID}/dining/{diningID}", cfg.SpotHandler.RemoveDining)

				r.Post("/options/{kind}", cfg.OptionsHandler.Create)
				r.Put("/options/{kind}/{optionID}", cfg.OptionsHandler.Update)
				r.Delete("/options/{kind}/{optionID}", cfg.OptionsHandler.Delete)

				r.Get("/reports/usage", cfg.ReportHandler.Usage)
			})
		})
	})

	return r
}
