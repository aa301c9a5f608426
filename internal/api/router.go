package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avenn/stayfinder-be/internal/api/handlers"
	"github.com/avenn/stayfinder-be/internal/auth"
	"github.com/avenn/stayfinder-be/internal/services"
)

// NewRouter creates and configures a new Chi router. Read access to places,
// reviews, amenities and user profiles is public; writes require a token and
// catalog or account administration requires the admin role.
func NewRouter(
	authSvc *auth.Service,
	userService services.UserServiceProvider,
	placeService services.PlaceServiceProvider,
	reviewService services.ReviewServiceProvider,
	amenityService services.AmenityServiceProvider,
	eventService services.EventServiceProvider,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, authSvc)
	userHandler := handlers.NewUserHandler(userService)
	placeHandler := handlers.NewPlaceHandler(placeService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	amenityHandler := handlers.NewAmenityHandler(amenityService)
	eventHandler := handlers.NewEventHandler(eventService)
	systemHandler := handlers.NewSystemHandler()

	r.Get("/health", systemHandler.Health)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(authSvc.RequireAuth, authSvc.RequireAdmin).Get("/", userHandler.GetAll)
			r.With(authSvc.RequireAuth, authSvc.RequireAdmin).Post("/", userHandler.Create)
			r.With(authSvc.RequireAuth).Get("/me", userHandler.GetMe)
			r.Get("/{id}", userHandler.Get)
			r.With(authSvc.RequireAuth).Put("/{id}", userHandler.Update)
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/", placeHandler.GetAll)
			r.With(authSvc.RequireAuth).Post("/", placeHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", placeHandler.Get)
				r.Get("/reviews", reviewHandler.GetByPlace)
				r.With(authSvc.RequireAuth).Put("/", placeHandler.Update)
				r.With(authSvc.RequireAuth).Delete("/", placeHandler.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.GetAll)
			r.With(authSvc.RequireAuth).Post("/", reviewHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", reviewHandler.Get)
				r.With(authSvc.RequireAuth).Put("/", reviewHandler.Update)
				r.With(authSvc.RequireAuth).Delete("/", reviewHandler.Delete)
			})
		})

		r.Route("/amenities", func(r chi.Router) {
			r.Get("/", amenityHandler.GetAll)
			r.With(authSvc.RequireAuth, authSvc.RequireAdmin).Post("/", amenityHandler.Create)
			r.Get("/{id}", amenityHandler.Get)
			r.With(authSvc.RequireAuth, authSvc.RequireAdmin).Put("/{id}", amenityHandler.Update)
		})

		r.With(authSvc.RequireAuth, authSvc.RequireAdmin).Get("/events", eventHandler.GetRecent)

		r.Route("/system", func(r chi.Router) {
			r.Use(authSvc.RequireAuth, authSvc.RequireAdmin)
			r.Get("/stats", systemHandler.Stats)
		})
	})

	return r
}
