package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avenn/stayfinder-be/internal/api"
	"github.com/avenn/stayfinder-be/internal/auth"
	"github.com/avenn/stayfinder-be/internal/config"
	"github.com/avenn/stayfinder-be/internal/database"
	"github.com/avenn/stayfinder-be/internal/logger"
	"github.com/avenn/stayfinder-be/internal/services"
	"github.com/avenn/stayfinder-be/internal/storage"
	"github.com/avenn/stayfinder-be/internal/storage/memory"
	"github.com/avenn/stayfinder-be/internal/storage/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// Pick the storage backend. Both expose the same gateway contract.
	var (
		userStore    storage.UserStore
		placeStore   storage.PlaceStore
		reviewStore  storage.ReviewStore
		amenityStore storage.AmenityStore
		eventStore   storage.EventStore
	)
	switch cfg.StorageDriver {
	case "memory":
		store := memory.New()
		userStore = store.Users()
		placeStore = store.Places()
		reviewStore = store.Reviews()
		amenityStore = store.Amenities()
		eventStore = store.Events()
		log.Warn().Msg("Using in-memory storage: all data is lost on restart")
	default:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
		userStore = sqlite.NewUserStore(db)
		placeStore = sqlite.NewPlaceStore(db)
		reviewStore = sqlite.NewReviewStore(db)
		amenityStore = sqlite.NewAmenityStore(db)
		eventStore = sqlite.NewEventStore(db)
	}

	// Set up services
	eventService := services.NewEventService(eventStore)
	userService := services.NewUserService(userStore, eventService)
	placeService := services.NewPlaceService(placeStore, amenityStore, eventService)
	reviewService := services.NewReviewService(reviewStore, placeStore, eventService)
	amenityService := services.NewAmenityService(amenityStore, eventService)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
		}
	}

	authSvc := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// Set up router
	router := api.NewRouter(authSvc, userService, placeService, reviewService, amenityService, eventService, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("storage", cfg.StorageDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
