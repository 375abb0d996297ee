// My World's Pokémon - content backend
// Serves the site API and publishes AI-written articles on a daily rotation.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/danilomoraisgustavo/myworlds/internal/api"
	"github.com/danilomoraisgustavo/myworlds/internal/app"
	"github.com/danilomoraisgustavo/myworlds/internal/config"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	app.SetupLogging(false)

	log.Info().Msg("My World's Pokémon - Starting content backend")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	app.SetupLogging(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Initialize storage and content pipeline
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close(ctx)

	// Initialize scheduler
	sched, err := application.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	log.Info().Msg("Scheduler initialized")

	apiServer := api.NewServer(application.Store, application.Generator, sched, cfg.HTTPAddr)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start all services
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("API server error")
		}
	}()

	sched.Start()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Str("storage", cfg.StorageDriver).
		Msg("My World's Pokémon backend running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server shutdown error")
	}
	sched.Stop()

	log.Info().Msg("My World's Pokémon backend stopped")
}
