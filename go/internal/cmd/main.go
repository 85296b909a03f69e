package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	closeLog := setupLogging(cfg.Log)
	defer closeLog()
	if envErr != nil {
		log.Debug().Err(envErr).Msg("Could not load .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := setupServices(ctx, cfg, clockwork.NewRealClock())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up services")
	}
	defer services.Close()

	if err := services.Outbox.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start outbox worker")
	}

	services.Board.Load(ctx)
	if err := services.Board.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial board load failed; retry with POST /api/board/refresh")
	}

	go func() {
		if err := services.Gateway.Start(ctx); err != nil {
			log.Error().Err(err).Msg("Board gateway failed")
		}
	}()

	server := setupServer(cfg.Server, services)
	go func() {
		log.Info().Str("addr", server.Addr).Str("league_id", cfg.LeagueID).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("Draft board shutdown complete")
}
