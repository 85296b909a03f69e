package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/dbconfig"
	"github.com/mcdev12/draftboard/go/internal/kvstore"
)

// storageConfig fills in the Postgres DSN from DB_* variables when none is set.
func storageConfig(cfg kvstore.Config) kvstore.Config {
	if cfg.Driver == kvstore.DriverPostgres && cfg.DSN == "" {
		cfg.DSN = dbconfig.NewConfigFromEnv().DSN()
	}
	return cfg
}

// setupStore opens the configured backend, scoped to one league.
func setupStore(ctx context.Context, cfg kvstore.Config, leagueID string) (kvstore.Store, func(), error) {
	cfg = storageConfig(cfg)
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}

	closeFn := func() {}
	if closer, ok := store.(kvstore.Closer); ok {
		closeFn = func() {
			if err := closer.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close store")
			}
		}
	}

	log.Info().Str("driver", cfg.Driver).Str("league_id", leagueID).Msg("Opened board store")
	return kvstore.NewPrefixed(store, "league-"+leagueID), closeFn, nil
}
