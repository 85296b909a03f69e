package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/clients/sleeper_client"
	"github.com/mcdev12/draftboard/go/internal/draft/board"
	"github.com/mcdev12/draftboard/go/internal/draft/gateway"
	"github.com/mcdev12/draftboard/go/internal/draft/loader"
	"github.com/mcdev12/draftboard/go/internal/draft/outbox"
	"github.com/mcdev12/draftboard/go/internal/draft/pick"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
)

type Services struct {
	Board   *board.Board
	Gateway *gateway.Service
	Outbox  *outbox.Worker
	closers []func()
}

// Close releases the store and the event publisher.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func setupServices(ctx context.Context, cfg *Config, clock clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Sleeper client → Loader → Board → Gateway, Outbox

	table := ranking.DefaultTable()
	if cfg.Rankings.Table != "" {
		loaded, err := ranking.LoadTable(cfg.Rankings.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to load ranking table: %w", err)
		}
		table = loaded
	}
	log.Info().Str("source", table.Source).Str("season", table.Season).Int("players", table.Len()).Msg("Loaded ranking table")

	store, closeStore, err := setupStore(ctx, cfg.Storage, cfg.LeagueID)
	if err != nil {
		return nil, err
	}

	client := sleeper_client.NewSleeperClient(cfg.Sleeper)
	b := board.New(board.Config{
		LeagueID:   cfg.LeagueID,
		Loader:     loader.NewLoader(client, cfg.DefaultRounds),
		Store:      store,
		Merger:     ranking.NewMerger(table),
		Reconciler: pick.NewReconciler(clock),
	})

	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	gatewayConfig.RequestTimeout = cfg.Server.RequestTimeout

	services := &Services{
		Board:   b,
		Gateway: gateway.NewService(gatewayConfig, b, clock),
		closers: []func(){closeStore},
	}

	var publisher outbox.EventPublisher = outbox.LogPublisher{}
	if cfg.Events.NATSURL != "" {
		natsPublisher, err := outbox.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("failed to set up event publisher: %w", err)
		}
		services.closers = append(services.closers, func() {
			if err := natsPublisher.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close event publisher")
			}
		})
		publisher = natsPublisher
		log.Info().Str("nats_url", cfg.Events.NATSURL).Str("subject_prefix", cfg.Events.SubjectPrefix).Msg("Publishing board events to NATS")
	}
	services.Outbox = outbox.NewWorker(cfg.LeagueID, publisher, outbox.DefaultConfig(), clock)
	b.Subscribe(services.Outbox.Enqueue)

	return services, nil
}
