package board

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/kvstore"
	"github.com/mcdev12/draftboard/go/internal/models"
)

// Persistence reads and writes the board's user-owned state.
type Persistence struct {
	store kvstore.Store
}

func NewPersistence(store kvstore.Store) *Persistence {
	return &Persistence{store: store}
}

// Restore reads every persisted key. Missing keys yield nil fields; unreadable
// or corrupt values are logged and treated as missing.
func (p *Persistence) Restore(ctx context.Context) Restore {
	var r Restore

	var ranks map[string]int
	if p.load(ctx, KeyRankings, &ranks) {
		r.Ranks = ranks
	}

	var assignments map[models.PickKey]string
	if p.load(ctx, KeyAssignments, &assignments) {
		r.Assignments = assignments
	}

	var watchlist []string
	if p.load(ctx, KeyWatchlist, &watchlist) {
		r.Watchlist = watchlist
	}
	return r
}

func (p *Persistence) load(ctx context.Context, key string, out any) bool {
	found, err := kvstore.GetJSON(ctx, p.store, key, out)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Ignoring unreadable saved board state")
		return false
	}
	return found
}

// Save writes the named keys from s.
func (p *Persistence) Save(ctx context.Context, s State, keys []string) error {
	for _, key := range keys {
		var value any
		switch key {
		case KeyRankings:
			value = s.SavedRanks
		case KeyAssignments:
			value = s.Assignments
		case KeyWatchlist:
			value = s.Watchlist
		default:
			return fmt.Errorf("unknown board key %q", key)
		}
		if err := kvstore.SetJSON(ctx, p.store, key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}
