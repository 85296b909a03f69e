package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/draft/loader"
	"github.com/mcdev12/draftboard/go/internal/draft/pick"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
	"github.com/mcdev12/draftboard/go/internal/kvstore"
	"github.com/mcdev12/draftboard/go/internal/models"
)

// Update is sent to subscribers after every applied action.
type Update struct {
	Action  string `json:"action"`
	Version int64  `json:"version"`
}

// Board is the draft board service for one league.
type Board struct {
	leagueID string
	loader   *loader.Loader
	persist  *Persistence
	deriver  Deriver

	mu      sync.Mutex
	state   State
	version int64

	subMu  sync.RWMutex
	nextID int
	subs   map[int]func(Update)
}

// Config wires a Board.
type Config struct {
	LeagueID   string
	Loader     *loader.Loader
	Store      kvstore.Store
	Merger     *ranking.Merger
	Reconciler *pick.Reconciler
}

func New(cfg Config) *Board {
	merger := cfg.Merger
	if merger == nil {
		merger = ranking.NewMerger(ranking.DefaultTable())
	}
	reconciler := cfg.Reconciler
	if reconciler == nil {
		reconciler = pick.NewReconciler(nil)
	}
	store := cfg.Store
	if store == nil {
		store = kvstore.NewMemory()
	}

	return &Board{
		leagueID: cfg.LeagueID,
		loader:   cfg.Loader,
		persist:  NewPersistence(store),
		deriver:  Deriver{Merger: merger, Reconciler: reconciler},
		state:    NewState(),
		subs:     make(map[int]func(Update)),
	}
}

func (b *Board) LeagueID() string {
	return b.leagueID
}

// Load restores the persisted rankings, assignments and watchlist.
func (b *Board) Load(ctx context.Context) {
	restored := b.persist.Restore(ctx)
	b.apply(restored)

	log.Info().
		Str("league_id", b.leagueID).
		Int("saved_ranks", len(restored.Ranks)).
		Int("assignments", len(restored.Assignments)).
		Int("watchlist", len(restored.Watchlist)).
		Msg("Restored board state")
}

// Refresh reloads the league and its draft from the platform. On failure the
// error is logged, loading is cleared and the draft is left empty; the error
// is also returned.
func (b *Board) Refresh(ctx context.Context) error {
	if b.loader == nil {
		return fmt.Errorf("board has no loader")
	}
	b.apply(LoadStarted{})

	league, err := b.loader.LoadLeague(ctx, b.leagueID)
	if err != nil {
		log.Error().Err(err).Str("league_id", b.leagueID).Msg("Error fetching league data")
		b.apply(DraftLoaded{})
		return err
	}

	draft, err := b.loader.Load(ctx, league.League)
	if err != nil {
		log.Error().Err(err).Str("league_id", b.leagueID).Msg("Error fetching draft data")
		b.apply(DraftLoaded{League: league})
		return err
	}

	b.apply(DraftLoaded{League: league, Draft: draft})
	return nil
}

// Dispatch validates and applies a user action, persists what it changed,
// and notifies subscribers. Nothing changes when any step fails.
func (b *Board) Dispatch(ctx context.Context, action Action) error {
	b.mu.Lock()
	if err := b.validate(action); err != nil {
		b.mu.Unlock()
		return err
	}

	next, dirty, err := Reduce(b.state, action, b.env())
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if err := b.persist.Save(ctx, next, dirty); err != nil {
		b.mu.Unlock()
		log.Error().Err(err).Str("action", action.Name()).Msg("Failed to persist board state")
		return err
	}
	b.state = next
	b.version++
	update := Update{Action: action.Name(), Version: b.version}
	b.mu.Unlock()

	log.Debug().Str("action", action.Name()).Int64("version", update.Version).Strs("persisted", dirty).Msg("Applied board action")
	b.notify(update)
	return nil
}

// apply runs an internal action that needs no validation or persistence.
func (b *Board) apply(action Action) {
	b.mu.Lock()
	next, _, err := Reduce(b.state, action, b.env())
	if err != nil {
		b.mu.Unlock()
		log.Error().Err(err).Str("action", action.Name()).Msg("Failed to apply board action")
		return
	}
	b.state = next
	b.version++
	update := Update{Action: action.Name(), Version: b.version}
	b.mu.Unlock()

	b.notify(update)
}

func (b *Board) validate(action Action) error {
	switch a := action.(type) {
	case AssignPlayer:
		key := models.PickKey{Round: a.Round, PickNumber: a.PickNumber}
		if a.PlayerID == "" {
			return fmt.Errorf("assign %s: %w", key, ErrMissingPlayerID)
		}
		if !b.hasPick(key) {
			return fmt.Errorf("assign %s: %w", key, ErrPickNotFound)
		}
		if !b.knownPlayer(a.PlayerID) {
			return fmt.Errorf("assign %s: %w", a.PlayerID, ErrPlayerNotFound)
		}
	case AddToWatchlist:
		if a.PlayerID == "" {
			return fmt.Errorf("watchlist: %w", ErrMissingPlayerID)
		}
		if !b.knownPlayer(a.PlayerID) {
			return fmt.Errorf("watchlist %s: %w", a.PlayerID, ErrPlayerNotFound)
		}
	case ToggleWatchlist:
		if !b.state.InWatchlist(a.PlayerID) && !b.knownPlayer(a.PlayerID) {
			return fmt.Errorf("watchlist %s: %w", a.PlayerID, ErrPlayerNotFound)
		}
	case LoadStarted, DraftLoaded, Restore:
		return fmt.Errorf("%s cannot be dispatched", action.Name())
	}
	return nil
}

func (b *Board) hasPick(key models.PickKey) bool {
	for _, team := range b.deriver.Teams(b.state) {
		if pick.HasPick(team.Picks, key) {
			return true
		}
	}
	return false
}

// knownPlayer accepts any non-empty ID until players have been loaded.
func (b *Board) knownPlayer(playerID string) bool {
	if playerID == "" {
		return false
	}
	if len(b.state.Players) == 0 {
		return true
	}
	_, ok := b.state.Players[playerID]
	return ok
}

func (b *Board) env() Env {
	return Env{Merger: b.deriver.Merger}
}

// State returns a copy of the current state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.clone()
}

// View derives the current board.
func (b *Board) View() View {
	b.mu.Lock()
	s := b.state.clone()
	version := b.version
	b.mu.Unlock()

	v := b.deriver.View(s)
	v.Version = version
	if v.LeagueID == "" {
		v.LeagueID = b.leagueID
	}
	return v
}

// RoundView returns the picks of one round, by pick number.
func (b *Board) RoundView(round int) ([]pick.TeamPick, error) {
	b.mu.Lock()
	s := b.state.clone()
	b.mu.Unlock()

	if round < 1 || round > s.TotalRounds() {
		return nil, fmt.Errorf("round %d of %d: %w", round, s.TotalRounds(), ErrInvalidRound)
	}
	picks := pick.RoundPicks(b.deriver.Teams(s), round)
	if picks == nil {
		picks = []pick.TeamPick{}
	}
	return picks, nil
}

// Subscribe registers fn for updates and returns a func that unregisters it.
// fn runs on the dispatching goroutine and must not block.
func (b *Board) Subscribe(fn func(Update)) (unsubscribe func()) {
	b.subMu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.subMu.Unlock()

	return func() {
		b.subMu.Lock()
		delete(b.subs, id)
		b.subMu.Unlock()
	}
}

func (b *Board) notify(u Update) {
	b.subMu.RLock()
	fns := make([]func(Update), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.subMu.RUnlock()

	for _, fn := range fns {
		fn(u)
	}
}
