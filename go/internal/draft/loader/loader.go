// Package loader fetches a league and its current draft from the fantasy platform.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// DefaultRounds is used when a draft does not say how many rounds it has.
const DefaultRounds = 5

var ErrNoDraft = errors.New("no draft found for league")

// DraftSource is the slice of the platform API the draft loader reads.
type DraftSource interface {
	ListLeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error)
	GetDraft(ctx context.Context, draftID string) (*models.Draft, error)
	GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error)
	GetTradedPicks(ctx context.Context, draftID string) ([]models.TradedPick, error)
}

// LeagueSource is the slice of the platform API the league loader reads.
type LeagueSource interface {
	GetLeague(ctx context.Context, leagueID string) (*models.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	GetUsers(ctx context.Context, leagueID string) ([]models.User, error)
	GetPlayers(ctx context.Context) (map[string]models.Player, error)
}

// Source is the full platform API the board needs.
type Source interface {
	DraftSource
	LeagueSource
}

// DraftData is one draft with its picks and trades.
type DraftData struct {
	Draft       *models.Draft       `json:"draft"`
	Picks       []models.DraftPick  `json:"picks"`
	TradedPicks []models.TradedPick `json:"traded_picks"`
	TotalRounds int                 `json:"total_rounds"`
}

// LeagueData is the league reference data the board derives from.
type LeagueData struct {
	League  *models.League           `json:"league"`
	Rosters []models.Roster          `json:"rosters"`
	Users   []models.User            `json:"users"`
	Players map[string]models.Player `json:"-"`
}

type Loader struct {
	source        Source
	defaultRounds int
}

func NewLoader(source Source, defaultRounds int) *Loader {
	if defaultRounds <= 0 {
		defaultRounds = DefaultRounds
	}
	return &Loader{source: source, defaultRounds: defaultRounds}
}

// LoadLeague fetches the league, its rosters, its users and the player
// reference set concurrently. Any failure fails the whole load.
func (l *Loader) LoadLeague(ctx context.Context, leagueID string) (*LeagueData, error) {
	data := &LeagueData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		league, err := l.source.GetLeague(gctx, leagueID)
		data.League = league
		return err
	})
	g.Go(func() error {
		rosters, err := l.source.GetRosters(gctx, leagueID)
		data.Rosters = rosters
		return err
	})
	g.Go(func() error {
		users, err := l.source.GetUsers(gctx, leagueID)
		data.Users = users
		return err
	})
	g.Go(func() error {
		players, err := l.source.GetPlayers(gctx)
		data.Players = players
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load league %s: %w", leagueID, err)
	}

	log.Info().
		Str("league_id", leagueID).
		Int("rosters", len(data.Rosters)).
		Int("users", len(data.Users)).
		Int("players", len(data.Players)).
		Msg("Loaded league data")
	return data, nil
}

// Load picks the league's draft (its configured draft ID, else the most recently
// created one) and fetches the draft, its picks and its traded picks concurrently.
func (l *Loader) Load(ctx context.Context, league *models.League) (*DraftData, error) {
	if league == nil || league.LeagueID == "" {
		return nil, fmt.Errorf("league is required")
	}

	drafts, err := l.source.ListLeagueDrafts(ctx, league.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	draftID := SelectDraftID(league, drafts)
	if draftID == "" {
		log.Error().Str("league_id", league.LeagueID).Msg("Could not find a valid draft ID")
		return nil, ErrNoDraft
	}

	data := &DraftData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		draft, err := l.source.GetDraft(gctx, draftID)
		data.Draft = draft
		return err
	})
	g.Go(func() error {
		picks, err := l.source.GetDraftPicks(gctx, draftID)
		data.Picks = picks
		return err
	})
	g.Go(func() error {
		traded, err := l.source.GetTradedPicks(gctx, draftID)
		data.TradedPicks = traded
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load draft %s: %w", draftID, err)
	}

	data.TotalRounds = l.defaultRounds
	if data.Draft != nil && data.Draft.Settings.Rounds > 0 {
		data.TotalRounds = data.Draft.Settings.Rounds
	}

	log.Info().
		Str("league_id", league.LeagueID).
		Str("draft_id", draftID).
		Int("picks", len(data.Picks)).
		Int("traded_picks", len(data.TradedPicks)).
		Int("rounds", data.TotalRounds).
		Msg("Loaded draft data")
	return data, nil
}

// SelectDraftID returns the league's configured draft, else the draft with the
// greatest creation time, else "".
func SelectDraftID(league *models.League, drafts []models.Draft) string {
	if league != nil && league.DraftID != "" {
		return league.DraftID
	}
	if len(drafts) == 0 {
		return ""
	}
	sorted := append([]models.Draft(nil), drafts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created > sorted[j].Created
	})
	return sorted[0].DraftID
}
