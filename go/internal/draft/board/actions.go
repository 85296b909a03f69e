package board

import (
	"fmt"

	"github.com/mcdev12/draftboard/go/internal/draft/loader"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
	"github.com/mcdev12/draftboard/go/internal/models"
)

// Env carries the collaborators actions need to rank players.
type Env struct {
	Merger *ranking.Merger
}

// Action is a single state change.
type Action interface {
	// Name identifies the action in logs and events.
	Name() string
	// apply mutates s and returns the persisted keys it changed.
	apply(s *State, env Env) ([]string, error)
}

// Reduce applies a to a copy of s. On error s is returned unchanged.
func Reduce(s State, a Action, env Env) (State, []string, error) {
	next := s.clone()
	dirty, err := a.apply(&next, env)
	if err != nil {
		return s, nil, err
	}
	return next, dirty, nil
}

// AssignPlayer puts a player on a pick, replacing any earlier assignment.
type AssignPlayer struct {
	Round      int    `json:"round"`
	PickNumber int    `json:"pick_number"`
	PlayerID   string `json:"player_id"`
}

func (AssignPlayer) Name() string { return "assign_player" }

func (a AssignPlayer) apply(s *State, _ Env) ([]string, error) {
	if a.PlayerID == "" {
		return nil, fmt.Errorf("assign: %w", ErrMissingPlayerID)
	}
	s.Assignments[models.PickKey{Round: a.Round, PickNumber: a.PickNumber}] = a.PlayerID
	return []string{KeyAssignments}, nil
}

// ClearPick removes whatever player is assigned to a pick.
type ClearPick struct {
	Round      int `json:"round"`
	PickNumber int `json:"pick_number"`
}

func (ClearPick) Name() string { return "clear_pick" }

func (a ClearPick) apply(s *State, _ Env) ([]string, error) {
	delete(s.Assignments, models.PickKey{Round: a.Round, PickNumber: a.PickNumber})
	return []string{KeyAssignments}, nil
}

// AddToWatchlist appends a player unless already present.
type AddToWatchlist struct {
	PlayerID string `json:"player_id"`
}

func (AddToWatchlist) Name() string { return "add_to_watchlist" }

func (a AddToWatchlist) apply(s *State, _ Env) ([]string, error) {
	if a.PlayerID == "" {
		return nil, fmt.Errorf("watchlist: %w", ErrMissingPlayerID)
	}
	if s.InWatchlist(a.PlayerID) {
		return nil, nil
	}
	s.Watchlist = append(s.Watchlist, a.PlayerID)
	return []string{KeyWatchlist}, nil
}

// RemoveFromWatchlist drops a player, keeping the rest in order.
type RemoveFromWatchlist struct {
	PlayerID string `json:"player_id"`
}

func (RemoveFromWatchlist) Name() string { return "remove_from_watchlist" }

func (a RemoveFromWatchlist) apply(s *State, _ Env) ([]string, error) {
	kept := s.Watchlist[:0]
	for _, id := range s.Watchlist {
		if id != a.PlayerID {
			kept = append(kept, id)
		}
	}
	s.Watchlist = kept
	return []string{KeyWatchlist}, nil
}

// ToggleWatchlist adds the player when absent and removes it when present.
type ToggleWatchlist struct {
	PlayerID string `json:"player_id"`
}

func (ToggleWatchlist) Name() string { return "toggle_watchlist" }

func (a ToggleWatchlist) apply(s *State, env Env) ([]string, error) {
	if s.InWatchlist(a.PlayerID) {
		return RemoveFromWatchlist(a).apply(s, env)
	}
	return AddToWatchlist(a).apply(s, env)
}

// SetRankings replaces every saved custom rank.
type SetRankings struct {
	Ranks map[string]int `json:"ranks"`
}

func (SetRankings) Name() string { return "set_rankings" }

func (a SetRankings) apply(s *State, _ Env) ([]string, error) {
	s.SavedRanks = make(map[string]int, len(a.Ranks))
	for id, rank := range a.Ranks {
		if rank > 0 {
			s.SavedRanks[id] = rank
		}
	}
	return []string{KeyRankings}, nil
}

// MovePlayer swaps a player with its neighbour in the ranked list and saves
// the whole list order. Custom mode only.
type MovePlayer struct {
	PlayerID  string            `json:"player_id"`
	Direction ranking.Direction `json:"direction"`
}

func (MovePlayer) Name() string { return "move_player" }

func (a MovePlayer) apply(s *State, env Env) ([]string, error) {
	if !s.CustomMode {
		return nil, ErrCustomModeRequired
	}
	if a.Direction != ranking.Up && a.Direction != ranking.Down {
		return nil, fmt.Errorf("%q: %w", a.Direction, ErrInvalidDirection)
	}
	list := env.Merger.Merge(s.Players, s.rankingOptions())
	index := ranking.IndexOf(list, a.PlayerID)
	if index < 0 {
		return nil, fmt.Errorf("move %s: %w", a.PlayerID, ErrPlayerNotFound)
	}
	s.SavedRanks = ranking.ToSaved(ranking.Move(list, index, a.Direction))
	return []string{KeyRankings}, nil
}

// MovePlayerTo moves a player to a list index and saves the whole list order.
// Custom mode only. Moving a player onto its own index changes nothing.
type MovePlayerTo struct {
	PlayerID    string `json:"player_id"`
	TargetIndex int    `json:"target_index"`
}

func (MovePlayerTo) Name() string { return "move_player_to" }

func (a MovePlayerTo) apply(s *State, env Env) ([]string, error) {
	if !s.CustomMode {
		return nil, ErrCustomModeRequired
	}
	list := env.Merger.Merge(s.Players, s.rankingOptions())
	index := ranking.IndexOf(list, a.PlayerID)
	if index < 0 {
		return nil, fmt.Errorf("move %s: %w", a.PlayerID, ErrPlayerNotFound)
	}
	moved, ok := ranking.MoveTo(list, index, a.TargetIndex)
	if !ok {
		return nil, nil
	}
	s.SavedRanks = ranking.ToSaved(moved)
	return []string{KeyRankings}, nil
}

// SetCustomRankingsMode turns custom ranking on or off. Turning it off saves
// the list order as shown in custom mode.
type SetCustomRankingsMode struct {
	Enabled bool `json:"enabled"`
}

func (SetCustomRankingsMode) Name() string { return "set_custom_rankings_mode" }

func (a SetCustomRankingsMode) apply(s *State, env Env) ([]string, error) {
	var dirty []string
	if s.CustomMode && !a.Enabled {
		s.SavedRanks = ranking.ToSaved(env.Merger.Merge(s.Players, s.rankingOptions()))
		dirty = []string{KeyRankings}
	}
	s.CustomMode = a.Enabled
	return dirty, nil
}

// SetShowVeterans includes or excludes non-rookies from the player list.
type SetShowVeterans struct {
	Show bool `json:"show"`
}

func (SetShowVeterans) Name() string { return "set_show_veterans" }

func (a SetShowVeterans) apply(s *State, _ Env) ([]string, error) {
	s.ShowVeterans = a.Show
	return nil, nil
}

// SetQuery changes the player list search, position filter and sort.
type SetQuery struct {
	Query ranking.Query `json:"query"`
}

func (SetQuery) Name() string { return "set_query" }

func (a SetQuery) apply(s *State, _ Env) ([]string, error) {
	if !a.Query.Valid() {
		return nil, ErrInvalidQuery
	}
	q := a.Query
	if q.Position == "" {
		q.Position = ranking.AllPositions
	}
	if q.SortBy == "" {
		q.SortBy = ranking.SortByRank
	}
	s.Query = q
	return nil, nil
}

// SetCurrentRound selects the round shown in the round view.
type SetCurrentRound struct {
	Round int `json:"round"`
}

func (SetCurrentRound) Name() string { return "set_current_round" }

func (a SetCurrentRound) apply(s *State, _ Env) ([]string, error) {
	if a.Round < 1 || a.Round > s.TotalRounds() {
		return nil, fmt.Errorf("round %d of %d: %w", a.Round, s.TotalRounds(), ErrInvalidRound)
	}
	s.CurrentRound = a.Round
	return nil, nil
}

// LoadStarted marks the board as loading.
type LoadStarted struct{}

func (LoadStarted) Name() string { return "load_started" }

func (LoadStarted) apply(s *State, _ Env) ([]string, error) {
	s.Loading = true
	return nil, nil
}

// DraftLoaded stores the outcome of a platform load. A nil League keeps the
// previous league data; a nil Draft empties the draft.
type DraftLoaded struct {
	League *loader.LeagueData
	Draft  *loader.DraftData
}

func (DraftLoaded) Name() string { return "draft_loaded" }

func (a DraftLoaded) apply(s *State, _ Env) ([]string, error) {
	if a.League != nil {
		s.League = a.League.League
		s.Rosters = a.League.Rosters
		s.Users = a.League.Users
		s.Players = a.League.Players
	}
	s.Draft = a.Draft
	s.Loading = false
	if s.CurrentRound > s.TotalRounds() {
		s.CurrentRound = 1
	}
	return nil, nil
}

// Restore replaces the user-owned state with what was persisted.
type Restore struct {
	Ranks       map[string]int
	Assignments map[models.PickKey]string
	Watchlist   []string
}

func (Restore) Name() string { return "restore" }

func (a Restore) apply(s *State, _ Env) ([]string, error) {
	if a.Ranks != nil {
		s.SavedRanks = a.Ranks
	}
	if a.Assignments != nil {
		s.Assignments = a.Assignments
	}
	if a.Watchlist != nil {
		s.Watchlist = dedupe(a.Watchlist)
	}
	return nil, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
