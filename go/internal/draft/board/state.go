// Package board holds the rookie draft board's application state.
//
// State is a plain value. Every change goes through Reduce with one of the
// Action types in this package, which keeps the assignment, watchlist and
// ranking rules in one place regardless of how the change was requested.
// Board wraps State with loading, persistence and change notification.
package board

import (
	"errors"

	"github.com/mcdev12/draftboard/go/internal/draft/loader"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
	"github.com/mcdev12/draftboard/go/internal/models"
)

// Persisted keys.
const (
	KeyRankings    = "rookieRankings"
	KeyAssignments = "teamSelections"
	KeyWatchlist   = "draftCheatSheet"
)

var (
	ErrPickNotFound       = errors.New("pick not found on the board")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMissingPlayerID    = errors.New("player id is required")
	ErrCustomModeRequired = errors.New("custom rankings mode is off")
	ErrInvalidQuery       = errors.New("invalid player list query")
	ErrInvalidRound       = errors.New("invalid round")
	ErrInvalidDirection   = errors.New("invalid move direction")
)

// State is everything the board shows, before derivation.
type State struct {
	League  *models.League
	Rosters []models.Roster
	Users   []models.User
	Players map[string]models.Player

	Draft   *loader.DraftData
	Loading bool

	CustomMode   bool
	ShowVeterans bool
	Query        ranking.Query
	CurrentRound int

	SavedRanks  map[string]int
	Assignments map[models.PickKey]string
	Watchlist   []string
}

// NewState returns an empty board showing round 1 in rank order.
func NewState() State {
	return State{
		Query:        ranking.DefaultQuery(),
		CurrentRound: 1,
		SavedRanks:   map[string]int{},
		Assignments:  map[models.PickKey]string{},
		Watchlist:    []string{},
	}
}

// clone copies the user-owned collections. Loaded platform data is shared
// because nothing mutates it after loading.
func (s State) clone() State {
	out := s
	out.SavedRanks = make(map[string]int, len(s.SavedRanks))
	for k, v := range s.SavedRanks {
		out.SavedRanks[k] = v
	}
	out.Assignments = make(map[models.PickKey]string, len(s.Assignments))
	for k, v := range s.Assignments {
		out.Assignments[k] = v
	}
	out.Watchlist = append([]string{}, s.Watchlist...)
	return out
}

// TotalRounds is the number of rounds on the board.
func (s State) TotalRounds() int {
	if s.Draft != nil && s.Draft.TotalRounds > 0 {
		return s.Draft.TotalRounds
	}
	return loader.DefaultRounds
}

// Slots returns the league's valid offensive slots.
func (s State) Slots() []models.Position {
	return ranking.ValidSlots(s.League)
}

// rankingOptions builds merge options from the current modes.
func (s State) rankingOptions() ranking.Options {
	return ranking.Options{
		CustomMode:   s.CustomMode,
		ShowVeterans: s.ShowVeterans,
		Saved:        s.SavedRanks,
		Slots:        s.Slots(),
	}
}

// InWatchlist reports whether playerID is on the watchlist.
func (s State) InWatchlist(playerID string) bool {
	for _, id := range s.Watchlist {
		if id == playerID {
			return true
		}
	}
	return false
}
