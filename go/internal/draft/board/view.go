package board

import (
	"github.com/mcdev12/draftboard/go/internal/draft/needs"
	"github.com/mcdev12/draftboard/go/internal/draft/pick"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
	"github.com/mcdev12/draftboard/go/internal/models"
)

// AvailablePlayer is a ranked player plus where, if anywhere, the user has placed them.
type AvailablePlayer struct {
	models.DraftPlayer
	DraftedBy   *pick.PlayerDraftInfo `json:"drafted_by,omitempty"`
	InWatchlist bool                  `json:"in_watchlist"`
}

// WatchlistEntry is one watchlist row.
type WatchlistEntry struct {
	PlayerID  string                `json:"player_id"`
	Player    *models.Player        `json:"player,omitempty"`
	DraftedBy *pick.PlayerDraftInfo `json:"drafted_by,omitempty"`
}

// View is the fully derived board.
type View struct {
	Version      int64              `json:"version"`
	LeagueID     string             `json:"league_id"`
	DraftID      string             `json:"draft_id,omitempty"`
	Loading      bool               `json:"loading"`
	CustomMode   bool               `json:"custom_mode"`
	ShowVeterans bool               `json:"show_veterans"`
	Query        ranking.Query      `json:"query"`
	TotalRounds  int                `json:"total_rounds"`
	CurrentRound int                `json:"current_round"`
	Positions    []models.Position  `json:"positions"`
	Teams        []models.DraftTeam `json:"teams"`
	Round        []pick.TeamPick    `json:"round"`
	Available    []AvailablePlayer  `json:"available"`
	Watchlist    []WatchlistEntry   `json:"watchlist"`
}

// Deriver computes views from state.
type Deriver struct {
	Merger     *ranking.Merger
	Reconciler *pick.Reconciler
}

// Teams builds the draft order: one team per roster with needs and picks.
// Without a loaded draft there are no teams.
func (d Deriver) Teams(s State) []models.DraftTeam {
	if s.Draft == nil || s.Draft.Draft == nil {
		return []models.DraftTeam{}
	}

	positions := needs.LeaguePositions(s.Slots())
	teamNeeds := needs.Calculate(s.Rosters, s.Players, positions)
	teams := pick.BuildTeams(s.Rosters, s.Users, teamNeeds)

	picks := d.Reconciler.Reconcile(pick.Input{
		Draft:       s.Draft.Draft,
		Picks:       s.Draft.Picks,
		TradedPicks: s.Draft.TradedPicks,
		TeamCount:   len(teams),
		TotalRounds: s.TotalRounds(),
	})
	picks = pick.ApplyAssignments(picks, s.Assignments)
	return pick.GroupByTeam(teams, picks)
}

// Rookies returns the full ranked list, before search and filters.
func (d Deriver) Rookies(s State) []models.DraftPlayer {
	return d.Merger.Merge(s.Players, s.rankingOptions())
}

// View derives the whole board.
func (d Deriver) View(s State) View {
	teams := d.Teams(s)
	available := ranking.Filter(d.Rookies(s), s.Query)

	v := View{
		Loading:      s.Loading,
		CustomMode:   s.CustomMode,
		ShowVeterans: s.ShowVeterans,
		Query:        s.Query,
		TotalRounds:  s.TotalRounds(),
		CurrentRound: s.CurrentRound,
		Positions:    s.Slots(),
		Teams:        teams,
		Round:        pick.RoundPicks(teams, s.CurrentRound),
		Available:    make([]AvailablePlayer, 0, len(available)),
		Watchlist:    make([]WatchlistEntry, 0, len(s.Watchlist)),
	}
	if s.League != nil {
		v.LeagueID = s.League.LeagueID
	}
	if s.Draft != nil && s.Draft.Draft != nil {
		v.DraftID = s.Draft.Draft.DraftID
	}
	if v.Round == nil {
		v.Round = []pick.TeamPick{}
	}

	for _, p := range available {
		ap := AvailablePlayer{DraftPlayer: p, InWatchlist: s.InWatchlist(p.PlayerID)}
		if info, ok := pick.FindPlayer(teams, p.PlayerID); ok {
			ap.DraftedBy = &info
		}
		v.Available = append(v.Available, ap)
	}

	for _, id := range s.Watchlist {
		entry := WatchlistEntry{PlayerID: id}
		if p, ok := s.Players[id]; ok {
			entry.Player = &p
		}
		if info, ok := pick.FindPlayer(teams, id); ok {
			entry.DraftedBy = &info
		}
		v.Watchlist = append(v.Watchlist, entry)
	}
	return v
}
