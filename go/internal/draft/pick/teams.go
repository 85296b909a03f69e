package pick

import (
	"sort"

	"github.com/mcdev12/draftboard/go/internal/models"
)

const (
	unknownUserID   = "unknown"
	unknownUsername = "Unknown"
)

// BuildTeams creates one DraftTeam per roster, ordered by roster ID, with the
// owner's name and the roster's needs attached. Picks are left empty.
func BuildTeams(rosters []models.Roster, users []models.User, needs map[int]map[models.Position]models.PositionNeedData) []models.DraftTeam {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	teams := make([]models.DraftTeam, 0, len(rosters))
	for _, roster := range rosters {
		team := models.DraftTeam{
			RosterID: roster.RosterID,
			UserID:   unknownUserID,
			Username: unknownUsername,
			Picks:    []models.DraftPickData{},
			Needs:    needs[roster.RosterID],
		}
		if u, ok := byID[roster.OwnerID]; ok {
			team.UserID = u.UserID
			team.Username = u.Name()
			team.TeamName = u.Metadata.TeamName
			team.Avatar = u.Avatar
		}
		if team.Needs == nil {
			team.Needs = map[models.Position]models.PositionNeedData{}
		}
		teams = append(teams, team)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].RosterID < teams[j].RosterID
	})
	return teams
}

// GroupByTeam returns copies of teams with each pick attached to the team that
// owns it. Picks owned by a roster with no team are dropped.
func GroupByTeam(teams []models.DraftTeam, picks []models.DraftPickData) []models.DraftTeam {
	out := make([]models.DraftTeam, len(teams))
	index := make(map[int]int, len(teams))
	for i, t := range teams {
		t.Picks = []models.DraftPickData{}
		out[i] = t
		index[t.RosterID] = i
	}
	for _, p := range picks {
		if i, ok := index[p.RosterID]; ok {
			out[i].Picks = append(out[i].Picks, p)
		}
	}
	return out
}

// RoundPicks returns every pick of round across teams, by ascending pick number.
func RoundPicks(teams []models.DraftTeam, round int) []TeamPick {
	var out []TeamPick
	for _, t := range teams {
		for _, p := range t.Picks {
			if p.Round == round {
				out = append(out, TeamPick{RosterID: t.RosterID, TeamName: t.DisplayName(), Pick: p})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pick.PickNumber < out[j].Pick.PickNumber
	})
	return out
}

// FindPlayer returns the first team and pick holding playerID, in team order.
func FindPlayer(teams []models.DraftTeam, playerID string) (PlayerDraftInfo, bool) {
	if playerID == "" {
		return PlayerDraftInfo{}, false
	}
	for _, t := range teams {
		for _, p := range t.Picks {
			if p.PlayerID == playerID {
				return PlayerDraftInfo{
					RosterID:   t.RosterID,
					TeamName:   t.DisplayName(),
					Round:      p.Round,
					PickNumber: p.PickNumber,
				}, true
			}
		}
	}
	return PlayerDraftInfo{}, false
}
