package models

// Roster is one team's owned players in a league.
type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	LeagueID string   `json:"league_id,omitempty"`
	Players  []string `json:"players"`
	Starters []string `json:"starters,omitempty"`
}
