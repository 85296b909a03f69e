package models

// League represents a fantasy league and the configuration the draft board reads from it
type League struct {
	LeagueID        string   `json:"league_id"`
	Name            string   `json:"name"`
	Season          string   `json:"season"`
	Status          string   `json:"status"`
	DraftID         string   `json:"draft_id"`
	RosterPositions []string `json:"roster_positions"`
	TotalRosters    int      `json:"total_rosters"`
}
