package pick

import (
	"github.com/mcdev12/draftboard/go/internal/models"
)

// Input is everything the reconciler needs to lay out a draft's picks.
type Input struct {
	Draft       *models.Draft
	Picks       []models.DraftPick
	TradedPicks []models.TradedPick
	TeamCount   int
	TotalRounds int
}

// TeamPick pairs a pick with the team that owns it.
type TeamPick struct {
	RosterID int                  `json:"roster_id"`
	TeamName string               `json:"team_name"`
	Pick     models.DraftPickData `json:"pick"`
}

// PlayerDraftInfo locates a player assigned somewhere on the board.
type PlayerDraftInfo struct {
	RosterID   int    `json:"roster_id"`
	TeamName   string `json:"team_name"`
	Round      int    `json:"round"`
	PickNumber int    `json:"pick_number"`
}
