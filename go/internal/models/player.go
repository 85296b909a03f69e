package models

import "strings"

// Position is a player position or a league roster slot.
type Position string

const (
	PositionQB        Position = "QB"
	PositionRB        Position = "RB"
	PositionWR        Position = "WR"
	PositionTE        Position = "TE"
	PositionFlex      Position = "FLEX"
	PositionSuperFlex Position = "SUPER_FLEX"
	PositionRecFlex   Position = "REC_FLEX"
)

// SkillPositions are the offensive positions the draft board deals with, in display order.
var SkillPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// IsSkill reports whether p is one of QB, RB, WR or TE.
func (p Position) IsSkill() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	}
	return false
}

// RookieStatus is the platform status code for a rookie.
const RookieStatus = "R"

// Player represents an NFL player as reported by the fantasy platform
type Player struct {
	PlayerID         string   `json:"player_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	FullName         string   `json:"full_name,omitempty"`
	Position         Position `json:"position"`
	FantasyPositions []string `json:"fantasy_positions,omitempty"`
	Team             string   `json:"team,omitempty"`
	YearsExp         *int     `json:"years_exp,omitempty"` // nil when the platform has no value
	College          string   `json:"college,omitempty"`
	Status           string   `json:"status,omitempty"`
}

// Name returns "First Last".
func (p Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsRookie reports whether the player has exactly zero years of experience
// or carries the rookie status code.
func (p Player) IsRookie() bool {
	if p.YearsExp != nil && *p.YearsExp == 0 {
		return true
	}
	return p.Status == RookieStatus
}

// DraftPlayer is a Player augmented with its draft board ranking.
type DraftPlayer struct {
	Player
	Rank         int  `json:"rank"`
	ExternalRank int  `json:"external_rank,omitempty"` // 1-based ranking table index, 0 when unmatched
	IsRookie     bool `json:"is_rookie"`
}
