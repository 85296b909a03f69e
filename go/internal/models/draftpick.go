package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DraftPick is a pick that has actually been made on the platform.
type DraftPick struct {
	Round     int    `json:"round"`
	PickNo    int    `json:"pick_no"` // pick number overall
	RosterID  int    `json:"roster_id"`
	PlayerID  string `json:"player_id,omitempty"`
	PickedBy  string `json:"picked_by,omitempty"`
	DraftSlot int    `json:"draft_slot"`
	IsKeeper  *bool  `json:"is_keeper,omitempty"`
}

// TradedPick reassigns a future pick from its original roster to a new owner.
type TradedPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"` // original owner
	PreviousOwnerID int    `json:"previous_owner_id"`
	OwnerID         int    `json:"owner_id"` // current owner
}

// Key identifies the traded pick by season, round and original roster.
func (t TradedPick) Key() string {
	return TradedPickKey(t.Season, t.Round, t.RosterID)
}

// TradedPickKey builds the season/round/original-roster lookup key.
func TradedPickKey(season string, round, rosterID int) string {
	return fmt.Sprintf("%s_%d_%d", season, round, rosterID)
}

// DraftPickData is the board's normalized view of a pick.
type DraftPickData struct {
	Round            int    `json:"round"`
	OriginalRosterID int    `json:"original_roster_id"`
	RosterID         int    `json:"roster_id"` // effective owner after trades
	PickNumber       int    `json:"pick_number"`
	PlayerID         string `json:"player_id,omitempty"`
	IsTraded         bool   `json:"is_traded"`
}

// Key returns the (round, pick number) key of the pick.
func (p DraftPickData) Key() PickKey {
	return PickKey{Round: p.Round, PickNumber: p.PickNumber}
}

// PickKey identifies a pick slot on the board.
type PickKey struct {
	Round      int
	PickNumber int
}

// String returns the persisted form "<round>_<pick>".
func (k PickKey) String() string {
	return fmt.Sprintf("%d_%d", k.Round, k.PickNumber)
}

// MarshalText lets PickKey be used as a JSON object key.
func (k PickKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses "<round>_<pick>".
func (k *PickKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePickKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePickKey parses the persisted "<round>_<pick>" form.
func ParsePickKey(s string) (PickKey, error) {
	roundStr, pickStr, ok := strings.Cut(s, "_")
	if !ok {
		return PickKey{}, fmt.Errorf("invalid pick key %q", s)
	}
	round, err := strconv.Atoi(roundStr)
	if err != nil {
		return PickKey{}, fmt.Errorf("invalid round in pick key %q: %w", s, err)
	}
	pick, err := strconv.Atoi(pickStr)
	if err != nil {
		return PickKey{}, fmt.Errorf("invalid pick in pick key %q: %w", s, err)
	}
	return PickKey{Round: round, PickNumber: pick}, nil
}

// PositionNeedData describes how a roster compares to the league at one position.
type PositionNeedData struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Diff  float64 `json:"diff"`
	Score float64 `json:"score"` // -10 (need) .. 10 (strength)
}

// DraftTeam is a roster as shown on the board, with its picks and needs.
type DraftTeam struct {
	RosterID int                           `json:"roster_id"`
	UserID   string                        `json:"user_id"`
	Username string                        `json:"username"`
	TeamName string                        `json:"team_name,omitempty"`
	Avatar   string                        `json:"avatar,omitempty"`
	Picks    []DraftPickData               `json:"picks"`
	Needs    map[Position]PositionNeedData `json:"needs"`
}

// DisplayName returns the team name, falling back to the username.
func (t DraftTeam) DisplayName() string {
	if t.TeamName != "" {
		return t.TeamName
	}
	return t.Username
}
