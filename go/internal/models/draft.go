package models

// DraftStatus defines the status of a draft.
type DraftStatus string

const (
	DraftStatusPreDraft DraftStatus = "pre_draft"
	DraftStatusDrafting DraftStatus = "drafting"
	DraftStatusPaused   DraftStatus = "paused"
	DraftStatusComplete DraftStatus = "complete"
)

// DraftType defines the type of draft.
type DraftType string

const (
	DraftTypeSnake   DraftType = "snake"
	DraftTypeLinear  DraftType = "linear"
	DraftTypeAuction DraftType = "auction"
)

// DraftSettings holds the draft configuration the board needs.
type DraftSettings struct {
	Rounds         int   `json:"rounds"`
	Teams          int   `json:"teams"`
	PickTimer      int   `json:"pick_timer,omitempty"`
	RoundsReversal []int `json:"rounds_reversal,omitempty"` // rounds whose slot order runs backwards
}

// Draft represents a draft instance.
type Draft struct {
	DraftID        string         `json:"draft_id"`
	LeagueID       string         `json:"league_id"`
	Season         string         `json:"season"`
	Status         DraftStatus    `json:"status"`
	Type           DraftType      `json:"type"`
	Created        int64          `json:"created"` // unix millis
	Settings       DraftSettings  `json:"settings"`
	SlotToRosterID map[string]int `json:"slot_to_roster_id,omitempty"`
}

// IsReversed reports whether the given round runs in reverse slot order.
func (s DraftSettings) IsReversed(round int) bool {
	for _, r := range s.RoundsReversal {
		if r == round {
			return true
		}
	}
	return false
}
