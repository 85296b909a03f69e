package pick

import (
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// Reconciler turns platform draft data into the board's pick list.
type Reconciler struct {
	clock clockwork.Clock
}

// NewReconciler creates a Reconciler. The clock supplies the season when a draft omits it.
func NewReconciler(clock clockwork.Clock) *Reconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reconciler{clock: clock}
}

// Reconcile returns the picks made so far when the draft has any, otherwise
// the expected rounds x teams layout with trades applied.
func (r *Reconciler) Reconcile(in Input) []models.DraftPickData {
	if len(in.Picks) > 0 {
		return normalizeRealPicks(in.Picks)
	}
	return r.generateExpectedPicks(in)
}

func normalizeRealPicks(picks []models.DraftPick) []models.DraftPickData {
	out := make([]models.DraftPickData, 0, len(picks))
	for _, p := range picks {
		out = append(out, models.DraftPickData{
			Round:            p.Round,
			OriginalRosterID: p.RosterID,
			RosterID:         p.RosterID,
			PickNumber:       p.PickNo,
			PlayerID:         p.PlayerID,
		})
	}
	return out
}

// generateExpectedPicks lays out one pick per (round, slot). Reversal rounds run
// the slots backwards; pick numbers always run forwards.
func (r *Reconciler) generateExpectedPicks(in Input) []models.DraftPickData {
	numTeams := in.TeamCount
	if numTeams <= 0 || in.TotalRounds <= 0 {
		return nil
	}

	var settings models.DraftSettings
	slotToRoster := map[string]int{}
	season := ""
	if in.Draft != nil {
		settings = in.Draft.Settings
		if in.Draft.SlotToRosterID != nil {
			slotToRoster = in.Draft.SlotToRosterID
		}
		season = in.Draft.Season
	}
	if season == "" {
		season = strconv.Itoa(r.clock.Now().Year())
	}

	traded := make(map[string]models.TradedPick, len(in.TradedPicks))
	for _, tp := range in.TradedPicks {
		traded[tp.Key()] = tp
	}

	picks := make([]models.DraftPickData, 0, in.TotalRounds*numTeams)
	for round := 1; round <= in.TotalRounds; round++ {
		reversed := settings.IsReversed(round)
		for slot := 1; slot <= numTeams; slot++ {
			actualSlot := slot
			if reversed {
				actualSlot = numTeams - slot + 1
			}

			// unmapped slots fall back to the draft-order slot, not the reversed one
			rosterID, ok := slotToRoster[strconv.Itoa(actualSlot)]
			if !ok || rosterID == 0 {
				rosterID = slot
			}

			pick := models.DraftPickData{
				Round:            round,
				OriginalRosterID: rosterID,
				RosterID:         rosterID,
				PickNumber:       (round-1)*numTeams + slot,
			}
			if tp, ok := traded[models.TradedPickKey(season, round, rosterID)]; ok {
				pick.RosterID = tp.OwnerID
				pick.IsTraded = true
			}
			picks = append(picks, pick)
		}
	}

	log.Debug().
		Str("season", season).
		Int("rounds", in.TotalRounds).
		Int("teams", numTeams).
		Int("picks", len(picks)).
		Msg("Generated expected draft picks")
	return picks
}

// ApplyAssignments returns a copy of picks with the user's (round, pick) player
// assignments written over PlayerID.
func ApplyAssignments(picks []models.DraftPickData, assignments map[models.PickKey]string) []models.DraftPickData {
	out := make([]models.DraftPickData, len(picks))
	copy(out, picks)
	for i := range out {
		if playerID, ok := assignments[out[i].Key()]; ok && playerID != "" {
			out[i].PlayerID = playerID
		}
	}
	return out
}

// HasPick reports whether key names a pick in picks.
func HasPick(picks []models.DraftPickData, key models.PickKey) bool {
	for _, p := range picks {
		if p.Key() == key {
			return true
		}
	}
	return false
}
