package ranking

import (
	"github.com/mcdev12/draftboard/go/internal/models"
)

var slotPositions = map[models.Position]bool{
	models.PositionQB:        true,
	models.PositionRB:        true,
	models.PositionWR:        true,
	models.PositionTE:        true,
	models.PositionFlex:      true,
	models.PositionSuperFlex: true,
	models.PositionRecFlex:   true,
}

// ValidSlots returns the league's distinct offensive roster slots in first-seen
// order. A nil league or one without roster positions gets QB, RB, WR, TE.
func ValidSlots(league *models.League) []models.Position {
	if league == nil || len(league.RosterPositions) == 0 {
		return append([]models.Position(nil), models.SkillPositions...)
	}
	seen := make(map[models.Position]bool)
	var out []models.Position
	for _, raw := range league.RosterPositions {
		pos := models.Position(raw)
		if !slotPositions[pos] || seen[pos] {
			continue
		}
		seen[pos] = true
		out = append(out, pos)
	}
	return out
}

// Eligible reports whether a player at position can fill one of slots.
func Eligible(position models.Position, slots []models.Position) bool {
	if !position.IsSkill() {
		return false
	}
	for _, slot := range slots {
		switch slot {
		case position:
			return true
		case models.PositionFlex:
			if position == models.PositionRB || position == models.PositionWR || position == models.PositionTE {
				return true
			}
		case models.PositionSuperFlex:
			return true
		case models.PositionRecFlex:
			if position == models.PositionWR || position == models.PositionTE {
				return true
			}
		}
	}
	return false
}
