// Package needs scores each roster's depth at the offensive skill positions
// against the league average.
//
// A score of 0 means the roster sits at the league average. Each 10% of the
// average that a roster is above or below moves the score by 1, bounded to
// [-10, 10]. Negative scores are needs, positive scores are strengths.
package needs

import (
	"math"

	"github.com/mcdev12/draftboard/go/internal/models"
)

const (
	MaxScore = 10.0
	MinScore = -10.0
)

// LeaguePositions keeps the skill positions present in the league's valid slots,
// in QB, RB, WR, TE order.
func LeaguePositions(valid []models.Position) []models.Position {
	present := make(map[models.Position]bool, len(valid))
	for _, p := range valid {
		present[p] = true
	}
	var out []models.Position
	for _, p := range models.SkillPositions {
		if present[p] {
			out = append(out, p)
		}
	}
	return out
}

// Score maps a roster's count at a position onto [-10, 10] relative to avg.
// A zero average yields 0.
func Score(count int, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	diff := float64(count) - avg
	raw := diff / (avg * 0.1)
	return clamp(roundTenth(raw), MinScore, MaxScore)
}

// roundTenth rounds to one decimal, halves toward +Inf.
func roundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Count tallies a roster's players at each of positions. Unknown player IDs and
// players at other positions are ignored.
func Count(roster models.Roster, players map[string]models.Player, positions []models.Position) map[models.Position]int {
	counts := make(map[models.Position]int, len(positions))
	for _, pos := range positions {
		counts[pos] = 0
	}
	for _, id := range roster.Players {
		player, ok := players[id]
		if !ok {
			continue
		}
		if _, tracked := counts[player.Position]; tracked {
			counts[player.Position]++
		}
	}
	return counts
}

// Calculate returns, per roster ID, the need data at each of positions.
func Calculate(rosters []models.Roster, players map[string]models.Player, positions []models.Position) map[int]map[models.Position]models.PositionNeedData {
	counts := make(map[int]map[models.Position]int, len(rosters))
	sums := make(map[models.Position]int, len(positions))
	for _, roster := range rosters {
		c := Count(roster, players, positions)
		counts[roster.RosterID] = c
		for pos, n := range c {
			sums[pos] += n
		}
	}

	avgs := make(map[models.Position]float64, len(positions))
	for _, pos := range positions {
		if len(rosters) > 0 {
			avgs[pos] = float64(sums[pos]) / float64(len(rosters))
		}
	}

	out := make(map[int]map[models.Position]models.PositionNeedData, len(rosters))
	for _, roster := range rosters {
		teamNeeds := make(map[models.Position]models.PositionNeedData, len(positions))
		for _, pos := range positions {
			count := counts[roster.RosterID][pos]
			avg := avgs[pos]
			teamNeeds[pos] = models.PositionNeedData{
				Count: count,
				Avg:   avg,
				Diff:  float64(count) - avg,
				Score: Score(count, avg),
			}
		}
		out[roster.RosterID] = teamNeeds
	}
	return out
}
