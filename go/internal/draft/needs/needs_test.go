package needs

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mcdev12/draftboard/go/internal/models"
)

func TestScore(t *testing.T) {
	tests := map[string]struct {
		count int
		avg   float64
		want  float64
	}{
		"at average":        {count: 3, avg: 3, want: 0},
		"ten percent below": {count: 9, avg: 10, want: -1},
		"half below":        {count: 1, avg: 2, want: -5},
		"clamped high":      {count: 6, avg: 2, want: 10},
		"clamped low":       {count: 0, avg: 2, want: -10},
		"rounded tenth":     {count: 1, avg: 0.75, want: 3.3},
		"zero average":      {count: 0, avg: 0, want: 0},
		"half rounds up":    {count: 9, avg: 8, want: 1.3},
		"negative half":     {count: 7, avg: 8, want: -1.2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Score(tc.count, tc.avg)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Score(%d, %v): expected %v, got %v", tc.count, tc.avg, tc.want, got)
			}
		})
	}
}

func TestScoreMonotonic(t *testing.T) {
	avg := 2.5
	prev := Score(0, avg)
	for count := 1; count <= 6; count++ {
		got := Score(count, avg)
		if got < prev {
			t.Fatalf("score decreased from %v to %v at count %d", prev, got, count)
		}
		prev = got
	}
}

func TestLeaguePositions(t *testing.T) {
	tests := map[string]struct {
		valid []models.Position
		want  []models.Position
	}{
		"superflex league": {
			valid: []models.Position{models.PositionTE, models.PositionQB, models.PositionFlex, models.PositionSuperFlex, models.PositionRB, models.PositionWR},
			want:  []models.Position{models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE},
		},
		"no tight end": {
			valid: []models.Position{models.PositionQB, models.PositionRB, models.PositionWR, models.PositionFlex},
			want:  []models.Position{models.PositionQB, models.PositionRB, models.PositionWR},
		},
		"empty": {},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, LeaguePositions(tc.valid)); diff != "" {
				t.Errorf("LeaguePositions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	players := map[string]models.Player{
		"qb1": {PlayerID: "qb1", Position: models.PositionQB},
		"qb2": {PlayerID: "qb2", Position: models.PositionQB},
		"rb1": {PlayerID: "rb1", Position: models.PositionRB},
		"k1":  {PlayerID: "k1", Position: "K"},
	}
	rosters := []models.Roster{
		{RosterID: 1, Players: []string{"qb1", "qb2", "rb1", "k1"}},
		{RosterID: 2, Players: []string{"ghost"}},
	}
	positions := []models.Position{models.PositionQB, models.PositionRB, models.PositionTE}

	got := Calculate(rosters, players, positions)

	want := map[int]map[models.Position]models.PositionNeedData{
		1: {
			models.PositionQB: {Count: 2, Avg: 1, Diff: 1, Score: 10},
			models.PositionRB: {Count: 1, Avg: 0.5, Diff: 0.5, Score: 10},
			models.PositionTE: {Count: 0, Avg: 0, Diff: 0, Score: 0},
		},
		2: {
			models.PositionQB: {Count: 0, Avg: 1, Diff: -1, Score: -10},
			models.PositionRB: {Count: 0, Avg: 0.5, Diff: -0.5, Score: -10},
			models.PositionTE: {Count: 0, Avg: 0, Diff: 0, Score: 0},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Calculate mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateNoRosters(t *testing.T) {
	got := Calculate(nil, nil, models.SkillPositions)
	if len(got) != 0 {
		t.Fatalf("expected no teams, got %v", got)
	}
}

func TestCalculateNeverNaN(t *testing.T) {
	rosters := []models.Roster{{RosterID: 1}, {RosterID: 2}}
	got := Calculate(rosters, map[string]models.Player{}, models.SkillPositions)
	for id, team := range got {
		for pos, need := range team {
			if math.IsNaN(need.Score) || math.IsNaN(need.Avg) {
				t.Errorf("roster %d %s: NaN in %+v", id, pos, need)
			}
		}
	}
}
