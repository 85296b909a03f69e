package pick

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftboard/go/internal/models"
)

func testTeams() []models.DraftTeam {
	rosters := []models.Roster{
		{RosterID: 2, OwnerID: "u2"},
		{RosterID: 1, OwnerID: "u1"},
		{RosterID: 3, OwnerID: "gone"},
	}
	users := []models.User{
		{UserID: "u1", Username: "alpha", DisplayName: "Alpha", Metadata: models.UserMetadata{TeamName: "Alpha Dogs"}},
		{UserID: "u2", Username: "bravo"},
	}
	needs := map[int]map[models.Position]models.PositionNeedData{
		1: {models.PositionQB: {Count: 1, Avg: 1}},
	}
	return BuildTeams(rosters, users, needs)
}

func TestBuildTeams(t *testing.T) {
	teams := testTeams()
	require.Len(t, teams, 3)

	assert.Equal(t, []int{1, 2, 3}, []int{teams[0].RosterID, teams[1].RosterID, teams[2].RosterID})
	assert.Equal(t, "Alpha", teams[0].Username)
	assert.Equal(t, "Alpha Dogs", teams[0].DisplayName())
	assert.Equal(t, "bravo", teams[1].Username)
	assert.Equal(t, "bravo", teams[1].DisplayName())
	assert.Equal(t, "unknown", teams[2].UserID)
	assert.Equal(t, "Unknown", teams[2].Username)
	assert.NotNil(t, teams[2].Needs)
	assert.Equal(t, 1, teams[0].Needs[models.PositionQB].Count)
}

func TestGroupByTeam(t *testing.T) {
	picks := []models.DraftPickData{
		{Round: 1, PickNumber: 1, OriginalRosterID: 1, RosterID: 1},
		{Round: 1, PickNumber: 2, OriginalRosterID: 2, RosterID: 2},
		{Round: 1, PickNumber: 3, OriginalRosterID: 3, RosterID: 1, IsTraded: true},
		{Round: 1, PickNumber: 4, OriginalRosterID: 9, RosterID: 9},
	}
	teams := GroupByTeam(testTeams(), picks)

	assert.Len(t, teams[0].Picks, 2)
	assert.Len(t, teams[1].Picks, 1)
	assert.Empty(t, teams[2].Picks)

	total := 0
	for _, tm := range teams {
		total += len(tm.Picks)
	}
	assert.Equal(t, 3, total, "pick owned by an unknown roster is dropped")
}

func TestRoundPicks(t *testing.T) {
	picks := []models.DraftPickData{
		{Round: 1, PickNumber: 3, RosterID: 1},
		{Round: 1, PickNumber: 1, RosterID: 2},
		{Round: 2, PickNumber: 5, RosterID: 2},
		{Round: 1, PickNumber: 2, RosterID: 3},
	}
	teams := GroupByTeam(testTeams(), picks)

	got := RoundPicks(teams, 1)
	var numbers []int
	for _, tp := range got {
		numbers = append(numbers, tp.Pick.PickNumber)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, numbers); diff != "" {
		t.Errorf("round 1 order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "bravo", got[0].TeamName)
	assert.Empty(t, RoundPicks(teams, 4))
}

func TestFindPlayer(t *testing.T) {
	picks := []models.DraftPickData{
		{Round: 1, PickNumber: 1, RosterID: 2, PlayerID: "1001"},
		{Round: 2, PickNumber: 6, RosterID: 1, PlayerID: "1002"},
	}
	teams := GroupByTeam(testTeams(), picks)

	info, ok := FindPlayer(teams, "1002")
	require.True(t, ok)
	assert.Equal(t, PlayerDraftInfo{RosterID: 1, TeamName: "Alpha Dogs", Round: 2, PickNumber: 6}, info)

	_, ok = FindPlayer(teams, "9999")
	assert.False(t, ok)
	_, ok = FindPlayer(teams, "")
	assert.False(t, ok)
}
