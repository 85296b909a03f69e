package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftboard/go/clients/sleeper_client"
	"github.com/mcdev12/draftboard/go/internal/draft/loader"
	"github.com/mcdev12/draftboard/go/internal/draft/pick"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
	"github.com/mcdev12/draftboard/go/internal/kvstore"
	"github.com/mcdev12/draftboard/go/internal/models"
	"github.com/mcdev12/draftboard/go/internal/testutils"
)

func newFixtureBoard(t *testing.T, store kvstore.Store) (*Board, *testutils.FakeSleeperServer) {
	t.Helper()
	srv := testutils.NewFakeSleeperServer()
	t.Cleanup(srv.Close)

	client := sleeper_client.NewSleeperClient(sleeper_client.Config{BaseURL: srv.URL(), RequestsPerSecond: 1000, Burst: 100})
	b := New(Config{
		LeagueID:   testutils.FakeLeagueID,
		Loader:     loader.NewLoader(client, 0),
		Store:      store,
		Merger:     ranking.NewMerger(ranking.DefaultTable()),
		Reconciler: pick.NewReconciler(clockwork.NewFakeClockAt(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))),
	})
	return b, srv
}

func loadedBoard(t *testing.T) (*Board, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	b, _ := newFixtureBoard(t, store)
	b.Load(context.Background())
	require.NoError(t, b.Refresh(context.Background()))
	return b, store
}

func availableIDs(v View) []string {
	out := make([]string, 0, len(v.Available))
	for _, p := range v.Available {
		out = append(out, p.PlayerID)
	}
	return out
}

func findPick(v View, round, pickNumber int) (models.DraftPickData, int, bool) {
	for _, team := range v.Teams {
		for _, p := range team.Picks {
			if p.Round == round && p.PickNumber == pickNumber {
				return p, team.RosterID, true
			}
		}
	}
	return models.DraftPickData{}, 0, false
}

func TestRefreshBuildsBoard(t *testing.T) {
	b, _ := loadedBoard(t)
	v := b.View()

	assert.False(t, v.Loading)
	assert.Equal(t, testutils.FakeLeagueID, v.LeagueID)
	assert.Equal(t, testutils.FakeDraftID, v.DraftID)
	assert.Equal(t, 3, v.TotalRounds)
	require.Len(t, v.Teams, 4)

	var pickCounts []int
	total := 0
	for _, team := range v.Teams {
		pickCounts = append(pickCounts, len(team.Picks))
		total += len(team.Picks)
	}
	assert.Equal(t, []int{3, 4, 2, 3}, pickCounts)
	assert.Equal(t, 12, total)

	assert.Equal(t, "Alpha Dogs", v.Teams[0].DisplayName())
	assert.Equal(t, "bravo", v.Teams[1].Username)
	assert.Equal(t, "Unknown", v.Teams[3].Username)
	assert.Equal(t, -10.0, v.Teams[3].Needs[models.PositionQB].Score)
	assert.Equal(t, 10.0, v.Teams[0].Needs[models.PositionQB].Score)

	traded, owner, ok := findPick(v, 1, 1)
	require.True(t, ok)
	assert.True(t, traded.IsTraded)
	assert.Equal(t, 3, traded.OriginalRosterID)
	assert.Equal(t, 2, owner)

	var roundOwners []int
	for _, tp := range v.Round {
		roundOwners = append(roundOwners, tp.RosterID)
	}
	assert.Equal(t, []int{2, 1, 4, 2}, roundOwners)

	assert.Equal(t, []string{"1001", "1002", "1003", "1004", "1005"}, availableIDs(v))
	assert.Equal(t, 4, v.Available[1].ExternalRank)
}

func TestAssignThenClearLeavesNoResidue(t *testing.T) {
	b, store := loadedBoard(t)
	ctx := context.Background()

	require.NoError(t, b.Dispatch(ctx, AssignPlayer{Round: 1, PickNumber: 3, PlayerID: "1001"}))
	p, _, _ := findPick(b.View(), 1, 3)
	assert.Equal(t, "1001", p.PlayerID)

	raw, err := store.Get(ctx, KeyAssignments)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1_3":"1001"}`, string(raw))

	require.NoError(t, b.Dispatch(ctx, ClearPick{Round: 1, PickNumber: 3}))
	p, _, _ = findPick(b.View(), 1, 3)
	assert.Empty(t, p.PlayerID)

	raw, err = store.Get(ctx, KeyAssignments)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
	assert.Empty(t, b.State().Assignments)
}

func TestAssignOverwritesAndMarksDrafted(t *testing.T) {
	b, _ := loadedBoard(t)
	ctx := context.Background()

	require.NoError(t, b.Dispatch(ctx, AssignPlayer{Round: 2, PickNumber: 7, PlayerID: "1001"}))
	require.NoError(t, b.Dispatch(ctx, AssignPlayer{Round: 2, PickNumber: 7, PlayerID: "1002"}))

	v := b.View()
	p, owner, _ := findPick(v, 2, 7)
	assert.Equal(t, "1002", p.PlayerID)
	assert.Equal(t, 1, owner)

	require.NotNil(t, v.Available[1].DraftedBy)
	assert.Equal(t, pick.PlayerDraftInfo{RosterID: 1, TeamName: "Alpha Dogs", Round: 2, PickNumber: 7}, *v.Available[1].DraftedBy)
	assert.Nil(t, v.Available[0].DraftedBy)
}

func TestAssignValidation(t *testing.T) {
	b, _ := loadedBoard(t)
	ctx := context.Background()

	err := b.Dispatch(ctx, AssignPlayer{Round: 1, PickNumber: 99, PlayerID: "1001"})
	assert.ErrorIs(t, err, ErrPickNotFound)

	err = b.Dispatch(ctx, AssignPlayer{Round: 1, PickNumber: 2, PlayerID: "nobody"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	err = b.Dispatch(ctx, AssignPlayer{Round: 1, PickNumber: 2})
	assert.ErrorIs(t, err, ErrMissingPlayerID)
	assert.NotErrorIs(t, err, ErrPlayerNotFound)

	assert.Empty(t, b.State().Assignments)
}

func TestWatchlist(t *testing.T) {
	b, store := loadedBoard(t)
	ctx := context.Background()

	require.NoError(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "1003"}))
	require.NoError(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "1001"}))
	require.NoError(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "1003"}))
	require.NoError(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "1004"}))
	assert.Equal(t, []string{"1003", "1001", "1004"}, b.State().Watchlist)

	require.NoError(t, b.Dispatch(ctx, RemoveFromWatchlist{PlayerID: "1001"}))
	assert.Equal(t, []string{"1003", "1004"}, b.State().Watchlist)

	require.NoError(t, b.Dispatch(ctx, ToggleWatchlist{PlayerID: "1003"}))
	require.NoError(t, b.Dispatch(ctx, ToggleWatchlist{PlayerID: "1002"}))
	assert.Equal(t, []string{"1004", "1002"}, b.State().Watchlist)

	raw, err := store.Get(ctx, KeyWatchlist)
	require.NoError(t, err)
	assert.JSONEq(t, `["1004","1002"]`, string(raw))

	v := b.View()
	require.Len(t, v.Watchlist, 2)
	require.NotNil(t, v.Watchlist[0].Player)
	assert.Equal(t, "Warren", v.Watchlist[0].Player.LastName)
	assert.True(t, v.Available[1].InWatchlist)

	assert.ErrorIs(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "ghost"}), ErrPlayerNotFound)
}

func TestCustomRankings(t *testing.T) {
	b, store := loadedBoard(t)
	ctx := context.Background()

	err := b.Dispatch(ctx, MovePlayer{PlayerID: "1003", Direction: ranking.Up})
	assert.ErrorIs(t, err, ErrCustomModeRequired)

	require.NoError(t, b.Dispatch(ctx, SetCustomRankingsMode{Enabled: true}))
	require.NoError(t, b.Dispatch(ctx, MovePlayer{PlayerID: "1003", Direction: ranking.Up}))
	assert.Equal(t, []string{"1001", "1003", "1002", "1004", "1005"}, availableIDs(b.View()))

	raw, err := store.Get(ctx, KeyRankings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1001":1,"1003":2,"1002":3,"1004":4,"1005":5}`, string(raw))

	require.NoError(t, b.Dispatch(ctx, MovePlayerTo{PlayerID: "1005", TargetIndex: 0}))
	assert.Equal(t, []string{"1005", "1001", "1003", "1002", "1004"}, availableIDs(b.View()))

	require.NoError(t, b.Dispatch(ctx, SetCustomRankingsMode{Enabled: false}))
	assert.Equal(t, map[string]int{"1005": 1, "1001": 2, "1003": 3, "1002": 4, "1004": 5}, b.State().SavedRanks)

	// Outside custom mode the ranking table leads again.
	assert.Equal(t, []string{"1001", "1002", "1003", "1004", "1005"}, availableIDs(b.View()))
}

func TestSetRankingsReplaces(t *testing.T) {
	b, _ := loadedBoard(t)
	ctx := context.Background()

	require.NoError(t, b.Dispatch(ctx, SetRankings{Ranks: map[string]int{"1004": 1, "1001": 2}}))
	require.NoError(t, b.Dispatch(ctx, SetRankings{Ranks: map[string]int{"1005": 1, "bad": 0}}))
	assert.Equal(t, map[string]int{"1005": 1}, b.State().SavedRanks)
}

func TestQueryAndRound(t *testing.T) {
	b, _ := loadedBoard(t)
	ctx := context.Background()

	require.NoError(t, b.Dispatch(ctx, SetQuery{Query: ranking.Query{Position: "WR"}}))
	assert.Equal(t, []string{"1003", "1005"}, availableIDs(b.View()))
	assert.Equal(t, ranking.SortByRank, b.State().Query.SortBy)

	assert.ErrorIs(t, b.Dispatch(ctx, SetQuery{Query: ranking.Query{SortBy: "age"}}), ErrInvalidQuery)

	require.NoError(t, b.Dispatch(ctx, SetShowVeterans{Show: true}))
	assert.Equal(t, []string{"1003", "1005", "2003", "2005", "2009"}, availableIDs(b.View()))

	require.NoError(t, b.Dispatch(ctx, SetCurrentRound{Round: 2}))
	v := b.View()
	require.Len(t, v.Round, 4)
	assert.Equal(t, 5, v.Round[0].Pick.PickNumber)
	assert.ErrorIs(t, b.Dispatch(ctx, SetCurrentRound{Round: 4}), ErrInvalidRound)

	round3, err := b.RoundView(3)
	require.NoError(t, err)
	assert.Len(t, round3, 4)
	_, err = b.RoundView(0)
	assert.ErrorIs(t, err, ErrInvalidRound)
}

func TestLoadRestoresAndIgnoresCorruptState(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, KeyRankings, []byte(`{"1004":1}`)))
	require.NoError(t, store.Set(ctx, KeyAssignments, []byte(`{not json`)))
	require.NoError(t, store.Set(ctx, KeyWatchlist, []byte(`["1002","1002","1001"]`)))

	b, _ := newFixtureBoard(t, store)
	b.Load(ctx)
	require.NoError(t, b.Refresh(ctx))

	s := b.State()
	assert.Equal(t, map[string]int{"1004": 1}, s.SavedRanks)
	assert.Empty(t, s.Assignments)
	assert.Equal(t, []string{"1002", "1001"}, s.Watchlist)
}

func TestRefreshFailureDegrades(t *testing.T) {
	ctx := context.Background()
	b, srv := newFixtureBoard(t, kvstore.NewMemory())
	srv.FailPath("/v1/draft/901/traded_picks")

	err := b.Refresh(ctx)
	require.Error(t, err)

	v := b.View()
	assert.False(t, v.Loading)
	assert.Empty(t, v.Teams)
	assert.Empty(t, v.DraftID)
	assert.NotEmpty(t, v.Available, "league data still loaded")

	err = b.Dispatch(ctx, AssignPlayer{Round: 1, PickNumber: 1, PlayerID: "1001"})
	assert.ErrorIs(t, err, ErrPickNotFound)
}

func TestInternalActionsCannotBeDispatched(t *testing.T) {
	b, _ := loadedBoard(t)
	assert.Error(t, b.Dispatch(context.Background(), LoadStarted{}))
	assert.Error(t, b.Dispatch(context.Background(), DraftLoaded{}))
}

func TestSubscribe(t *testing.T) {
	b, _ := loadedBoard(t)
	ctx := context.Background()

	var mu sync.Mutex
	var got []Update
	unsubscribe := b.Subscribe(func(u Update) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, u)
	})

	require.NoError(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "1001"}))
	require.Error(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "ghost"}))
	unsubscribe()
	require.NoError(t, b.Dispatch(ctx, AddToWatchlist{PlayerID: "1002"}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "add_to_watchlist", got[0].Action)
	assert.Equal(t, b.View().Version-1, got[0].Version)
}

type failingStore struct {
	*kvstore.Memory
}

func (failingStore) Set(context.Context, string, []byte) error {
	return assert.AnError
}

func TestDispatchPersistFailureKeepsState(t *testing.T) {
	b, _ := newFixtureBoard(t, failingStore{kvstore.NewMemory()})
	ctx := context.Background()
	require.NoError(t, b.Refresh(ctx))

	err := b.Dispatch(ctx, AddToWatchlist{PlayerID: "1001"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, b.State().Watchlist)
}
