package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftboard/go/clients/sleeper_client"
	"github.com/mcdev12/draftboard/go/internal/draft/board"
	"github.com/mcdev12/draftboard/go/internal/draft/loader"
	"github.com/mcdev12/draftboard/go/internal/draft/pick"
	"github.com/mcdev12/draftboard/go/internal/kvstore"
	"github.com/mcdev12/draftboard/go/internal/testutils"
)

type testGateway struct {
	svc     *Service
	board   *board.Board
	sleeper *testutils.FakeSleeperServer
	handler http.Handler
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()
	sleeper := testutils.NewFakeSleeperServer()
	t.Cleanup(sleeper.Close)

	client := sleeper_client.NewSleeperClient(sleeper_client.Config{BaseURL: sleeper.URL(), RequestsPerSecond: 1000, Burst: 100})
	b := board.New(board.Config{
		LeagueID: testutils.FakeLeagueID,
		Loader:   loader.NewLoader(client, 0),
		Store:    kvstore.NewMemory(),
	})
	require.NoError(t, b.Refresh(context.Background()))

	svc := NewService(DefaultConfig(), b, nil)
	t.Cleanup(func() { svc.Stop() })
	return &testGateway{svc: svc, board: b, sleeper: sleeper, handler: svc.Handler()}
}

func (g *testGateway) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) board.View {
	t.Helper()
	var v board.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestGetBoard(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	v := decodeView(t, rec)
	assert.Equal(t, testutils.FakeDraftID, v.DraftID)
	assert.Len(t, v.Teams, 4)
	assert.Len(t, v.Round, 4)
	assert.Len(t, v.Available, 5)
}

func TestGetRound(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodGet, "/api/board/rounds/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var picks []pick.TeamPick
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &picks))
	require.Len(t, picks, 4)
	assert.Equal(t, 5, picks[0].Pick.PickNumber)

	rec = g.do(t, http.MethodGet, "/api/board/rounds/9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = g.do(t, http.MethodGet, "/api/board/rounds/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPickAssignment(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPut, "/api/board/picks/1/3", `{"player_id":"1001"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decodeView(t, rec)
	require.NotNil(t, v.Available[0].DraftedBy)
	assert.Equal(t, 3, v.Available[0].DraftedBy.PickNumber)

	rec = g.do(t, http.MethodDelete, "/api/board/picks/1/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	assert.Nil(t, v.Available[0].DraftedBy)
}

func TestErrorStatuses(t *testing.T) {
	tests := map[string]struct {
		method string
		path   string
		body   string
		want   int
	}{
		"missing pick":        {method: http.MethodPut, path: "/api/board/picks/1/99", body: `{"player_id":"1001"}`, want: http.StatusNotFound},
		"unknown player":      {method: http.MethodPut, path: "/api/board/picks/1/1", body: `{"player_id":"ghost"}`, want: http.StatusNotFound},
		"empty player":        {method: http.MethodPut, path: "/api/board/picks/1/1", body: `{"player_id":""}`, want: http.StatusBadRequest},
		"no body fields":      {method: http.MethodPut, path: "/api/board/picks/1/1", body: `{}`, want: http.StatusBadRequest},
		"bad body":            {method: http.MethodPut, path: "/api/board/picks/1/1", body: `{`, want: http.StatusBadRequest},
		"move outside custom": {method: http.MethodPost, path: "/api/board/rankings/move", body: `{"player_id":"1003","direction":"up"}`, want: http.StatusConflict},
		"move without target": {method: http.MethodPost, path: "/api/board/rankings/move", body: `{"player_id":"1003"}`, want: http.StatusBadRequest},
		"bad sort":            {method: http.MethodPut, path: "/api/board/settings", body: `{"query":{"sort_by":"age"}}`, want: http.StatusBadRequest},
		"bad round":           {method: http.MethodPut, path: "/api/board/settings", body: `{"current_round":7}`, want: http.StatusBadRequest},
		"watchlist ghost":     {method: http.MethodPut, path: "/api/board/watchlist/ghost", want: http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			g := newTestGateway(t)
			rec := g.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCustomRankingFlow(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPut, "/api/board/settings", `{"custom_mode":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeView(t, rec).CustomMode)

	rec = g.do(t, http.MethodPost, "/api/board/rankings/move", `{"player_id":"1003","direction":"up"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decodeView(t, rec)
	assert.Equal(t, "1003", v.Available[1].PlayerID)

	rec = g.do(t, http.MethodPost, "/api/board/rankings/move", `{"player_id":"1005","target_index":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1005", decodeView(t, rec).Available[0].PlayerID)

	rec = g.do(t, http.MethodPut, "/api/board/rankings", `{"ranks":{"1004":1}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1004", decodeView(t, rec).Available[0].PlayerID)
	assert.Equal(t, map[string]int{"1004": 1}, g.board.State().SavedRanks)
}

func TestWatchlistRoutes(t *testing.T) {
	g := newTestGateway(t)

	require.Equal(t, http.StatusOK, g.do(t, http.MethodPut, "/api/board/watchlist/1002", "").Code)
	require.Equal(t, http.StatusOK, g.do(t, http.MethodPut, "/api/board/watchlist/1004", "").Code)
	rec := g.do(t, http.MethodPut, "/api/board/watchlist/1002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeView(t, rec).Watchlist, 2)

	rec = g.do(t, http.MethodDelete, "/api/board/watchlist/1002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	require.Len(t, v.Watchlist, 1)
	assert.Equal(t, "1004", v.Watchlist[0].PlayerID)
}

func TestSettings(t *testing.T) {
	g := newTestGateway(t)
	rec := g.do(t, http.MethodPut, "/api/board/settings", `{"show_veterans":true,"query":{"position":"QB"},"current_round":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	v := decodeView(t, rec)
	assert.True(t, v.ShowVeterans)
	assert.Equal(t, 3, v.CurrentRound)
	assert.Equal(t, 9, v.Round[0].Pick.PickNumber)
	var ids []string
	for _, p := range v.Available {
		ids = append(ids, p.PlayerID)
	}
	assert.Equal(t, []string{"1002", "2001", "2007"}, ids)
}

func TestRefresh(t *testing.T) {
	g := newTestGateway(t)

	rec := g.do(t, http.MethodPost, "/api/board/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeView(t, rec).Teams, 4)

	g.sleeper.FailPath("/v1/league/" + testutils.FakeLeagueID)
	rec = g.do(t, http.MethodPost, "/api/board/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, g.board.View().Teams)
}

func TestCORSPreflight(t *testing.T) {
	g := newTestGateway(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/board/picks/1/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestStatusFor(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"pick":      {err: fmt.Errorf("x: %w", board.ErrPickNotFound), want: http.StatusNotFound},
		"player":    {err: board.ErrPlayerNotFound, want: http.StatusNotFound},
		"custom":    {err: board.ErrCustomModeRequired, want: http.StatusConflict},
		"query":     {err: board.ErrInvalidQuery, want: http.StatusBadRequest},
		"round":     {err: board.ErrInvalidRound, want: http.StatusBadRequest},
		"direction": {err: board.ErrInvalidDirection, want: http.StatusBadRequest},
		"no player": {err: fmt.Errorf("assign 1_1: %w", board.ErrMissingPlayerID), want: http.StatusBadRequest},
		"malformed": {err: badRequest("nope"), want: http.StatusBadRequest},
		"other":     {err: errors.New("disk full"), want: http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestEventWireTypes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tests := map[string]struct {
		eventType EventType
		payload   any
		want      string
	}{
		"board updated":    {eventType: EventTypeBoardUpdated, payload: BoardUpdatedPayload{Action: "clear_pick"}, want: "board_updated"},
		"selection":        {eventType: EventTypeSelection, payload: SelectionPayload{Mode: board.ModeTap}, want: "selection"},
		"command rejected": {eventType: EventTypeCommandRejected, payload: CommandRejectedPayload{Command: "move"}, want: "command_rejected"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			event, err := newEvent(clock, "1001", tc.eventType, tc.payload)
			require.NoError(t, err)
			data, err := json.Marshal(event)
			require.NoError(t, err)

			var wire map[string]any
			require.NoError(t, json.Unmarshal(data, &wire))
			assert.Equal(t, tc.want, wire["type"])
		})
	}
}

func readEvent(t *testing.T, conn *websocket.Conn, want EventType) *DraftEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var event DraftEvent
		require.NoError(t, json.Unmarshal(data, &event))
		if event.Type == want {
			return &event
		}
	}
}

func TestWebSocketDragToPick(t *testing.T) {
	g := newTestGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.svc.Start(ctx)

	srv := httptest.NewServer(g.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/board?width=1440"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	event := readEvent(t, conn, EventTypeSelection)
	payload, err := ParseEventPayload(event)
	require.NoError(t, err)
	assert.Equal(t, SelectionPayload{Mode: board.ModeDrag}, payload)
	assert.Equal(t, testutils.FakeLeagueID, event.LeagueID)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageSelect, PlayerID: "1002"}))
	event = readEvent(t, conn, EventTypeSelection)
	payload, err = ParseEventPayload(event)
	require.NoError(t, err)
	assert.Equal(t, "1002", payload.(SelectionPayload).Selected)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageDropPick, Round: 2, PickNumber: 6}))
	event = readEvent(t, conn, EventTypeBoardUpdated)
	payload, err = ParseEventPayload(event)
	require.NoError(t, err)
	updated := payload.(BoardUpdatedPayload)
	assert.Equal(t, "assign_player", updated.Action)
	require.NotNil(t, updated.Board.Available[1].DraftedBy)
	assert.Equal(t, 6, updated.Board.Available[1].DraftedBy.PickNumber)

	assert.Equal(t, 1, g.svc.GetStats().TotalConnections)
}

func TestWebSocketTapModeRejections(t *testing.T) {
	g := newTestGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.svc.Start(ctx)

	srv := httptest.NewServer(g.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/board"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	readEvent(t, conn, EventTypeSelection)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageHello, Width: 390, Touch: true}))
	event := readEvent(t, conn, EventTypeSelection)
	payload, err := ParseEventPayload(event)
	require.NoError(t, err)
	assert.Equal(t, board.ModeTap, payload.(SelectionPayload).Mode)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageDropPick, Round: 1, PickNumber: 1}))
	event = readEvent(t, conn, EventTypeCommandRejected)
	payload, err = ParseEventPayload(event)
	require.NoError(t, err)
	assert.Equal(t, "drop_pick", payload.(CommandRejectedPayload).Command)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageSelect, PlayerID: "1001"}))
	readEvent(t, conn, EventTypeSelection)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageDropRank, Index: 0}))
	event = readEvent(t, conn, EventTypeCommandRejected)
	payload, err = ParseEventPayload(event)
	require.NoError(t, err)
	assert.Equal(t, "drop_rank", payload.(CommandRejectedPayload).Command)
}
