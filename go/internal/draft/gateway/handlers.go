package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/draft/board"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
)

// errorResponse is the body of every failed API call
type errorResponse struct {
	Error string `json:"error"`
}

type assignRequest struct {
	PlayerID string `json:"player_id"`
}

type rankingsRequest struct {
	Ranks map[string]int `json:"ranks"`
}

// moveRequest moves by one place when Direction is set, otherwise to TargetIndex
type moveRequest struct {
	PlayerID    string            `json:"player_id"`
	Direction   ranking.Direction `json:"direction,omitempty"`
	TargetIndex *int              `json:"target_index,omitempty"`
}

// settingsRequest changes only the fields that are present
type settingsRequest struct {
	CustomMode   *bool          `json:"custom_mode,omitempty"`
	ShowVeterans *bool          `json:"show_veterans,omitempty"`
	Query        *ranking.Query `json:"query,omitempty"`
	CurrentRound *int           `json:"current_round,omitempty"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.render.Text(w, http.StatusOK, "OK")
}

func (s *Service) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, s.board.View())
}

func (s *Service) handleGetRound(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		s.renderError(w, fmt.Errorf("round: %w", board.ErrInvalidRound))
		return
	}
	picks, err := s.board.RoundView(round)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.render.JSON(w, http.StatusOK, picks)
}

func (s *Service) handleAssignPick(w http.ResponseWriter, r *http.Request) {
	round, pickNumber, err := pickParams(r)
	if err != nil {
		s.renderError(w, err)
		return
	}
	var req assignRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, err)
		return
	}
	s.dispatch(w, r, board.AssignPlayer{Round: round, PickNumber: pickNumber, PlayerID: req.PlayerID})
}

func (s *Service) handleClearPick(w http.ResponseWriter, r *http.Request) {
	round, pickNumber, err := pickParams(r)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.dispatch(w, r, board.ClearPick{Round: round, PickNumber: pickNumber})
}

func (s *Service) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, board.AddToWatchlist{PlayerID: chi.URLParam(r, "playerID")})
}

func (s *Service) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, board.RemoveFromWatchlist{PlayerID: chi.URLParam(r, "playerID")})
}

func (s *Service) handleSetRankings(w http.ResponseWriter, r *http.Request) {
	var req rankingsRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, err)
		return
	}
	s.dispatch(w, r, board.SetRankings{Ranks: req.Ranks})
}

func (s *Service) handleMovePlayer(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, err)
		return
	}

	switch {
	case req.Direction != "":
		s.dispatch(w, r, board.MovePlayer{PlayerID: req.PlayerID, Direction: req.Direction})
	case req.TargetIndex != nil:
		s.dispatch(w, r, board.MovePlayerTo{PlayerID: req.PlayerID, TargetIndex: *req.TargetIndex})
	default:
		s.renderError(w, badRequest("direction or target_index is required"))
	}
}

// handleSettings applies each present setting in order and stops at the first failure.
func (s *Service) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, err)
		return
	}

	var actions []board.Action
	if req.CustomMode != nil {
		actions = append(actions, board.SetCustomRankingsMode{Enabled: *req.CustomMode})
	}
	if req.ShowVeterans != nil {
		actions = append(actions, board.SetShowVeterans{Show: *req.ShowVeterans})
	}
	if req.Query != nil {
		actions = append(actions, board.SetQuery{Query: *req.Query})
	}
	if req.CurrentRound != nil {
		actions = append(actions, board.SetCurrentRound{Round: *req.CurrentRound})
	}

	for _, action := range actions {
		if err := s.board.Dispatch(r.Context(), action); err != nil {
			s.renderError(w, err)
			return
		}
	}
	s.render.JSON(w, http.StatusOK, s.board.View())
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Refresh(r.Context()); err != nil {
		log.Error().Err(err).Str("league_id", s.board.LeagueID()).Msg("board refresh failed")
		s.render.JSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	s.render.JSON(w, http.StatusOK, s.board.View())
}

func (s *Service) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	interaction := interactionFromQuery(r.URL.Query().Get("width"), r.URL.Query().Get("touch"))
	conn, err := s.connectionManager.UpgradeConnection(w, r, interaction)
	if err != nil {
		// The upgrader has already replied to the client
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}
	s.sendTo(conn, EventTypeSelection, SelectionPayload{Mode: interaction.Mode()})
}

func (s *Service) handleConnectionStats(w http.ResponseWriter, r *http.Request) {
	s.render.JSON(w, http.StatusOK, s.connectionManager.GetConnectionStats())
}

// dispatch applies action and replies with the updated board
func (s *Service) dispatch(w http.ResponseWriter, r *http.Request, action board.Action) {
	if err := s.board.Dispatch(r.Context(), action); err != nil {
		s.renderError(w, err)
		return
	}
	s.render.JSON(w, http.StatusOK, s.board.View())
}

func (s *Service) renderError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("board request failed")
	}
	s.render.JSON(w, status, errorResponse{Error: err.Error()})
}

// badRequestError marks malformed input
type badRequestError struct {
	msg string
}

func (e badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return badRequestError{msg: fmt.Sprintf(format, args...)}
}

func statusFor(err error) int {
	var bad badRequestError
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrPickNotFound), errors.Is(err, board.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrCustomModeRequired):
		return http.StatusConflict
	case errors.Is(err, board.ErrInvalidQuery), errors.Is(err, board.ErrInvalidRound), errors.Is(err, board.ErrInvalidDirection),
		errors.Is(err, board.ErrMissingPlayerID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pickParams(r *http.Request) (int, int, error) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		return 0, 0, badRequest("invalid round %q", chi.URLParam(r, "round"))
	}
	pickNumber, err := strconv.Atoi(chi.URLParam(r, "pick"))
	if err != nil {
		return 0, 0, badRequest("invalid pick %q", chi.URLParam(r, "pick"))
	}
	return round, pickNumber, nil
}

func decode(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}
