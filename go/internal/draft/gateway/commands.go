package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/draft/board"
	"github.com/mcdev12/draftboard/go/internal/draft/ranking"
)

// ClientMessageType names a command a WebSocket client can send
type ClientMessageType string

const (
	// MessageHello reports the client's viewport so the right session is used
	MessageHello         ClientMessageType = "hello"
	MessageSelect        ClientMessageType = "select"
	MessageDropPick      ClientMessageType = "drop_pick"
	MessageDropWatchlist ClientMessageType = "drop_watchlist"
	MessageDropRank      ClientMessageType = "drop_rank"
	MessageMove          ClientMessageType = "move"
	MessageCancel        ClientMessageType = "cancel"
)

// ClientMessage is a command from a WebSocket client. Fields are used per Type.
type ClientMessage struct {
	Type       ClientMessageType `json:"type"`
	Width      int               `json:"width,omitempty"`
	Touch      bool              `json:"touch,omitempty"`
	PlayerID   string            `json:"player_id,omitempty"`
	Round      int               `json:"round,omitempty"`
	PickNumber int               `json:"pick_number,omitempty"`
	Index      int               `json:"index,omitempty"`
	Direction  ranking.Direction `json:"direction,omitempty"`
}

// handleCommand turns a client gesture into a board action. The client is
// told its selection after every command, or why the command was rejected.
func (s *Service) handleCommand(ctx context.Context, c *Connection, msg ClientMessage) {
	action, err := s.commandAction(c, msg)
	if err == nil && action != nil {
		err = s.board.Dispatch(ctx, action)
	}
	if err != nil {
		log.Debug().Err(err).Str("connection_id", c.ID).Str("type", string(msg.Type)).Msg("client command rejected")
		s.sendTo(c, EventTypeCommandRejected, CommandRejectedPayload{Command: string(msg.Type), Error: err.Error()})
	}

	interaction := c.Interaction()
	s.sendTo(c, EventTypeSelection, SelectionPayload{Mode: interaction.Mode(), Selected: interaction.Selected()})
}

func (s *Service) commandAction(c *Connection, msg ClientMessage) (board.Action, error) {
	interaction := c.Interaction()

	switch msg.Type {
	case MessageHello:
		c.SetInteraction(board.NewInteraction(msg.Width, msg.Touch))
		return nil, nil
	case MessageSelect:
		if msg.PlayerID == "" {
			return nil, fmt.Errorf("select: %w", board.ErrMissingPlayerID)
		}
		interaction.Select(msg.PlayerID)
		return nil, nil
	case MessageCancel:
		interaction.Cancel()
		return nil, nil
	case MessageDropPick:
		return gesture(interaction.PickTarget(msg.Round, msg.PickNumber))
	case MessageDropWatchlist:
		return gesture(interaction.WatchlistTarget())
	case MessageDropRank:
		return gesture(interaction.RankTarget(msg.Index))
	case MessageMove:
		return board.MovePlayer{PlayerID: msg.PlayerID, Direction: msg.Direction}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", msg.Type)
	}
}

func gesture(action board.Action, ok bool) (board.Action, error) {
	if !ok {
		return nil, fmt.Errorf("no player selected")
	}
	return action, nil
}

// interactionFromQuery builds the initial session from ?width=&touch=. A
// missing width is treated as a desktop client.
func interactionFromQuery(width, touch string) board.Interaction {
	w, err := strconv.Atoi(width)
	if err != nil {
		w = board.MobileBreakpoint
	}
	t, _ := strconv.ParseBool(touch)
	return board.NewInteraction(w, t)
}
