package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/draftboard/go/internal/draft/board"
)

// DraftEvent is the envelope for every message pushed to a WebSocket client
type DraftEvent struct {
	ID        string          `json:"id"`        // Event UUID
	LeagueID  string          `json:"league_id"` // League the board belongs to
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType represents the type of board event
type EventType string

const (
	// EventTypeBoardUpdated is broadcast to every client after the board changes
	EventTypeBoardUpdated EventType = "board_updated"
	// EventTypeSelection is sent to one client after its selection changes
	EventTypeSelection EventType = "selection"
	// EventTypeCommandRejected is sent to one client when its command fails
	EventTypeCommandRejected EventType = "command_rejected"
)

// BoardUpdatedPayload carries the action that changed the board and the new view
type BoardUpdatedPayload struct {
	Action  string     `json:"action"`
	Version int64      `json:"version"`
	Board   board.View `json:"board"`
}

// SelectionPayload describes a client's interaction session
type SelectionPayload struct {
	Mode     board.Mode `json:"mode"`
	Selected string     `json:"selected,omitempty"`
}

// CommandRejectedPayload explains why a client command did nothing
type CommandRejectedPayload struct {
	Command string `json:"command"`
	Error   string `json:"error"`
}

func newEvent(clock clockwork.Clock, leagueID string, eventType EventType, payload any) (*DraftEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &DraftEvent{
		ID:        uuid.New().String(),
		LeagueID:  leagueID,
		Type:      eventType,
		Timestamp: clock.Now().UTC(),
		Data:      data,
	}, nil
}

// ParseEventPayload parses event data into the payload struct for its type
func ParseEventPayload(event *DraftEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeBoardUpdated:
		var payload BoardUpdatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeSelection:
		var payload SelectionPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeCommandRejected:
		var payload CommandRejectedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil // Unknown event type
	}
}
