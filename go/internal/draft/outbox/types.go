package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a board change waiting to be published
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	LeagueID  string          `json:"league_id"`
	EventType string          `json:"event_type"`
	Version   int64           `json:"version"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventPublisher delivers events outside the process
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}
