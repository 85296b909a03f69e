package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// LogPublisher logs events instead of sending them; used when no broker is configured
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	log.Debug().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("league_id", event.LeagueID).
		Int64("version", event.Version).
		Msg("publishing event")
	return nil
}

// NATSPublisher publishes events on core NATS subjects of the form
// <prefix>.<league>.<event type>
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("draftboard-outbox"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subjectPrefix}, nil
}

// Subject returns the subject an event is published on
func (p *NATSPublisher) Subject(event OutboxEvent) string {
	return fmt.Sprintf("%s.%s.%s", p.subject, event.LeagueID, event.EventType)
}

func (p *NATSPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.Subject(event)
	if err := p.nc.Publish(subject, messageBytes); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	log.Debug().Str("subject", subject).Int("size", len(messageBytes)).Msg("published to NATS")
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
