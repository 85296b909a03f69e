package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/render"

	"github.com/mcdev12/draftboard/go/internal/draft/board"
	"github.com/mcdev12/draftboard/go/internal/draft/pick"
)

// Board is the board service the gateway exposes
type Board interface {
	LeagueID() string
	View() board.View
	RoundView(round int) ([]pick.TeamPick, error)
	Dispatch(ctx context.Context, action board.Action) error
	Refresh(ctx context.Context) error
	Subscribe(fn func(board.Update)) func()
}

// Service serves the board over HTTP and pushes changes over WebSocket
type Service struct {
	board             Board
	connectionManager *ConnectionManager
	render            *render.Render
	clock             clockwork.Clock
	config            Config
	unsubscribe       func()
}

// Config holds configuration for the board gateway
type Config struct {
	ConnectionConfig ConnectionConfig
	AllowedOrigins   []string
	RequestTimeout   time.Duration
}

// DefaultConfig returns default configuration for the board gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		AllowedOrigins:   []string{"*"},
		RequestTimeout:   30 * time.Second,
	}
}

// NewService creates the gateway and subscribes it to board updates. Updates
// are queued until Start runs.
func NewService(config Config, b Board, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Service{
		board:             b,
		connectionManager: NewConnectionManager(config.ConnectionConfig, clock),
		render:            render.New(render.Options{}),
		clock:             clock,
		config:            config,
	}
	s.connectionManager.handler = s.handleCommand
	s.unsubscribe = b.Subscribe(s.onUpdate)
	return s
}

// Start delivers events to WebSocket clients until ctx is done
func (s *Service) Start(ctx context.Context) error {
	log.Info().Str("league_id", s.board.LeagueID()).Msg("starting board gateway service")
	s.connectionManager.Start(ctx)
	return s.Stop()
}

// Stop unsubscribes from the board
func (s *Service) Stop() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	log.Info().Msg("board gateway service stopped")
	return nil
}

// Handler returns the gateway's routes wrapped in CORS
func (s *Service) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.router())
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() ConnectionStats {
	return s.connectionManager.GetConnectionStats()
}

func (s *Service) onUpdate(u board.Update) {
	s.broadcast(EventTypeBoardUpdated, BoardUpdatedPayload{
		Action:  u.Action,
		Version: u.Version,
		Board:   s.board.View(),
	})
}

func (s *Service) broadcast(eventType EventType, payload any) {
	event, err := newEvent(s.clock, s.board.LeagueID(), eventType, payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to build event")
		return
	}
	s.connectionManager.Broadcast(event)
}

func (s *Service) sendTo(c *Connection, eventType EventType, payload any) {
	event, err := newEvent(s.clock, s.board.LeagueID(), eventType, payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to build event")
		return
	}
	s.connectionManager.SendTo(c, event)
}
