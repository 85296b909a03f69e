package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftboard/go/internal/draft/board"
)

// EventTypeBoardUpdated is the event type for every board change
const EventTypeBoardUpdated = "board_updated"

type Config struct {
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		BufferSize: 256,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

// boardUpdatedPayload is the published body of a board change
type boardUpdatedPayload struct {
	Action string `json:"action"`
}

// Worker relays board updates to a publisher in order. Updates arriving
// while the buffer is full are dropped and counted.
type Worker struct {
	publisher EventPublisher
	config    Config
	clock     clockwork.Clock
	leagueID  string
	metrics   Metrics

	queue chan OutboxEvent

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewWorker(leagueID string, publisher EventPublisher, cfg Config, clock clockwork.Clock) *Worker {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Worker{
		publisher: publisher,
		config:    cfg,
		clock:     clock,
		leagueID:  leagueID,
		queue:     make(chan OutboxEvent, cfg.BufferSize),
		stopChan:  make(chan struct{}),
	}
}

// Enqueue records a board update for publishing. It never blocks.
func (w *Worker) Enqueue(u board.Update) {
	payload, err := json.Marshal(boardUpdatedPayload{Action: u.Action})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal board update")
		return
	}
	event := OutboxEvent{
		ID:        uuid.New(),
		LeagueID:  w.leagueID,
		EventType: EventTypeBoardUpdated,
		Version:   u.Version,
		Payload:   payload,
		CreatedAt: w.clock.Now().UTC(),
	}

	select {
	case w.queue <- event:
	default:
		w.metrics.dropped.Add(1)
		log.Warn().Int64("version", u.Version).Msg("outbox buffer full, dropping event")
	}
}

func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	log.Info().Int("buffer_size", w.config.BufferSize).Int("max_retries", w.config.MaxRetries).Msg("outbox worker started")
	return nil
}

func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker not running")
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()

	log.Info().Msg("outbox worker stopped")
	return nil
}

// Metrics returns the relay counters
func (w *Worker) Metrics() MetricsSnapshot {
	return w.metrics.Snapshot()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event := <-w.queue:
			if err := w.publishWithRetry(ctx, event); err != nil {
				w.metrics.failed.Add(1)
				log.Error().Err(err).
					Str("event_id", event.ID.String()).
					Int64("version", event.Version).
					Msg("failed to publish event")
				continue
			}
			w.metrics.published.Add(1)
		}
	}
}

func (w *Worker) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error

	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			w.metrics.retries.Add(1)
			if delay := w.config.RetryDelay * time.Duration(attempt); delay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-w.stopChan:
					return lastErr
				case <-w.clock.After(delay):
				}
			}
		}

		if err := w.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Warn().Err(err).
				Str("event_id", event.ID.String()).
				Int("attempt", attempt+1).
				Msg("failed to publish event, retrying")
			continue
		}
		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", w.config.MaxRetries+1, lastErr)
}
