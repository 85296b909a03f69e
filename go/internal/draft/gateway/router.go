package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Service) router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/board", func(r chi.Router) {
		if s.config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.config.RequestTimeout))
		}

		r.Get("/", s.handleGetBoard)
		r.Get("/rounds/{round:\\d+}", s.handleGetRound)

		r.Put("/picks/{round:\\d+}/{pick:\\d+}", s.handleAssignPick)
		r.Delete("/picks/{round:\\d+}/{pick:\\d+}", s.handleClearPick)

		r.Put("/watchlist/{playerID}", s.handleAddToWatchlist)
		r.Delete("/watchlist/{playerID}", s.handleRemoveFromWatchlist)

		r.Put("/rankings", s.handleSetRankings)
		r.Post("/rankings/move", s.handleMovePlayer)

		r.Put("/settings", s.handleSettings)
		r.Post("/refresh", s.handleRefresh)
	})

	r.Get("/ws/board", s.handleWebSocket)
	r.Get("/ws/stats", s.handleConnectionStats)

	return r
}

// requestLogger logs each request through zerolog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}
