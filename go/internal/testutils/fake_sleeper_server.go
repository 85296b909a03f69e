package testutils

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// Fixture identifiers served by FakeSleeperServer.
const (
	FakeLeagueID      = "1001"
	FakeDraftID       = "901" // newest draft, no picks made, one traded pick
	FakeClosedDraftID = "900" // older draft with real picks
)

type FakeSleeperServer struct {
	s *httptest.Server

	mu     sync.Mutex
	hits   map[string]int
	failOn map[string]bool
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{
		hits:   make(map[string]int),
		failOn: make(map[string]bool),
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", func(w http.ResponseWriter, r *http.Request) {
			serveFile(w, "players.json")
		})

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueFileHandler("league_%s.json", "null"))
			r.Get("/rosters", leagueFileHandler("league_%s_rosters.json", "[]"))
			r.Get("/users", leagueFileHandler("league_%s_users.json", "[]"))
			r.Get("/drafts", leagueFileHandler("league_%s_drafts.json", "[]"))
		})

		r.Route("/draft/{draftID}", func(r chi.Router) {
			r.Get("/", draftFileHandler("draft_%s.json", "null"))
			r.Get("/picks", draftFileHandler("draft_%s_picks.json", "[]"))
			r.Get("/traded_picks", draftFileHandler("draft_%s_traded_picks.json", "[]"))
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// Hits returns how many times path was requested.
func (f *FakeSleeperServer) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// FailPath makes every request to path answer 500.
func (f *FakeSleeperServer) FailPath(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[path] = true
}

func (f *FakeSleeperServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		fail := f.failOn[r.URL.Path]
		f.mu.Unlock()

		if fail {
			http.Error(w, `{"error":"injected failure"}`, http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Unknown ids answer 200 with an empty body the way the real API does.
func leagueFileHandler(pattern, empty string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveFileOr(w, fmt.Sprintf(pattern, chi.URLParam(r, "leagueID")), empty)
	}
}

func draftFileHandler(pattern, empty string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveFileOr(w, fmt.Sprintf(pattern, chi.URLParam(r, "draftID")), empty)
	}
}

func serveFileOr(w http.ResponseWriter, name, empty string) {
	if _, err := sleeperdata.Open("sleeperdata/" + name); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(empty))
		return
	}
	serveFile(w, name)
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("error reading sleeper fixture")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
