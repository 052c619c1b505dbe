// internal/httpserver/server.go
//
// HTTP server wiring for the word grid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/{id}/... (see routes_game.go).
//   - Live event stream: GET /game/{id}/events over WebSocket (see events.go).
//   - Daily board endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine (see auth.go).
//
// Notes:
//   - Every call into a session happens under its store.Live lock; timer
//     continuations take the same lock through game.TimerScheduler.
//   - Finished and idle sessions are released from memory (see retention.go).
//   - The WebSocket route sits outside the timeout group since the
//     connection outlives the request.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

// LetterFactory builds the letter source for a new board from a seed.
type LetterFactory func(seed int64) grid.LetterSource

// Deps are the collaborators the server is built from.
type Deps struct {
	Config     config.Config
	Store      store.Store
	DB         *sql.DB
	Dictionary *words.Dictionary
	Levels     []game.Level
	Letters    LetterFactory // nil: frequency-weighted letters
}

// Server bundles router, live game registry, and DB-backed stores.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	db      *sql.DB
	history *store.History
	results *daily.Store
	dict    *words.Dictionary
	levels  []game.Level
	letters LetterFactory
	hub     *Hub
	dailies *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     d.Config,
		store:   d.Store,
		db:      d.DB,
		history: store.NewHistory(d.DB),
		results: daily.NewStore(d.DB),
		dict:    d.Dictionary,
		levels:  d.Levels,
		letters: d.Letters,
		hub:     NewHub(),
	}
	if s.letters == nil {
		s.letters = func(seed int64) grid.LetterSource { return grid.NewWeighted(seed) }
	}
	s.dailies = newDailyServer(s)

	// --- middleware ---
	s.r.Use(chimw.RequestID)          // add X-Request-ID
	s.r.Use(chimw.RealIP)             // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)          // recover from panics
	s.r.Use(requestLogger)            // zerolog access log
	s.r.Use(cors(s.cfg.ClientOrigin)) // credentials-friendly CORS
	s.r.Use(s.withOptionalAuth())     // user context when a token is present

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordgrid-go","endpoints":["/health","POST /game/new","GET /game/{id}","GET /game/{id}/events","/daily/*","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{
				"words":     s.dict.Len(),
				"minLength": s.dict.MinLength(),
				"levels":    len(s.levels),
			})
		})

		s.mountGame(r)
		s.mountDaily(r)
		s.mountAuthRoutes(r)
	})

	s.r.Get("/game/{id}/events", s.handleEvents)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start sweeps idle sessions in the background and serves HTTP on addr.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.janitor(ctx)
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
