// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Board" mode.
//   - POST /daily/new         → start (or resume) today's board
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Every player gets the same starting board per UTC day (letters seeded by
// HMAC(date, DAILY_SALT)). A daily session is played through the normal
// /game/{id}/... endpoints. Each user has one result per day; the first
// finished game counts.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/daily"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	mu       sync.Mutex        // guards sessions
	sessions map[string]string // userID|date → live game ID
}

func newDailyServer(s *Server) *dailyServer {
	return &dailyServer{srv: s, sessions: make(map[string]string)}
}

// forget drops key if it still points at gameID.
func (d *dailyServer) forget(key, gameID string) {
	d.mu.Lock()
	if d.sessions[key] == gameID {
		delete(d.sessions, key)
	}
	d.mu.Unlock()
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := s.dailies
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	newGameRes
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or resumes the caller's board for today.
//   - A stored result for today → Played=true, no game.
//   - An unfinished live session → that session.
//   - Otherwise a fresh session on today's seeded board.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	s := d.srv
	uid, anon := s.ownerOf(w, r)
	now := time.Now().UTC()
	date := daily.DateKey(now)

	played, err := s.results.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Error().Err(err).Msg("daily lookup")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.sessions[key]; ok {
		if l, err := s.store.Get(r.Context(), id); err == nil {
			l.Lock()
			snap := l.Session.Snapshot()
			l.Unlock()
			if !snap.State.Terminal() {
				_ = json.NewEncoder(w).Encode(dailyNewRes{newGameRes: newGameRes{GameID: id, Game: &snap}, Date: date})
				return
			}
		}
	}

	l, err := s.startSession(r.Context(), uid, anon, daily.Seed(now, s.cfg.DailySalt), date)
	if err != nil {
		log.Error().Err(err).Msg("start daily game")
		writeError(w, http.StatusInternalServerError, "start_failed")
		return
	}
	d.sessions[key] = l.ID()

	l.Lock()
	snap := l.Session.Snapshot()
	l.Unlock()
	_ = json.NewEncoder(w).Encode(dailyNewRes{newGameRes: newGameRes{GameID: snap.ID, Game: &snap}, Date: date})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = daily.DefaultLeaderboardLimit
	}
	rows, err := d.srv.results.Leaderboard(r.Context(), date, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
