// internal/httpserver/routes_game.go
//
// Game endpoints (optional auth; guests can play):
//   - POST /game/new                 → start a session at level 0
//   - GET  /game/{id}                → snapshot
//   - POST /game/{id}/click          → {tileId} or {row,col}
//   - POST /game/{id}/confirm        → submit the selected word
//   - POST /game/{id}/clear          → drop the selection
//   - POST /game/{id}/clear-done     → "clear animation finished"
//   - POST /game/{id}/restart        → restart the current level (or replay an
//                                      earlier one) with a fresh board
//
// Sessions live in the store; a summary row is written to the games table
// when a session starts and updated once when it ends. Finished sessions
// are dropped from the store later (see retention.go).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
)

const (
	modeNormal = "normal"
	modeDaily  = "daily"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.withLive(s.handleGet))
		r.Post("/click", s.withLive(s.handleClick))
		r.Post("/confirm", s.withLive(s.handleConfirm))
		r.Post("/clear", s.withLive(s.handleClear))
		r.Post("/clear-done", s.withLive(s.handleClearDone))
		r.Post("/restart", s.withLive(s.handleRestart))
	})
}

// liveHandler runs with the session lock held.
type liveHandler func(w http.ResponseWriter, r *http.Request, l *store.Live)

// withLive resolves {id} and serializes the handler with the session's timers.
func (s *Server) withLive(h liveHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		l.Touch(time.Now())
		l.Lock()
		defer l.Unlock()
		h(w, r, l)
	}
}

// startSession builds a session, registers it and records its games row.
func (s *Server) startSession(ctx context.Context, ownerID string, anonymous bool, seed int64, dailyKey string) (*store.Live, error) {
	l := &store.Live{
		OwnerID:   ownerID,
		Anonymous: anonymous,
		Daily:     dailyKey,
		StartedAt: time.Now(),
	}
	sess, err := game.New(game.Config{
		Rows:         s.cfg.Rows,
		Cols:         s.cfg.Cols,
		Spacing:      s.cfg.TileSpacing,
		Levels:       s.levels,
		ClearDelay:   s.cfg.ClearDelay,
		AdvanceDelay: s.cfg.AdvanceDelay,
	}, game.Deps{
		Dictionary: s.dict,
		Letters:    s.letters(seed),
		Scheduler:  game.TimerScheduler{L: l},
		Observer:   s.observe(l),
	})
	if err != nil {
		return nil, err
	}
	l.Session = sess
	if err := s.store.Save(ctx, l); err != nil {
		return nil, err
	}

	mode := modeNormal
	if dailyKey != "" {
		mode = modeDaily
	}
	if err := s.history.Start(ctx, sess.ID(), ownerID, anonymous, mode, l.StartedAt); err != nil {
		log.Warn().Err(err).Str("game", sess.ID()).Msg("insert game row")
	}
	log.Info().Str("game", sess.ID()).Str("mode", mode).Bool("anonymous", anonymous).Msg("game started")
	return l, nil
}

// observe publishes every event and persists the outcome of finished games.
// It runs inside session calls, with the Live lock held.
func (s *Server) observe(l *store.Live) game.Observer {
	return game.ObserverFunc(func(e game.Event) {
		s.hub.Publish(e)
		switch e.Kind {
		case game.EventGameWon, game.EventGameLost:
			s.recordFinish(l, e.Kind == game.EventGameWon)
		}
	})
}

func (s *Server) recordFinish(l *store.Live, won bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess := l.Session
	status := string(game.StateLost)
	if won {
		status = string(game.StateWon)
	}
	reached := sess.Level().Index + 1
	first, err := s.history.Finish(ctx, sess.ID(), status, reached, sess.TotalScore(), sess.MovesUsed(), time.Now())
	if err != nil {
		log.Warn().Err(err).Str("game", sess.ID()).Msg("finish game")
	}
	s.scheduleEvict(l)
	if !first {
		return
	}
	if !l.Anonymous {
		if err := s.history.BumpStats(ctx, l.OwnerID, won); err != nil {
			log.Warn().Err(err).Str("user", l.OwnerID).Msg("bump stats")
		}
	}
	if l.Daily != "" {
		if err := s.results.InsertResult(ctx, daily.Result{
			UserID:    l.OwnerID,
			Date:      l.Daily,
			Score:     sess.TotalScore(),
			Level:     reached,
			MovesUsed: sess.MovesUsed(),
		}); err != nil {
			log.Warn().Err(err).Str("game", sess.ID()).Msg("insert daily result")
		}
	}
	log.Info().Str("game", sess.ID()).Str("status", status).Int("total", sess.TotalScore()).Msg("game finished")
}

// newGameRes is returned by /game/new and /daily/new.
type newGameRes struct {
	GameID string         `json:"gameId"`
	Game   *game.Snapshot `json:"game,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	owner, anon := s.ownerOf(w, r)
	l, err := s.startSession(r.Context(), owner, anon, time.Now().UnixNano(), "")
	if err != nil {
		log.Error().Err(err).Msg("start game")
		writeError(w, http.StatusInternalServerError, "start_failed")
		return
	}
	l.Lock()
	snap := l.Session.Snapshot()
	l.Unlock()
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: snap.ID, Game: &snap})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, l *store.Live) {
	_ = json.NewEncoder(w).Encode(l.Session.Snapshot())
}

// clickReq addresses a tile by ID or by board coordinates.
type clickReq struct {
	TileID *int `json:"tileId"`
	Row    *int `json:"row"`
	Col    *int `json:"col"`
}

type clickRes struct {
	Changed bool          `json:"changed"`
	Word    string        `json:"word"`
	Game    game.Snapshot `json:"game"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request, l *store.Live) {
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var changed bool
	switch {
	case req.TileID != nil:
		changed = l.Session.ClickTile(*req.TileID)
	case req.Row != nil && req.Col != nil:
		changed = l.Session.Click(*req.Row, *req.Col)
	default:
		writeError(w, http.StatusBadRequest, "tile_required")
		return
	}
	_ = json.NewEncoder(w).Encode(clickRes{Changed: changed, Word: l.Session.Word(), Game: l.Session.Snapshot()})
}

type confirmRes struct {
	game.Verdict
	Game game.Snapshot `json:"game"`
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request, l *store.Live) {
	v, err := l.Session.Confirm()
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(confirmRes{Verdict: v, Game: l.Session.Snapshot()})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request, l *store.Live) {
	l.Session.ClearSelection()
	_ = json.NewEncoder(w).Encode(l.Session.Snapshot())
}

type clearDoneRes struct {
	Applied bool          `json:"applied"`
	Game    game.Snapshot `json:"game"`
}

func (s *Server) handleClearDone(w http.ResponseWriter, r *http.Request, l *store.Live) {
	applied := l.Session.FinishClear()
	_ = json.NewEncoder(w).Encode(clearDoneRes{Applied: applied, Game: l.Session.Snapshot()})
}

// restartReq names the level to restart; omitted means the current one.
type restartReq struct {
	Level *int `json:"level"`
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, l *store.Live) {
	if l.Daily != "" {
		writeError(w, http.StatusConflict, "daily_no_restart")
		return
	}
	var req restartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	level := l.Session.Level().Index
	if req.Level != nil {
		level = *req.Level
	}
	if err := l.Session.StartLevel(level); err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(l.Session.Snapshot())
}

// writeGameError maps session errors to 4xx responses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoSelection):
		writeError(w, http.StatusBadRequest, "no_selection")
	case errors.Is(err, game.ErrLevelOutOfRange):
		writeError(w, http.StatusBadRequest, "level_out_of_range")
	case errors.Is(err, game.ErrLevelLocked):
		writeError(w, http.StatusConflict, "level_locked")
	case errors.Is(err, game.ErrSessionOver):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, game.ErrLevelTransition):
		writeError(w, http.StatusConflict, "level_transition")
	case errors.Is(err, game.ErrBoardBusy):
		writeError(w, http.StatusConflict, "board_busy")
	default:
		log.Error().Err(err).Msg("game error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
