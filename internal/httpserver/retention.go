// internal/httpserver/retention.go
//
// Releases live sessions from memory.
//   - A finished game stays readable for FINISHED_TTL, then is dropped.
//   - A game with no request for IDLE_TTL is dropped; if it was still in
//     play its games row is closed as "abandoned" (no stats change).
//
// Dropping a session also closes its event subscribers and forgets its
// daily board mapping.

package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/store"
)

const statusAbandoned = "abandoned"

// scheduleEvict drops a finished session once FINISHED_TTL has passed.
func (s *Server) scheduleEvict(l *store.Live) {
	if s.cfg.FinishedTTL <= 0 {
		return
	}
	time.AfterFunc(s.cfg.FinishedTTL, func() { s.evict(l) })
}

// evict removes a session from the registry, the hub and the daily index.
// Must not be called with the Live lock held.
func (s *Server) evict(l *store.Live) {
	id := l.ID()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if l.Daily != "" {
		s.dailies.forget(l.OwnerID+"|"+l.Daily, id)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("game", id).Msg("evict game")
	}
	// Under the session lock so a subscriber registering right now either
	// sees the game gone or is closed here.
	l.Lock()
	s.hub.Close(id)
	l.Unlock()
	log.Debug().Str("game", id).Msg("game evicted")
}

// sweepIdle evicts every session not seen since now-IDLE_TTL and returns
// how many were dropped.
func (s *Server) sweepIdle(now time.Time) int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cutoff := now.Add(-s.cfg.IdleTTL)
	idle, err := s.store.Idle(ctx, cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("list idle games")
		return 0
	}
	n := 0
	for _, l := range idle {
		l.Lock()
		if !l.LastSeen().Before(cutoff) {
			// Used again since the listing.
			l.Unlock()
			continue
		}
		sess := l.Session
		if !sess.State().Terminal() {
			if _, err := s.history.Finish(ctx, sess.ID(), statusAbandoned, sess.Level().Index+1,
				sess.TotalScore(), sess.MovesUsed(), now); err != nil {
				log.Warn().Err(err).Str("game", sess.ID()).Msg("abandon game")
			}
		}
		l.Unlock()
		s.evict(l)
		n++
	}
	if n > 0 {
		log.Info().Int("games", n).Msg("idle games evicted")
	}
	return n
}

// janitor sweeps idle sessions until ctx is done.
func (s *Server) janitor(ctx context.Context) {
	if s.cfg.IdleTTL <= 0 {
		return
	}
	every := s.cfg.IdleTTL / 2
	if every > time.Minute {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweepIdle(now)
		}
	}
}
