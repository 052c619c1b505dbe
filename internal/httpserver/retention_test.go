package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
)

// waitGone polls GET /game/{id} until it returns 404.
func waitGone(t *testing.T, s *Server, id string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := call(t, s, http.MethodGet, "/game/"+id, nil)
		if rec.Code == http.StatusNotFound {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("game %s still served after finishing: %d", id, rec.Code)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFinishedGameIsEvicted(t *testing.T) {
	s := testServer(t, game.Level{TargetScore: 1000, MaxMoves: 1})
	s.cfg.FinishedTTL = 20 * time.Millisecond

	id, _ := newGame(t, s)
	sub := s.hub.Register(id)
	spell(t, s, id, wordDOG)
	rec := call(t, s, http.MethodPost, "/game/"+id+"/confirm", nil)
	if res := decode[confirmRes](t, rec); res.State != game.StateLost {
		t.Fatalf("expected a lost game: %+v", res)
	}

	// Still readable right after the finish.
	if rec := call(t, s, http.MethodGet, "/game/"+id, nil); rec.Code != http.StatusOK {
		t.Fatalf("finished game gone immediately: %d", rec.Code)
	}
	waitGone(t, s, id)

	for range sub.ch {
	}
	if s.hub.Count(id) != 0 {
		t.Fatal("subscribers survived eviction")
	}
}

func TestFinishedDailyBoardIsForgotten(t *testing.T) {
	s := testServer(t, game.Level{TargetScore: 40, MaxMoves: 2})
	s.cfg.FinishedTTL = 20 * time.Millisecond
	rec := call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "frank", Password: "password1"})
	token := cookieNamed(rec, "wordgrid_token")

	rec = call(t, s, http.MethodPost, "/daily/new", nil, token)
	first := decode[dailyNewRes](t, rec)
	spell(t, s, first.GameID, wordCAT, token)
	call(t, s, http.MethodPost, "/game/"+first.GameID+"/confirm", nil, token)

	waitGone(t, s, first.GameID)
	s.dailies.mu.Lock()
	left := len(s.dailies.sessions)
	s.dailies.mu.Unlock()
	if left != 0 {
		t.Fatalf("daily index still holds %d entries", left)
	}

	rec = call(t, s, http.MethodPost, "/daily/new", nil, token)
	if again := decode[dailyNewRes](t, rec); !again.Played {
		t.Fatalf("finished daily board offered again: %+v", again)
	}
}

func TestIdleGamesAreAbandoned(t *testing.T) {
	s := testServer(t)
	s.cfg.IdleTTL = time.Minute
	rec := call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "gina", Password: "password1"})
	token := cookieNamed(rec, "wordgrid_token")
	id, _ := newGame(t, s, token)

	if n := s.sweepIdle(time.Now()); n != 0 {
		t.Fatalf("fresh game swept: %d", n)
	}
	if n := s.sweepIdle(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("sweepIdle = %d, want 1", n)
	}
	if rec := call(t, s, http.MethodGet, "/game/"+id, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("idle game still served: %d", rec.Code)
	}

	rec = call(t, s, http.MethodGet, "/games/mine", nil, token)
	games := decode[[]store.GameRecord](t, rec)
	if len(games) != 1 || games[0].Status != statusAbandoned {
		t.Fatalf("unexpected history: %+v", games)
	}
	rec = call(t, s, http.MethodGet, "/stats/me", nil, token)
	if stats := decode[map[string]any](t, rec); stats["gamesPlayed"] != float64(0) {
		t.Fatalf("abandoned game counted: %v", stats)
	}
}

func TestIdleSweepDisabled(t *testing.T) {
	s := testServer(t)
	id, _ := newGame(t, s)
	if n := s.sweepIdle(time.Now().Add(24 * time.Hour)); n != 0 {
		t.Fatalf("sweep ran with IDLE_TTL unset: %d", n)
	}
	if rec := call(t, s, http.MethodGet, "/game/"+id, nil); rec.Code != http.StatusOK {
		t.Fatalf("game dropped: %d", rec.Code)
	}
}
