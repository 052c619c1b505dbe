package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
)

func TestSignupLoginLogout(t *testing.T) {
	s := testServer(t)

	rec := call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "a", Password: "password1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short username = %d", rec.Code)
	}
	rec = call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "bob", Password: "short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password = %d", rec.Code)
	}
	rec = call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "bob", Password: "password1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup = %d %s", rec.Code, rec.Body.String())
	}
	rec = call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "BOB", Password: "password1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup = %d", rec.Code)
	}

	rec = call(t, s, http.MethodPost, "/auth/login", credentials{Username: "bob", Password: "wrong-password"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password login = %d", rec.Code)
	}
	rec = call(t, s, http.MethodPost, "/auth/login", credentials{Username: " bob ", Password: "password1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d %s", rec.Code, rec.Body.String())
	}
	token := cookieNamed(rec, "wordgrid_token")
	if token == nil || token.Value == "" {
		t.Fatal("login did not set the auth cookie")
	}

	rec = call(t, s, http.MethodGet, "/auth/me", nil, token)
	if me := decode[authUser](t, rec); rec.Code != http.StatusOK || me.Username != "bob" {
		t.Fatalf("/auth/me = %d %+v", rec.Code, me)
	}

	rec = call(t, s, http.MethodGet, "/auth/me", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("/auth/me without token = %d", rec.Code)
	}
	rec = call(t, s, http.MethodGet, "/auth/me", nil, &http.Cookie{Name: "wordgrid_token", Value: "garbage"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("/auth/me with bad token = %d", rec.Code)
	}

	rec = call(t, s, http.MethodPost, "/auth/logout", nil, token)
	if c := cookieNamed(rec, "wordgrid_token"); c == nil || c.MaxAge >= 0 {
		t.Fatalf("logout did not expire the cookie: %+v", c)
	}
}

func TestBearerTokenAndForeignSignature(t *testing.T) {
	s := testServer(t)
	rec := call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "carol", Password: "password1"})
	token := cookieNamed(rec, "wordgrid_token")

	req := newRequest(http.MethodGet, "/auth/me")
	req.Header.Set("Authorization", "Bearer "+token.Value)
	if got := serve(s, req); got.Code != http.StatusOK {
		t.Fatalf("bearer /auth/me = %d", got.Code)
	}

	other := testServer(t)
	other.cfg.JWTSecret = "another_secret"
	forged, _, err := other.signJWT("someone", "carol")
	if err != nil {
		t.Fatal(err)
	}
	req = newRequest(http.MethodGet, "/auth/me")
	req.Header.Set("Authorization", "Bearer "+forged)
	if got := serve(s, req); got.Code != http.StatusUnauthorized {
		t.Fatalf("foreign token accepted: %d", got.Code)
	}
}

func TestGuestGamesAreClaimedOnSignup(t *testing.T) {
	s := testServer(t, game.Level{TargetScore: 1000, MaxMoves: 1})

	id, rec := newGame(t, s)
	anon := cookieNamed(rec, anonCookieName)
	spell(t, s, id, wordCAT, anon)
	call(t, s, http.MethodPost, "/game/"+id+"/confirm", nil, anon)

	rec = call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "dave", Password: "password1"}, anon)
	token := cookieNamed(rec, "wordgrid_token")

	rec = call(t, s, http.MethodGet, "/games/mine", nil, token)
	games := decode[[]store.GameRecord](t, rec)
	if len(games) != 1 || games[0].ID != id || games[0].Status != "lost" {
		t.Fatalf("guest game not claimed: %+v", games)
	}
}

func TestDailyBoardOncePerDay(t *testing.T) {
	s := testServer(t, game.Level{TargetScore: 40, MaxMoves: 2})
	rec := call(t, s, http.MethodPost, "/auth/signup", credentials{Username: "erin", Password: "password1"})
	token := cookieNamed(rec, "wordgrid_token")

	rec = call(t, s, http.MethodPost, "/daily/new", nil, token)
	first := decode[dailyNewRes](t, rec)
	if first.Played || first.GameID == "" || first.Date != daily.DateKey(time.Now()) {
		t.Fatalf("unexpected daily start: %+v", first)
	}
	rec = call(t, s, http.MethodPost, "/daily/new", nil, token)
	if again := decode[dailyNewRes](t, rec); again.GameID != first.GameID {
		t.Fatalf("daily board not resumed: %s != %s", again.GameID, first.GameID)
	}

	rec = call(t, s, http.MethodPost, "/game/"+first.GameID+"/restart", map[string]int{"level": 0}, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("restart on a daily board = %d", rec.Code)
	}

	spell(t, s, first.GameID, wordCAT, token)
	call(t, s, http.MethodPost, "/game/"+first.GameID+"/confirm", nil, token)

	// The win lands after the level-advance delay.
	var board lbRes
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec = call(t, s, http.MethodGet, "/daily/leaderboard", nil)
		board = decode[lbRes](t, rec)
		if len(board.Top) > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(board.Top) != 1 || board.Top[0].Username != "erin" || board.Top[0].Score != 40 || board.Top[0].Level != 1 {
		t.Fatalf("unexpected leaderboard: %+v", board)
	}

	rec = call(t, s, http.MethodPost, "/daily/new", nil, token)
	if done := decode[dailyNewRes](t, rec); !done.Played || done.GameID != "" {
		t.Fatalf("second daily attempt: %+v", done)
	}

	rec = call(t, s, http.MethodGet, "/stats/me", nil, token)
	if stats := decode[map[string]any](t, rec); stats["wins"] != float64(1) {
		t.Fatalf("win not counted: %v", stats)
	}

	if rec := call(t, s, http.MethodGet, "/daily/leaderboard?date=yesterday", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date = %d", rec.Code)
	}
}
