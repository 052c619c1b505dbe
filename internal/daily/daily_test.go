package daily

import (
	"context"
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/store"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2024, 3, 2, 5, 0, 0, 0, loc)
	if got := DateKey(d); got != "2024-03-01" {
		t.Fatalf("DateKey = %q, want 2024-03-01", got)
	}
}

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	next := morning.AddDate(0, 0, 1)

	if Seed(morning, "salt") != Seed(evening, "salt") {
		t.Fatal("seed changed within a day")
	}
	if Seed(morning, "salt") == Seed(next, "salt") {
		t.Fatal("seed did not change across days")
	}
	if Seed(morning, "salt") == Seed(morning, "pepper") {
		t.Fatal("seed ignores the salt")
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("store.Migrate: %v", err)
	}
	return NewStore(db)
}

func TestResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	date := "2024-03-01"

	played, err := s.AlreadyPlayed(ctx, "a", date)
	if err != nil || played {
		t.Fatalf("AlreadyPlayed = %v, %v before any result", played, err)
	}

	results := []Result{
		{UserID: "a", Date: date, Score: 500, Level: 1, MovesUsed: 20},
		{UserID: "b", Date: date, Score: 900, Level: 2, MovesUsed: 30},
		{UserID: "c", Date: date, Score: 500, Level: 1, MovesUsed: 12},
		{UserID: "d", Date: "2024-03-02", Score: 9999, Level: 4, MovesUsed: 5},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult(%s): %v", r.UserID, err)
		}
	}
	// A second attempt on the same day is ignored.
	if err := s.InsertResult(ctx, Result{UserID: "a", Date: date, Score: 5000}); err != nil {
		t.Fatalf("duplicate InsertResult returned error: %v", err)
	}

	played, err = s.AlreadyPlayed(ctx, "a", date)
	if err != nil || !played {
		t.Fatalf("AlreadyPlayed = %v, %v after a result", played, err)
	}

	rows, err := s.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	var order []string
	for _, r := range rows {
		order = append(order, r.UserID)
	}
	if len(order) != 3 || order[0] != "b" || order[1] != "c" || order[2] != "a" {
		t.Fatalf("leaderboard order = %v, want [b c a]", order)
	}
	if rows[2].Score != 500 {
		t.Fatalf("duplicate result overwrote the first: %+v", rows[2])
	}

	top, err := s.Leaderboard(ctx, date, 1)
	if err != nil || len(top) != 1 {
		t.Fatalf("Leaderboard limit 1 = %v, %v", top, err)
	}
}
