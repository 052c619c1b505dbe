// internal/store/history.go
//
// Finished-game history and per-user stats.
// Only summaries are stored (status, level reached, total score); a live
// board can never be restored from these rows.

package store

import (
	"context"
	"database/sql"
	"time"
)

// GameRecord is one row of the games table.
type GameRecord struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`
	Level      int    `json:"level"`
	TotalScore int    `json:"totalScore"`
	MovesUsed  int    `json:"movesUsed"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Stats are the per-user counters kept on the users table.
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Streak      int `json:"streak"`
}

// History persists game summaries.
type History struct{ db *sql.DB }

// NewHistory wraps db.
func NewHistory(db *sql.DB) *History { return &History{db: db} }

// Start records a new game for a user (anonymous=false) or a guest.
func (h *History) Start(ctx context.Context, id, ownerID string, anonymous bool, mode string, at time.Time) error {
	col := "user_id"
	if anonymous {
		col = "anonymous_id"
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO games (id, `+col+`, mode, status, started_at) VALUES (?,?,?,?,?)`,
		id, ownerID, mode, "playing", at.UTC().Format(time.RFC3339))
	return err
}

// Finish stores the final summary of a game. Games already finished are left untouched.
// Reports whether a row was updated.
func (h *History) Finish(ctx context.Context, id, status string, level, total, movesUsed int, at time.Time) (bool, error) {
	res, err := h.db.ExecContext(ctx, `
        UPDATE games
        SET status=?, level=?, total_score=?, moves_used=?, finished_at=?
        WHERE id=? AND status='playing'`,
		status, level, total, movesUsed, at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Recent lists a user's latest games, newest first.
func (h *History) Recent(ctx context.Context, userID string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx, `
        SELECT id, mode, status, level, total_score, moves_used, started_at, COALESCE(finished_at,'')
        FROM games WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRecord{}
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.ID, &g.Mode, &g.Status, &g.Level, &g.TotalScore, &g.MovesUsed, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ClaimAnon transfers a guest's games to a user account after sign-in.
func (h *History) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := h.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

// BumpStats increments games played and updates wins/streak in one transaction.
func (h *History) BumpStats(ctx context.Context, userID string, won bool) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var st Stats
	if err := tx.QueryRowContext(ctx,
		`SELECT games_played, wins, streak FROM users WHERE id=?`, userID,
	).Scan(&st.GamesPlayed, &st.Wins, &st.Streak); err != nil {
		return err
	}
	st.GamesPlayed++
	if won {
		st.Wins++
		st.Streak++
	} else {
		st.Streak = 0
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`,
		st.GamesPlayed, st.Wins, st.Streak, userID,
	); err != nil {
		return err
	}
	return tx.Commit()
}
