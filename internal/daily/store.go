package daily

import (
	"context"
	"database/sql"
)

// DefaultLeaderboardLimit caps leaderboard queries when no limit is given.
const DefaultLeaderboardLimit = 20

type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	MovesUsed int    `json:"movesUsed"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished daily board. Only the first result per user and date counts.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, score, level, moves_used)
         VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.Score, r.Level, r.MovesUsed,
	)
	return err
}

type LBRow struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	MovesUsed int    `json:"movesUsed"`
}

// Leaderboard ranks a date's results: highest score, then fewest moves, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.user_id, COALESCE(u.username,''), r.score, r.level, r.moves_used
         FROM daily_results r LEFT JOIN users u ON u.id = r.user_id
         WHERE r.date=?
         ORDER BY r.score DESC, r.moves_used ASC, r.created_at ASC, r.rowid ASC
         LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Score, &r.Level, &r.MovesUsed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
