package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one finished solo game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Lines     int
	Level     int
	CreatedAt time.Time
}

// GameStats aggregates every recorded game of one variant.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	BestLines  int
	AvgScore   float64
	LastPlayed time.Time
}

// SaveScore records a finished game and returns its row ID.
func (s *Store) SaveScore(gameID string, score, lines, level int) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO scores (game_id, score, lines, level) VALUES (?, ?, ?, ?)`,
		gameID, score, lines, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return res.LastInsertId()
}

func scanScore(row scanner) (ScoreEntry, error) {
	var e ScoreEntry
	var created any
	err := row.Scan(&e.ID, &e.GameID, &e.Score, &e.Lines, &e.Level, &created)
	e.CreatedAt = sqliteTime(created)
	return e, err
}

// TopScores returns up to limit scores for gameID, best first. Equal scores
// rank by cleared lines. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := collect(s.db, scanScore,
		`SELECT id, game_id, score, lines, level, created_at FROM scores
		 WHERE game_id = ? ORDER BY score DESC, lines DESC LIMIT ?`,
		gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores for %s: %w", gameID, err)
	}
	return entries, nil
}

// HighScore returns the best score for gameID, or 0 when none is recorded.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every score of gameID.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetAllGamesStats returns per-variant aggregates keyed by game ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	list, err := collect(s.db, func(row scanner) (*GameStats, error) {
		var gs GameStats
		var last any
		err := row.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.BestLines, &gs.AvgScore, &last)
		gs.LastPlayed = sqliteTime(last)
		return &gs, err
	}, `SELECT game_id, COUNT(*), MAX(score), MAX(lines), AVG(score), MAX(created_at)
	    FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot aggregate scores: %w", err)
	}

	stats := make(map[string]*GameStats, len(list))
	for _, gs := range list {
		stats[gs.GameID] = gs
	}
	return stats, nil
}
