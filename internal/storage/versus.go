package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// VersusResult is the outcome of one garbage battle. Player and winner
// fields hold display names.
type VersusResult struct {
	ID        int64
	MatchID   string
	GameID    string
	Player1   string
	Player2   string
	Score1    int
	Score2    int
	Lines1    int
	Lines2    int
	Winner    string // empty for a draw or a cancelled match
	EndReason string // completed, disconnect or cancelled
	Duration  int    // seconds
	CreatedAt time.Time
}

var _ multiplayer.MatchResultSaver = (*Store)(nil)

const versusSelect = `SELECT id, match_id, game_id, player1, player2,
	score1, score2, lines1, lines2, winner, end_reason, seconds, created_at
	FROM versus_matches`

// SaveVersus records a battle and returns its row ID.
func (s *Store) SaveVersus(r VersusResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO versus_matches (match_id, game_id, player1, player2,
		 score1, score2, lines1, lines2, winner, end_reason, seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.GameID, r.Player1, r.Player2,
		r.Score1, r.Score2, r.Lines1, r.Lines2,
		sql.NullString{String: r.Winner, Valid: r.Winner != ""},
		r.EndReason, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match %s: %w", r.MatchID, err)
	}
	return res.LastInsertId()
}

// SaveMatchResult stores a result reported by the coordinator.
func (s *Store) SaveMatchResult(d multiplayer.MatchResultData) error {
	_, err := s.SaveVersus(VersusResult{
		MatchID:   d.MatchID,
		GameID:    d.GameID,
		Player1:   d.Player1,
		Player2:   d.Player2,
		Score1:    d.Score1,
		Score2:    d.Score2,
		Lines1:    d.Lines1,
		Lines2:    d.Lines2,
		Winner:    d.Winner,
		EndReason: d.EndReason,
		Duration:  d.Seconds,
	})
	return err
}

func scanVersus(row scanner) (VersusResult, error) {
	var r VersusResult
	var winner sql.NullString
	var created any
	err := row.Scan(
		&r.ID, &r.MatchID, &r.GameID, &r.Player1, &r.Player2,
		&r.Score1, &r.Score2, &r.Lines1, &r.Lines2,
		&winner, &r.EndReason, &r.Duration, &created,
	)
	r.Winner = winner.String
	r.CreatedAt = sqliteTime(created)
	return r, err
}

// VersusByID looks a battle up by match ID. A missing match is (nil, nil).
func (s *Store) VersusByID(matchID string) (*VersusResult, error) {
	r, err := scanVersus(s.db.QueryRow(versusSelect+` WHERE match_id = ?`, matchID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("storage: cannot load match %s: %w", matchID, err)
	}
	return &r, nil
}

// RecentVersus returns up to limit battles, newest first. A non-empty player
// restricts the list to battles that player took part in. A non-positive
// limit means 20.
func (s *Store) RecentVersus(player string, limit int) ([]VersusResult, error) {
	if limit <= 0 {
		limit = 20
	}
	query, args := versusSelect, []any{}
	if player != "" {
		query += ` WHERE player1 = ? OR player2 = ?`
		args = append(args, player, player)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	results, err := collect(s.db, scanVersus, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list matches: %w", err)
	}
	return results, nil
}
