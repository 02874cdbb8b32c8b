package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/arcade-classics/internal/multiplayer"
)

// OnlineMatchResult is a finished online match.
type OnlineMatchResult struct {
	ID             int64
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	WinnerSession  string // empty on a draw
	EndReason      string
	Duration       int // seconds
	CreatedAt      time.Time
}

const matchColumns = `id, match_id, game_id, player1_session, player2_session,
	score1, score2, winner_session, end_reason, duration_secs, created_at`

// SaveOnlineMatch stores a match result and returns its row id.
func (s *Store) SaveOnlineMatch(r OnlineMatchResult) (int64, error) {
	id, err := s.insert(
		`INSERT INTO online_matches
		 (match_id, game_id, player1_session, player2_session, score1, score2, winner_session, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.GameID, r.Player1Session, r.Player2Session,
		r.Score1, r.Score2, nullable(r.WinnerSession), r.EndReason, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save online match: %w", err)
	}
	return id, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (OnlineMatchResult, error) {
	var (
		r       OnlineMatchResult
		winner  sql.NullString
		created any
	)
	err := row.Scan(
		&r.ID, &r.MatchID, &r.GameID, &r.Player1Session, &r.Player2Session,
		&r.Score1, &r.Score2, &winner, &r.EndReason, &r.Duration, &created,
	)
	r.WinnerSession = winner.String
	r.CreatedAt = scanTime(created)
	return r, err
}

// OnlineMatchByID looks up a match by its match id. It returns
// ErrNotFound when there is none.
func (s *Store) OnlineMatchByID(matchID string) (*OnlineMatchResult, error) {
	r, err := scanMatch(s.queryRow("SELECT "+matchColumns+" FROM online_matches WHERE match_id = ?", matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online match: %w", err)
	}
	return &r, nil
}

// RecentOnlineMatches returns the newest matches first.
func (s *Store) RecentOnlineMatches(limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.query(
		"SELECT "+matchColumns+" FROM online_matches ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online matches: %w", err)
	}
	return scanMatches(rows)
}

// PlayerMatchHistory returns the newest matches a session played in.
func (s *Store) PlayerMatchHistory(sessionID string, limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.query(
		`SELECT `+matchColumns+`
		 FROM online_matches
		 WHERE player1_session = ? OR player2_session = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sessionID, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]OnlineMatchResult, error) {
	defer rows.Close()

	var out []OnlineMatchResult
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

var _ multiplayer.MatchResultSaver = (*Store)(nil)

// SaveMatchResult stores a result reported by the multiplayer coordinator.
func (s *Store) SaveMatchResult(d multiplayer.MatchResultData) error {
	_, err := s.SaveOnlineMatch(OnlineMatchResult{
		MatchID:        d.MatchID,
		GameID:         d.GameID,
		Player1Session: d.Player1Session,
		Player2Session: d.Player2Session,
		Score1:         d.Score1,
		Score2:         d.Score2,
		WinnerSession:  d.WinnerSession,
		EndReason:      d.EndReason,
		Duration:       d.DurationSecs,
	})
	return err
}
