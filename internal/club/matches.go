package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-sqlite3"
	"github.com/mauv0809/tt-encounter/internal/match"
	"github.com/mauv0809/tt-encounter/internal/scoring"
	"github.com/vmihailenco/msgpack/v5"
)

const matchColumns = `
	id, encounter_id, match_number, player1_id, player1_name, player1_team_id,
	player2_id, player2_name, player2_team_id, is_double, sets_blob, sets_won_1, sets_won_2,
	status, table_number, side_flipped, version
	FROM matches`

func marshalSets(sets []scoring.Set) ([]byte, error) {
	if sets == nil {
		sets = []scoring.Set{}
	}
	blob, err := msgpack.Marshal(sets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sets: %w", err)
	}
	return blob, nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(row scanner) (*match.Match, error) {
	var m match.Match
	var setsBlob []byte
	var status string
	var table sql.NullInt64

	err := row.Scan(
		&m.ID, &m.EncounterID, &m.MatchNumber,
		&m.Player1.ID, &m.Player1.Name, &m.Player1.TeamID,
		&m.Player2.ID, &m.Player2.Name, &m.Player2.TeamID,
		&m.IsDouble, &setsBlob, &m.SetsWon.Side1, &m.SetsWon.Side2,
		&status, &table, &m.SideFlipped, &m.Version,
	)
	if err != nil {
		return nil, err
	}
	m.Status = match.Status(status)
	if table.Valid {
		n := int(table.Int64)
		m.TableNumber = &n
	}
	m.Sets = []scoring.Set{}
	if len(setsBlob) > 0 {
		if err := msgpack.Unmarshal(setsBlob, &m.Sets); err != nil {
			log.Error("Failed to decode sets_blob", "error", err, "matchID", m.ID)
			return nil, fmt.Errorf("failed to decode sets of match %s: %w", m.ID, err)
		}
	}
	return &m, nil
}

func (s *store) GetMatch(ctx context.Context, matchID string) (*match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMatch(s.db.QueryRowContext(ctx, "SELECT "+matchColumns+" WHERE id = ?", matchID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// GetMatches returns the fixtures of an encounter in play order.
func (s *store) GetMatches(ctx context.Context, encounterID string) ([]match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+matchColumns+" WHERE encounter_id = ? ORDER BY match_number", encounterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	defer rows.Close()

	var matches []match.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// updateMatch writes m if the stored version still equals m.Version.
func updateMatch(ctx context.Context, db execer, m *match.Match) error {
	setsBlob, err := marshalSets(m.Sets)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE matches SET
			player1_id = ?, player1_name = ?, player2_id = ?, player2_name = ?,
			sets_blob = ?, sets_won_1 = ?, sets_won_2 = ?, status = ?, table_number = ?,
			side_flipped = ?, version = version + 1
		WHERE id = ? AND version = ?
	`,
		m.Player1.ID, m.Player1.Name, m.Player2.ID, m.Player2.Name,
		setsBlob, m.SetsWon.Side1, m.SetsWon.Side2, m.Status, m.TableNumber,
		m.SideFlipped, m.ID, m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("match %s on table %v: %w", m.ID, derefTable(m.TableNumber), ErrTableTaken)
		}
		return fmt.Errorf("failed to update match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if n == 0 {
		var exists int
		if err := db.QueryRowContext(ctx, "SELECT 1 FROM matches WHERE id = ?", m.ID).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("match %s: %w", m.ID, ErrNotFound)
		}
		return fmt.Errorf("match %s at version %d: %w", m.ID, m.Version, ErrVersionConflict)
	}
	return nil
}

// SaveMatch persists m with an optimistic version check and bumps
// m.Version on success.
func (s *store) SaveMatch(ctx context.Context, m *match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := updateMatch(ctx, s.db, m); err != nil {
		return err
	}
	m.Version++
	return nil
}

// FinishMatch writes a terminated match and credits the winning team in a
// single transaction.
func (s *store) FinishMatch(ctx context.Context, m *match.Match, winnerTeamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateMatch(ctx, tx, m); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "UPDATE teams SET matches_won = matches_won + 1 WHERE id = ?", winnerTeamID)
	if err != nil {
		return fmt.Errorf("failed to credit team %s: %w", winnerTeamID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("team %s: %w", winnerTeamID, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit finished match: %w", err)
	}
	m.Version++
	log.Debug("Match finished and team credited", "matchID", m.ID, "teamID", winnerTeamID)
	return nil
}

// ResetFinishedMatch writes a reset match and takes one win back from the
// team that had been credited, never going below zero.
func (s *store) ResetFinishedMatch(ctx context.Context, m *match.Match, reversedTeamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateMatch(ctx, tx, m); err != nil {
		return err
	}
	if reversedTeamID != "" {
		_, err := tx.ExecContext(ctx, "UPDATE teams SET matches_won = MAX(matches_won - 1, 0) WHERE id = ?", reversedTeamID)
		if err != nil {
			return fmt.Errorf("failed to take back win of team %s: %w", reversedTeamID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset match: %w", err)
	}
	m.Version++
	return nil
}

// CancelWaitingMatch cancels a fixture that has not been started. It is a
// no-op for any other status.
func (s *store) CancelWaitingMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE matches SET status = ?, table_number = NULL, version = version + 1
		WHERE id = ? AND status = ?
	`, match.StatusCancelled, matchID, match.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to cancel match %s: %w", matchID, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func derefTable(table *int) any {
	if table == nil {
		return nil
	}
	return *table
}
