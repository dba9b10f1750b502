package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/match"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// CreateTeam inserts a team with no wins.
func (s *store) CreateTeam(ctx context.Context, name string, order int) (*encounter.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := &encounter.Team{ID: uuid.NewString(), Name: name, Order: order}
	_, err := s.db.ExecContext(ctx, "INSERT INTO teams (id, name, matches_won, display_order) VALUES (?, ?, 0, ?)", team.ID, team.Name, team.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	log.Info("Created team", "id", team.ID, "name", name)
	return team, nil
}

func (s *store) GetTeam(ctx context.Context, teamID string) (*encounter.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var team encounter.Team
	err := s.db.QueryRowContext(ctx, "SELECT id, name, matches_won, display_order FROM teams WHERE id = ?", teamID).
		Scan(&team.ID, &team.Name, &team.MatchesWon, &team.Order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// AddPlayer adds a player to a team roster at the given position.
func (s *store) AddPlayer(ctx context.Context, teamID, name string, position int) (*match.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := &match.Player{ID: uuid.NewString(), Name: name, TeamID: teamID}
	_, err := s.db.ExecContext(ctx, "INSERT INTO players (id, name, team_id, roster_position) VALUES (?, ?, ?, ?)", player.ID, player.Name, teamID, position)
	if err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	return player, nil
}

// GetRoster returns the players of a team in roster order.
func (s *store) GetRoster(ctx context.Context, teamID string) ([]match.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, team_id FROM players WHERE team_id = ? ORDER BY roster_position, name", teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	var players []match.Player
	for rows.Next() {
		var p match.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.TeamID); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// CreateEncounter stores an encounter and its fixtures in one transaction.
// Missing ids are generated and written back to enc and matches.
func (s *store) CreateEncounter(ctx context.Context, enc *encounter.Encounter, matches []match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enc.ID == "" {
		enc.ID = uuid.NewString()
	}
	if enc.Status == "" {
		enc.Status = encounter.StatusActive
	}
	if enc.CreatedAt.IsZero() {
		enc.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO encounters (id, team1_id, team2_id, number_of_tables, status, is_current, format, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)
	`, enc.ID, enc.Team1.ID, enc.Team2.ID, enc.NumberOfTables, enc.Status, enc.Format, enc.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create encounter: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (id, encounter_id, match_number, player1_id, player1_name, player1_team_id,
			player2_id, player2_name, player2_team_id, is_double, sets_blob, sets_won_1, sets_won_2,
			status, table_number, side_flipped, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	for i := range matches {
		m := &matches[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		m.EncounterID = enc.ID
		setsBlob, err := marshalSets(m.Sets)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			m.ID, m.EncounterID, m.MatchNumber,
			m.Player1.ID, m.Player1.Name, m.Player1.TeamID,
			m.Player2.ID, m.Player2.Name, m.Player2.TeamID,
			m.IsDouble, setsBlob, m.SetsWon.Side1, m.SetsWon.Side2,
			m.Status, m.TableNumber, m.SideFlipped,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match %d: %w", m.MatchNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit encounter: %w", err)
	}
	log.Info("Created encounter", "id", enc.ID, "format", enc.Format, "matches", len(matches))
	return nil
}

const encounterColumns = `
	e.id, e.number_of_tables, e.status, e.is_current, e.format, e.created_at,
	t1.id, t1.name, t1.matches_won, t1.display_order,
	t2.id, t2.name, t2.matches_won, t2.display_order
	FROM encounters e
	JOIN teams t1 ON t1.id = e.team1_id
	JOIN teams t2 ON t2.id = e.team2_id`

func scanEncounter(row scanner) (*encounter.Encounter, error) {
	var enc encounter.Encounter
	var status, format string
	var createdAt int64
	err := row.Scan(
		&enc.ID, &enc.NumberOfTables, &status, &enc.IsCurrent, &format, &createdAt,
		&enc.Team1.ID, &enc.Team1.Name, &enc.Team1.MatchesWon, &enc.Team1.Order,
		&enc.Team2.ID, &enc.Team2.Name, &enc.Team2.MatchesWon, &enc.Team2.Order,
	)
	if err != nil {
		return nil, err
	}
	enc.Status = encounter.Status(status)
	enc.Format = fixtures.Format(format)
	enc.CreatedAt = time.Unix(createdAt, 0)
	return &enc, nil
}

func (s *store) GetEncounter(ctx context.Context, encounterID string) (*encounter.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enc, err := scanEncounter(s.db.QueryRowContext(ctx, "SELECT "+encounterColumns+" WHERE e.id = ?", encounterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("encounter %s: %w", encounterID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get encounter: %w", err)
	}
	return enc, nil
}

// GetCurrentEncounter returns the encounter flagged as current.
func (s *store) GetCurrentEncounter(ctx context.Context) (*encounter.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enc, err := scanEncounter(s.db.QueryRowContext(ctx, "SELECT "+encounterColumns+" WHERE e.is_current = 1 LIMIT 1"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("current encounter: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get current encounter: %w", err)
	}
	return enc, nil
}

func (s *store) ListEncounters(ctx context.Context) ([]encounter.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+encounterColumns+" ORDER BY e.created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list encounters: %w", err)
	}
	defer rows.Close()

	var encounters []encounter.Encounter
	for rows.Next() {
		enc, err := scanEncounter(rows)
		if err != nil {
			log.Error("Failed to scan encounter row", "error", err)
			continue
		}
		encounters = append(encounters, *enc)
	}
	return encounters, rows.Err()
}

// SetCurrentEncounter flags a single encounter as the current one.
func (s *store) SetCurrentEncounter(ctx context.Context, encounterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE encounters SET is_current = 1 WHERE id = ?", encounterID)
	if err != nil {
		return fmt.Errorf("failed to set current encounter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("encounter %s: %w", encounterID, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE encounters SET is_current = 0 WHERE id != ?", encounterID); err != nil {
		return fmt.Errorf("failed to clear current encounters: %w", err)
	}
	return tx.Commit()
}

func (s *store) UpdateEncounterStatus(ctx context.Context, encounterID string, status encounter.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE encounters SET status = ? WHERE id = ?", status, encounterID)
	if err != nil {
		return fmt.Errorf("failed to update encounter status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("encounter %s: %w", encounterID, ErrNotFound)
	}
	return nil
}

// SetTeamMatchesWon overwrites a team's win counter. Only reconciliation
// should call it; match transitions use relative updates.
func (s *store) SetTeamMatchesWon(ctx context.Context, teamID string, matchesWon int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE teams SET matches_won = ? WHERE id = ?", max(matchesWon, 0), teamID)
	if err != nil {
		return fmt.Errorf("failed to set team wins: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	return nil
}
