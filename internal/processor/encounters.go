package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/match"
)

func (r *EncounterRequest) validate() error {
	if strings.TrimSpace(r.Team1Name) == "" || strings.TrimSpace(r.Team2Name) == "" {
		return fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	if r.NumberOfTables < 1 {
		return fmt.Errorf("%w: at least one table is required", ErrInvalidInput)
	}
	if r.Format == "" {
		r.Format = fixtures.FormatAcquired
	}
	if !r.Format.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, fixtures.ErrInvalidFormat, r.Format)
	}
	if r.Format == fixtures.FormatCustom {
		if len(r.Team1Roster) == 0 || len(r.Team2Roster) == 0 {
			return fmt.Errorf("%w: %w: both rosters need at least one player", ErrInvalidInput, fixtures.ErrInvalidRoster)
		}
		if r.MatchCount < 1 {
			return fmt.Errorf("%w: %w: %d", ErrInvalidInput, fixtures.ErrInvalidCount, r.MatchCount)
		}
		return nil
	}
	if len(r.Team1Roster) != fixtures.RosterSize || len(r.Team2Roster) != fixtures.RosterSize {
		return fmt.Errorf("%w: %w: need %d players per team", ErrInvalidInput, fixtures.ErrInvalidRoster, fixtures.RosterSize)
	}
	return nil
}

// PrepareEncounter creates both teams with their rosters, generates the
// fixtures for the requested format and stores the encounter.
func (p *Processor) PrepareEncounter(ctx context.Context, req EncounterRequest) (*PreparedEncounter, error) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveCommandDuration("prepare-encounter", time.Since(start).Seconds())
	}()

	if err := req.validate(); err != nil {
		return nil, err
	}

	team1, roster1, err := p.createTeam(ctx, req.Team1Name, 0, req.Team1Roster)
	if err != nil {
		return nil, err
	}
	team2, roster2, err := p.createTeam(ctx, req.Team2Name, 1, req.Team2Roster)
	if err != nil {
		return nil, err
	}

	var matches []match.Match
	if req.Format == fixtures.FormatCustom {
		matches, err = fixtures.GenerateCustom("", roster1, roster2, req.MatchCount)
	} else {
		matches, err = fixtures.Generate("", roster1, roster2, req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	enc := &encounter.Encounter{
		Team1:          *team1,
		Team2:          *team2,
		NumberOfTables: req.NumberOfTables,
		Status:         encounter.StatusActive,
		Format:         req.Format,
	}
	if err := p.store.CreateEncounter(ctx, enc, matches); err != nil {
		return nil, err
	}
	if req.MakeCurrent {
		if err := p.store.SetCurrentEncounter(ctx, enc.ID); err != nil {
			return nil, err
		}
		enc.IsCurrent = true
	}
	log.Info("Encounter prepared", "encounterID", enc.ID, "team1", team1.Name, "team2", team2.Name, "format", enc.Format, "matches", len(matches))
	return &PreparedEncounter{Encounter: enc, Matches: matches}, nil
}

func (p *Processor) createTeam(ctx context.Context, name string, order int, roster []string) (*encounter.Team, []match.Player, error) {
	team, err := p.store.CreateTeam(ctx, strings.TrimSpace(name), order)
	if err != nil {
		return nil, nil, err
	}
	players := make([]match.Player, 0, len(roster))
	for i, playerName := range roster {
		player, err := p.store.AddPlayer(ctx, team.ID, strings.TrimSpace(playerName), i)
		if err != nil {
			return nil, nil, err
		}
		players = append(players, *player)
	}
	return team, players, nil
}

// Tally recomputes the wins of both teams from the finished matches.
func (p *Processor) Tally(ctx context.Context, encounterID string) (encounter.Tally, error) {
	return p.tracker.Tally(ctx, encounterID)
}

// CheckEncounter reruns the encounter progression. It is safe to call at
// any time and finishes whatever a failed run left behind.
func (p *Processor) CheckEncounter(ctx context.Context, encounterID string) (*encounter.Progress, error) {
	progress, err := p.tracker.Check(ctx, encounterID)
	if progress.Cancelled > 0 {
		p.metrics.AddFixturesCancelled(progress.Cancelled)
	}
	if progress.JustCompleted() {
		p.metrics.IncEncountersCompleted()
		p.publishEncounterCompleted(ctx, encounterID, progress)
	}
	return &progress, err
}

// ReconcileTeamWins overwrites the stored team counters with the tally of
// finished matches.
func (p *Processor) ReconcileTeamWins(ctx context.Context, encounterID string) (encounter.Tally, error) {
	enc, err := p.store.GetEncounter(ctx, encounterID)
	if err != nil {
		return encounter.Tally{}, err
	}
	tally, err := p.tracker.Tally(ctx, encounterID)
	if err != nil {
		return encounter.Tally{}, err
	}
	if enc.Team1.MatchesWon != tally.Side1Wins {
		if err := p.store.SetTeamMatchesWon(ctx, enc.Team1.ID, tally.Side1Wins); err != nil {
			return tally, err
		}
		log.Warn("Team wins drifted from tally", "teamID", enc.Team1.ID, "stored", enc.Team1.MatchesWon, "tally", tally.Side1Wins)
	}
	if enc.Team2.MatchesWon != tally.Side2Wins {
		if err := p.store.SetTeamMatchesWon(ctx, enc.Team2.ID, tally.Side2Wins); err != nil {
			return tally, err
		}
		log.Warn("Team wins drifted from tally", "teamID", enc.Team2.ID, "stored", enc.Team2.MatchesWon, "tally", tally.Side2Wins)
	}
	return tally, nil
}

// ArchiveEncounter freezes an encounter. The tracker leaves archived
// encounters untouched.
func (p *Processor) ArchiveEncounter(ctx context.Context, encounterID string) error {
	if err := p.store.UpdateEncounterStatus(ctx, encounterID, encounter.StatusArchived); err != nil {
		return err
	}
	log.Info("Encounter archived", "encounterID", encounterID)
	return nil
}

// SetCurrentEncounter marks the encounter shown by default.
func (p *Processor) SetCurrentEncounter(ctx context.Context, encounterID string) error {
	return p.store.SetCurrentEncounter(ctx, encounterID)
}
