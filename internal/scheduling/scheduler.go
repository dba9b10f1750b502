package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/match"
)

// New creates a Scheduler backed by store.
func New(store Store) *Scheduler {
	return &Scheduler{store: store}
}

// AssignTable starts a waiting match on table and opens its first set. The
// boolean is false when the match is no longer waiting.
func (s *Scheduler) AssignTable(ctx context.Context, matchID string, table int) (*match.Match, bool, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, false, err
	}
	enc, err := s.store.GetEncounter(ctx, m.EncounterID)
	if err != nil {
		return nil, false, err
	}
	if table < 1 || table > enc.NumberOfTables {
		return nil, false, fmt.Errorf("%w: table %d, encounter has %d", ErrTableOutOfRange, table, enc.NumberOfTables)
	}
	if m.Status != match.StatusWaiting {
		return m, false, nil
	}

	matches, err := s.store.GetMatches(ctx, m.EncounterID)
	if err != nil {
		return nil, false, err
	}
	if _, busy := busyTables(matches)[table]; busy {
		return nil, false, fmt.Errorf("%w: table %d", ErrTableBusy, table)
	}

	m.Start(table)
	if err := s.store.SaveMatch(ctx, m); err != nil {
		if errors.Is(err, club.ErrTableTaken) {
			return nil, false, fmt.Errorf("%w: table %d", ErrTableBusy, table)
		}
		return nil, false, err
	}
	log.Info("Match assigned to table", "matchID", m.ID, "matchNumber", m.MatchNumber, "table", table)
	return m, true, nil
}

// NextFixtures returns the waiting matches that can go on a table now, in
// match order and limited to the number of free tables.
func (s *Scheduler) NextFixtures(ctx context.Context, encounterID string) ([]match.Match, error) {
	enc, err := s.store.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if enc.Status == encounter.StatusArchived || (enc.Status == encounter.StatusCompleted && enc.Format == fixtures.FormatAcquired) {
		return []match.Match{}, nil
	}
	matches, err := s.store.GetMatches(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	free := enc.NumberOfTables - len(busyTables(matches))
	next := make([]match.Match, 0, max(free, 0))
	for i := range matches {
		if len(next) >= free {
			break
		}
		if matches[i].Status == match.StatusWaiting {
			next = append(next, matches[i])
		}
	}
	return next, nil
}

// SetDoublesComposition replaces the placeholder players of a doubles
// fixture with the chosen pairs.
func (s *Scheduler) SetDoublesComposition(ctx context.Context, matchID string, side1, side2 []string) (*match.Match, error) {
	name1, err := pairName(side1)
	if err != nil {
		return nil, err
	}
	name2, err := pairName(side2)
	if err != nil {
		return nil, err
	}

	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsDouble {
		return nil, fmt.Errorf("%w: match %d is a singles match", ErrInvalidComposition, m.MatchNumber)
	}
	if m.Status == match.StatusFinished || m.Status == match.StatusCancelled {
		return nil, fmt.Errorf("%w: match %d is %s", ErrInvalidComposition, m.MatchNumber, m.Status)
	}

	m.Player1.Name = name1
	m.Player2.Name = name2
	if err := s.store.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	log.Info("Doubles composition set", "matchID", m.ID, "side1", name1, "side2", name2)
	return m, nil
}

func pairName(players []string) (string, error) {
	if len(players) != 2 {
		return "", fmt.Errorf("%w: a pair needs two players, got %d", ErrInvalidComposition, len(players))
	}
	a, b := strings.TrimSpace(players[0]), strings.TrimSpace(players[1])
	if a == "" || b == "" || a == b {
		return "", fmt.Errorf("%w: %q and %q", ErrInvalidComposition, players[0], players[1])
	}
	return a + pairSeparator + b, nil
}

func busyTables(matches []match.Match) map[int]struct{} {
	busy := make(map[int]struct{})
	for i := range matches {
		if matches[i].Status == match.StatusInProgress && matches[i].TableNumber != nil {
			busy[*matches[i].TableNumber] = struct{}{}
		}
	}
	return busy
}
