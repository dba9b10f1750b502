package encounter

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/match"
)

// Tracker derives the encounter state from its finished matches.
type Tracker struct {
	store Store
}

// NewTracker creates a Tracker backed by store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Tally recomputes the team wins of an encounter from its finished matches.
func (t *Tracker) Tally(ctx context.Context, encounterID string) (Tally, error) {
	enc, err := t.store.GetEncounter(ctx, encounterID)
	if err != nil {
		return Tally{}, fmt.Errorf("failed to load encounter %s: %w", encounterID, err)
	}
	matches, err := t.store.GetMatches(ctx, encounterID)
	if err != nil {
		return Tally{}, fmt.Errorf("failed to load matches of encounter %s: %w", encounterID, err)
	}
	return CountWins(enc, matches), nil
}

// CountWins maps the winner of every finished match to its team.
func CountWins(enc *Encounter, matches []match.Match) Tally {
	var tally Tally
	for i := range matches {
		teamID, ok := matches[i].WinnerTeamID()
		if !ok {
			continue
		}
		switch teamID {
		case enc.Team1.ID:
			tally.Side1Wins++
		case enc.Team2.ID:
			tally.Side2Wins++
		default:
			log.Warn("Finished match credited to a team outside the encounter", "matchID", matches[i].ID, "teamID", teamID)
		}
	}
	return tally
}

// IsComplete reports whether a team has reached the win threshold.
func IsComplete(tally Tally) Completion {
	switch {
	case tally.Side1Wins >= WinThreshold:
		return Completion{Completed: true, WinnerSide: 1}
	case tally.Side2Wins >= WinThreshold:
		return Completion{Completed: true, WinnerSide: 2}
	}
	return Completion{}
}

// OnMatchFinished brings the encounter in line with its finished matches.
// Once an acquired encounter is clinched every waiting fixture is cancelled;
// matches already on a table are left alone. It derives everything from the
// stored state, so running it again after a partial failure finishes the
// job.
func (t *Tracker) OnMatchFinished(ctx context.Context, m *match.Match) (Progress, error) {
	return t.Check(ctx, m.EncounterID)
}

// Check is OnMatchFinished keyed by encounter.
func (t *Tracker) Check(ctx context.Context, encounterID string) (Progress, error) {
	enc, err := t.store.GetEncounter(ctx, encounterID)
	if err != nil {
		return Progress{}, fmt.Errorf("failed to load encounter %s: %w", encounterID, err)
	}
	matches, err := t.store.GetMatches(ctx, encounterID)
	if err != nil {
		return Progress{}, fmt.Errorf("failed to load matches of encounter %s: %w", encounterID, err)
	}

	progress := Progress{Tally: CountWins(enc, matches), Status: enc.Status, PreviousStatus: enc.Status}
	progress.Completion = IsComplete(progress.Tally)
	if progress.Completion.Completed {
		progress.WinnerTeamID = enc.TeamForSide(progress.Completion.WinnerSide)
	}

	if enc.Status == StatusArchived {
		log.Debug("Encounter is archived. Leaving it untouched.", "encounterID", enc.ID)
		return progress, nil
	}

	var errs []error
	next := StatusActive
	if enc.Format == fixtures.FormatAcquired {
		if progress.Completion.Completed {
			next = StatusCompleted
			for i := range matches {
				if matches[i].Status != match.StatusWaiting {
					continue
				}
				if err := t.store.CancelWaitingMatch(ctx, matches[i].ID); err != nil {
					log.Error("Failed to cancel fixture", "error", err, "matchID", matches[i].ID, "encounterID", enc.ID)
					errs = append(errs, fmt.Errorf("cancel match %s: %w", matches[i].ID, err))
					continue
				}
				progress.Cancelled++
			}
		}
	}
	// An acquired encounter whose remaining fixtures were cancelled before a
	// reset can no longer reach the threshold, so it ends with the last match.
	if next == StatusActive && allPlayed(matches) {
		next = StatusCompleted
	}

	if next != enc.Status {
		if err := t.store.UpdateEncounterStatus(ctx, enc.ID, next); err != nil {
			errs = append(errs, fmt.Errorf("failed to update encounter %s status: %w", enc.ID, err))
			return progress, errors.Join(errs...)
		}
		log.Info("Encounter status changed", "encounterID", enc.ID, "from", enc.Status, "to", next, "side1Wins", progress.Tally.Side1Wins, "side2Wins", progress.Tally.Side2Wins)
	}
	progress.Status = next
	return progress, errors.Join(errs...)
}

func allPlayed(matches []match.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for i := range matches {
		if matches[i].Status == match.StatusWaiting || matches[i].Status == match.StatusInProgress {
			return false
		}
	}
	return true
}
