package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/match"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
	"github.com/mauv0809/tt-encounter/internal/scoring"
	"github.com/sethvargo/go-retry"
)

// New creates a new Processor. reconciler may be nil, in which case a
// failed progression is only logged.
func New(store club.ClubStore, metrics metrics.Metrics, pubsub pubsub.PubSubClient, reconciler ReconcileRequester) *Processor {
	return &Processor{
		store:      store,
		tracker:    encounter.NewTracker(store),
		pubsub:     pubsub,
		metrics:    metrics,
		reconciler: reconciler,
	}
}

// matchOp applies a transition to m and persists it. It reports whether the
// match was eligible.
type matchOp func(ctx context.Context, m *match.Match) (bool, error)

func (p *Processor) backoff() retry.Backoff {
	return retry.WithMaxRetries(maxConflictRetries, retry.NewConstant(conflictRetryDelay))
}

// apply loads the match, runs op and retries from a fresh read whenever the
// write hit a stale version.
func (p *Processor) apply(ctx context.Context, command, matchID string, op matchOp) (*Result, error) {
	start := time.Now()
	defer func() {
		p.metrics.ObserveCommandDuration(command, time.Since(start).Seconds())
	}()

	var res Result
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		m, err := p.store.GetMatch(ctx, matchID)
		if err != nil {
			return err
		}
		applied, err := op(ctx, m)
		if err != nil {
			if errors.Is(err, club.ErrVersionConflict) {
				p.metrics.IncVersionConflicts()
				log.Warn("Stale match version, retrying", "command", command, "matchID", matchID, "version", m.Version)
				return retry.RetryableError(err)
			}
			return err
		}
		res = Result{Match: m, Applied: applied}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s match %s: %w", command, matchID, err)
	}
	if !res.Applied {
		log.Debug("Command not applicable", "command", command, "matchID", matchID, "status", res.Match.Status)
	}
	return &res, nil
}

func (p *Processor) save(ctx context.Context, m *match.Match) (bool, error) {
	return true, p.store.SaveMatch(ctx, m)
}

// LaunchMatch opens the first set of a match.
func (p *Processor) LaunchMatch(ctx context.Context, matchID string) (*Result, error) {
	return p.apply(ctx, "launch", matchID, func(ctx context.Context, m *match.Match) (bool, error) {
		if !m.Launch() {
			return false, nil
		}
		return p.save(ctx, m)
	})
}

// UpdateScore adds one point to side in the current set, or takes one away
// when delta is -1.
func (p *Processor) UpdateScore(ctx context.Context, matchID string, side scoring.Side, delta int) (*Result, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown side %q", ErrInvalidInput, side)
	}
	if delta != 1 && delta != -1 {
		return nil, fmt.Errorf("%w: delta must be 1 or -1, got %d", ErrInvalidInput, delta)
	}
	res, err := p.apply(ctx, "update-score", matchID, func(ctx context.Context, m *match.Match) (bool, error) {
		if !m.UpdateScore(side, delta) {
			return false, nil
		}
		return p.save(ctx, m)
	})
	if err == nil && res.Applied && delta > 0 {
		p.metrics.IncPointsScored()
	}
	return res, err
}

// LaunchSet opens the next set once the current one is over.
func (p *Processor) LaunchSet(ctx context.Context, matchID string) (*Result, error) {
	res, err := p.apply(ctx, "launch-set", matchID, func(ctx context.Context, m *match.Match) (bool, error) {
		if !m.LaunchSet() {
			return false, nil
		}
		return p.save(ctx, m)
	})
	if err == nil && res.Applied {
		p.metrics.IncSetsLaunched()
	}
	return res, err
}

// TerminateMatch finishes a decided match, credits the winning team and
// runs the encounter progression.
func (p *Processor) TerminateMatch(ctx context.Context, matchID string) (*Result, error) {
	var winnerTeamID string
	res, err := p.apply(ctx, "terminate", matchID, func(ctx context.Context, m *match.Match) (bool, error) {
		term, ok := m.Terminate()
		if !ok {
			return false, nil
		}
		winnerTeamID = term.WinnerTeamID
		return true, p.store.FinishMatch(ctx, m, term.WinnerTeamID)
	})
	if err != nil || !res.Applied {
		return res, err
	}
	p.metrics.IncMatchesFinished()
	log.Info("Match finished", "matchID", matchID, "winnerTeamID", winnerTeamID, "setsWon", res.Match.SetsWon)

	progress, err := p.progress(ctx, "terminate", res.Match.EncounterID)
	res.Progress = progress
	p.publishMatchEvent(ctx, pubsub.EventMatchFinished, res.Match, winnerTeamID, progress.Tally)
	return res, err
}

// ResetMatch puts a match back to waiting. A finished match gives its win
// back and the encounter progression is rerun.
func (p *Processor) ResetMatch(ctx context.Context, matchID string) (*Result, error) {
	var reversal match.Reversal
	res, err := p.apply(ctx, "reset", matchID, func(ctx context.Context, m *match.Match) (bool, error) {
		rev, ok := m.Reset()
		if !ok {
			return false, nil
		}
		reversal = rev
		if !rev.Reversed {
			return p.save(ctx, m)
		}
		return true, p.store.ResetFinishedMatch(ctx, m, rev.TeamID)
	})
	if err != nil || !res.Applied || !reversal.Reversed {
		return res, err
	}
	p.metrics.IncMatchesReset()
	log.Info("Finished match reset", "matchID", matchID, "reversedTeamID", reversal.TeamID)

	progress, err := p.progress(ctx, "reset", res.Match.EncounterID)
	res.Progress = progress
	p.publishMatchEvent(ctx, pubsub.EventMatchReset, res.Match, "", progress.Tally)
	return res, err
}

// CancelMatch cancels a waiting or in progress match. A cancellation can
// complete a play-out encounter, so the progression is rerun.
func (p *Processor) CancelMatch(ctx context.Context, matchID string) (*Result, error) {
	res, err := p.apply(ctx, "cancel", matchID, func(ctx context.Context, m *match.Match) (bool, error) {
		if !m.Cancel() {
			return false, nil
		}
		return p.save(ctx, m)
	})
	if err != nil || !res.Applied {
		return res, err
	}
	progress, err := p.progress(ctx, "cancel", res.Match.EncounterID)
	res.Progress = progress
	return res, err
}

// progress runs the tracker after a committed transition. A failure leaves
// the transition in place and requests a reconciliation.
func (p *Processor) progress(ctx context.Context, command, encounterID string) (*encounter.Progress, error) {
	progress, err := p.tracker.Check(ctx, encounterID)
	if progress.Cancelled > 0 {
		p.metrics.AddFixturesCancelled(progress.Cancelled)
	}
	if progress.JustCompleted() {
		p.metrics.IncEncountersCompleted()
		p.publishEncounterCompleted(ctx, encounterID, progress)
	}
	if err != nil {
		log.Error("Encounter progression failed", "error", err, "encounterID", encounterID, "command", command)
		if p.reconciler != nil {
			if rerr := p.reconciler.RequestReconcile(ctx, encounterID, command); rerr != nil {
				log.Error("Failed to request reconciliation", "error", rerr, "encounterID", encounterID)
			}
		}
		return &progress, fmt.Errorf("%w: %w", ErrProgressionPending, err)
	}
	return &progress, nil
}

func (p *Processor) publishMatchEvent(ctx context.Context, topic pubsub.EventType, m *match.Match, winnerTeamID string, tally encounter.Tally) {
	event := pubsub.MatchEvent{
		Match:        *m,
		EncounterID:  m.EncounterID,
		WinnerTeamID: winnerTeamID,
		Tally:        tally,
	}
	if enc, err := p.store.GetEncounter(ctx, m.EncounterID); err == nil {
		event.Team1Name, event.Team2Name = enc.Team1.Name, enc.Team2.Name
	}
	if err := p.pubsub.SendMessage(topic, event); err != nil {
		log.Error("Failed to publish match event", "error", err, "topic", topic, "matchID", m.ID)
	}
}

func (p *Processor) publishEncounterCompleted(ctx context.Context, encounterID string, progress encounter.Progress) {
	event := pubsub.EncounterEvent{
		EncounterID:  encounterID,
		WinnerTeamID: progress.WinnerTeamID,
		Tally:        progress.Tally,
		Cancelled:    progress.Cancelled,
	}
	if enc, err := p.store.GetEncounter(ctx, encounterID); err == nil {
		event.Team1Name, event.Team2Name = enc.Team1.Name, enc.Team2.Name
		switch progress.WinnerTeamID {
		case enc.Team1.ID:
			event.WinnerName = enc.Team1.Name
		case enc.Team2.ID:
			event.WinnerName = enc.Team2.Name
		}
	}
	log.Info("Encounter completed", "encounterID", encounterID, "winnerTeamID", progress.WinnerTeamID, "side1Wins", progress.Tally.Side1Wins, "side2Wins", progress.Tally.Side2Wins)
	if err := p.pubsub.SendMessage(pubsub.EventEncounterCompleted, event); err != nil {
		log.Error("Failed to publish encounter event", "error", err, "encounterID", encounterID)
	}
}
