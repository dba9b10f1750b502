package encounter

import (
	"context"

	"github.com/mauv0809/tt-encounter/internal/match"
)

// Store defines the persistence operations required by the Tracker.
type Store interface {
	GetEncounter(ctx context.Context, encounterID string) (*Encounter, error)
	GetMatches(ctx context.Context, encounterID string) ([]match.Match, error)
	// CancelWaitingMatch cancels the match only if it is still waiting.
	CancelWaitingMatch(ctx context.Context, matchID string) error
	UpdateEncounterStatus(ctx context.Context, encounterID string, status Status) error
}
