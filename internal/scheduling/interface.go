package scheduling

import (
	"context"

	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/match"
)

// Store defines the persistence operations required by the scheduler.
type Store interface {
	GetEncounter(ctx context.Context, encounterID string) (*encounter.Encounter, error)
	GetMatch(ctx context.Context, matchID string) (*match.Match, error)
	GetMatches(ctx context.Context, encounterID string) ([]match.Match, error)
	SaveMatch(ctx context.Context, m *match.Match) error
}
