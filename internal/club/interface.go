package club

import (
	"context"

	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/match"
)

// ClubStore defines the interface for interacting with teams, players,
// encounters and their matches.
type ClubStore interface {
	CreateTeam(ctx context.Context, name string, order int) (*encounter.Team, error)
	GetTeam(ctx context.Context, teamID string) (*encounter.Team, error)
	AddPlayer(ctx context.Context, teamID, name string, position int) (*match.Player, error)
	GetRoster(ctx context.Context, teamID string) ([]match.Player, error)

	CreateEncounter(ctx context.Context, enc *encounter.Encounter, matches []match.Match) error
	GetEncounter(ctx context.Context, encounterID string) (*encounter.Encounter, error)
	GetCurrentEncounter(ctx context.Context) (*encounter.Encounter, error)
	ListEncounters(ctx context.Context) ([]encounter.Encounter, error)
	SetCurrentEncounter(ctx context.Context, encounterID string) error
	UpdateEncounterStatus(ctx context.Context, encounterID string, status encounter.Status) error

	GetMatch(ctx context.Context, matchID string) (*match.Match, error)
	GetMatches(ctx context.Context, encounterID string) ([]match.Match, error)
	SaveMatch(ctx context.Context, m *match.Match) error
	FinishMatch(ctx context.Context, m *match.Match, winnerTeamID string) error
	ResetFinishedMatch(ctx context.Context, m *match.Match, reversedTeamID string) error
	CancelWaitingMatch(ctx context.Context, matchID string) error
	SetTeamMatchesWon(ctx context.Context, teamID string, matchesWon int) error
}

var _ encounter.Store = (ClubStore)(nil)
