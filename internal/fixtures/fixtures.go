package fixtures

import (
	"errors"
	"fmt"

	"github.com/mauv0809/tt-encounter/internal/match"
)

// Format selects how an encounter is played out.
type Format string

const (
	// FormatAcquired stops the encounter as soon as a team has clinched it.
	FormatAcquired Format = "acquired"
	// FormatNonAcquired plays every fixture regardless of the score.
	FormatNonAcquired Format = "nonAcquired"
	// FormatCustom pairs the rosters in rotation for a chosen number of matches.
	FormatCustom Format = "custom"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatAcquired, FormatNonAcquired, FormatCustom:
		return true
	}
	return false
}

const (
	// RosterSize is the number of players per team in the standard format.
	RosterSize = 4
	// StandardMatchCount is the number of fixtures of the standard format.
	StandardMatchCount = 14
	// DoublesPlaceholder is recorded as player name until the doubles pairs
	// are chosen.
	DoublesPlaceholder = "Composition to be defined"
)

var (
	ErrInvalidRoster = errors.New("invalid roster")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidCount  = errors.New("invalid match count")
)

// pairing is one entry of the standard order. A negative index marks a
// doubles fixture.
type pairing struct {
	home, away int
}

const doubles = -1

// standardOrder is the federation order for 4-player team encounters.
var standardOrder = [StandardMatchCount]pairing{
	{0, 0}, {1, 1}, {2, 2}, {3, 3},
	{0, 1}, {1, 0}, {3, 2}, {2, 3},
	{doubles, doubles}, {doubles, doubles},
	{0, 2}, {2, 0}, {3, 1}, {1, 3},
}

// Generate returns the fourteen fixtures of a standard encounter. Both
// rosters must hold exactly four players, listed in roster order. Acquired
// and non-acquired encounters share the same order.
func Generate(encounterID string, team1, team2 []match.Player, format Format) ([]match.Match, error) {
	if format != FormatAcquired && format != FormatNonAcquired {
		return nil, fmt.Errorf("%w: %q is not a fixed format", ErrInvalidFormat, format)
	}
	if len(team1) != RosterSize || len(team2) != RosterSize {
		return nil, fmt.Errorf("%w: need %d players per team, got %d and %d", ErrInvalidRoster, RosterSize, len(team1), len(team2))
	}
	team1ID, team2ID := team1[0].TeamID, team2[0].TeamID

	matches := make([]match.Match, 0, StandardMatchCount)
	for i, p := range standardOrder {
		if p.home == doubles {
			m := match.New(encounterID, i+1,
				match.Player{Name: DoublesPlaceholder, TeamID: team1ID},
				match.Player{Name: DoublesPlaceholder, TeamID: team2ID},
			)
			m.IsDouble = true
			matches = append(matches, m)
			continue
		}
		matches = append(matches, match.New(encounterID, i+1, team1[p.home], team2[p.away]))
	}
	return matches, nil
}

// GenerateCustom pairs team1[i mod len(team1)] with team2[i mod len(team2)]
// for count matches.
func GenerateCustom(encounterID string, team1, team2 []match.Player, count int) ([]match.Match, error) {
	if len(team1) == 0 || len(team2) == 0 {
		return nil, fmt.Errorf("%w: both rosters need at least one player", ErrInvalidRoster)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	matches := make([]match.Match, 0, count)
	for i := 0; i < count; i++ {
		matches = append(matches, match.New(encounterID, i+1, team1[i%len(team1)], team2[i%len(team2)]))
	}
	return matches, nil
}
