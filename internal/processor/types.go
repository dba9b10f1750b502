package processor

import (
	"errors"
	"time"

	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/match"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
)

var (
	// ErrProgressionPending is returned when a match transition was stored
	// but the encounter could not be brought in line with it. A
	// reconciliation has been requested.
	ErrProgressionPending = errors.New("encounter progression pending")
	ErrInvalidInput       = errors.New("invalid input")
)

const (
	maxConflictRetries = 3
	conflictRetryDelay = 5 * time.Millisecond
)

// Processor applies match and encounter commands to the stored state.
type Processor struct {
	store      club.ClubStore
	tracker    *encounter.Tracker
	pubsub     pubsub.PubSubClient
	metrics    metrics.Metrics
	reconciler ReconcileRequester
}

// Result is the outcome of a match command. Applied is false when the
// match was not eligible for the command; that is not an error.
type Result struct {
	Match    *match.Match        `json:"match"`
	Applied  bool                `json:"applied"`
	Progress *encounter.Progress `json:"progress,omitempty"`
}

// EncounterRequest describes a new encounter and its two teams.
type EncounterRequest struct {
	Team1Name      string          `json:"team1_name"`
	Team2Name      string          `json:"team2_name"`
	Team1Roster    []string        `json:"team1_roster"`
	Team2Roster    []string        `json:"team2_roster"`
	NumberOfTables int             `json:"number_of_tables"`
	Format         fixtures.Format `json:"format"`
	// MatchCount is only used by the custom format.
	MatchCount  int  `json:"match_count,omitempty"`
	MakeCurrent bool `json:"make_current"`
}

// PreparedEncounter is the stored encounter with its fixtures.
type PreparedEncounter struct {
	Encounter *encounter.Encounter `json:"encounter"`
	Matches   []match.Match        `json:"matches"`
}
