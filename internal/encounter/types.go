package encounter

import (
	"time"

	"github.com/mauv0809/tt-encounter/internal/fixtures"
)

// Status is the lifecycle state of an encounter.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// WinThreshold is the number of match wins that clinches a standard
// fourteen-match encounter.
const WinThreshold = 8

// Team is one of the two clubs of an encounter. Order 0 is shown first and
// plays side 1 of every fixture.
type Team struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MatchesWon int    `json:"matches_won"`
	Order      int    `json:"order"`
}

// Encounter is a team-vs-team tie.
type Encounter struct {
	ID             string          `json:"id"`
	Team1          Team            `json:"team1"`
	Team2          Team            `json:"team2"`
	NumberOfTables int             `json:"number_of_tables"`
	Status         Status          `json:"status"`
	IsCurrent      bool            `json:"is_current"`
	Format         fixtures.Format `json:"format"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TeamForSide returns the id of the team playing the given encounter side
// (1 or 2).
func (e *Encounter) TeamForSide(side int) string {
	if side == 1 {
		return e.Team1.ID
	}
	return e.Team2.ID
}

// Tally counts finished matches won by each team, side 1 being Team1.
type Tally struct {
	Side1Wins int `json:"side1_wins" msgpack:"side1_wins"`
	Side2Wins int `json:"side2_wins" msgpack:"side2_wins"`
}

// Completion is the outcome of IsComplete.
type Completion struct {
	Completed bool `json:"completed"`
	// WinnerSide is 1 or 2 when Completed, 0 otherwise.
	WinnerSide int `json:"winner_side"`
}

// Progress is what OnMatchFinished computed and applied.
type Progress struct {
	Tally        Tally      `json:"tally"`
	Completion   Completion `json:"completion"`
	WinnerTeamID string     `json:"winner_team_id,omitempty"`
	Status       Status     `json:"status"`
	// PreviousStatus is the stored status before this run.
	PreviousStatus Status `json:"previous_status"`
	// Cancelled is the number of fixtures cancelled by this run.
	Cancelled int `json:"cancelled"`
}

// JustCompleted reports whether this run moved the encounter to completed.
func (p Progress) JustCompleted() bool {
	return p.Status == StatusCompleted && p.PreviousStatus != StatusCompleted
}
