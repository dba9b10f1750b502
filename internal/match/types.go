package match

import "github.com/mauv0809/tt-encounter/internal/scoring"

// Status is the lifecycle state of a match.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "inProgress"
	StatusFinished   Status = "finished"
	StatusCancelled  Status = "cancelled"
)

// Player is one side of a match. For doubles fixtures Name holds both
// partners and ID is empty.
type Player struct {
	ID     string `json:"id" msgpack:"id"`
	Name   string `json:"name" msgpack:"name"`
	TeamID string `json:"team_id" msgpack:"team_id"`
}

// Match is a single fixture of an encounter.
type Match struct {
	ID          string          `json:"id" msgpack:"id"`
	EncounterID string          `json:"encounter_id" msgpack:"encounter_id"`
	MatchNumber int             `json:"match_number" msgpack:"match_number"`
	Player1     Player          `json:"player1" msgpack:"player1"`
	Player2     Player          `json:"player2" msgpack:"player2"`
	IsDouble    bool            `json:"is_double" msgpack:"is_double"`
	Sets        []scoring.Set   `json:"sets" msgpack:"sets"`
	SetsWon     scoring.SetsWon `json:"sets_won" msgpack:"sets_won"`
	Status      Status          `json:"status" msgpack:"status"`
	TableNumber *int            `json:"table_number,omitempty" msgpack:"table_number"`
	SideFlipped bool            `json:"side_flipped" msgpack:"side_flipped"`
	// Version is bumped by the store on every write and used to reject
	// writes based on a stale read.
	Version int `json:"version" msgpack:"version"`
}

// Termination describes a successful Terminate call.
type Termination struct {
	WinnerSide   scoring.Side
	WinnerTeamID string
	SetsWon      scoring.SetsWon
}

// Reversal describes the team win undone by Reset. Reversed is false when
// the match was not finished.
type Reversal struct {
	Reversed bool
	TeamID   string
}
