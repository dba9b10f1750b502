package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/match"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventMatchFinished      EventType = "match-finished"
	EventMatchReset         EventType = "match-reset"
	EventEncounterCompleted EventType = "encounter-completed"
)

// MatchEvent is published whenever a match is finished or reset.
type MatchEvent struct {
	Match        match.Match     `msgpack:"match"`
	EncounterID  string          `msgpack:"encounter_id"`
	Team1Name    string          `msgpack:"team1_name"`
	Team2Name    string          `msgpack:"team2_name"`
	WinnerTeamID string          `msgpack:"winner_team_id"`
	Tally        encounter.Tally `msgpack:"tally"`
}

// EncounterEvent is published once an encounter is decided.
type EncounterEvent struct {
	EncounterID  string          `msgpack:"encounter_id"`
	Team1Name    string          `msgpack:"team1_name"`
	Team2Name    string          `msgpack:"team2_name"`
	WinnerTeamID string          `msgpack:"winner_team_id"`
	WinnerName   string          `msgpack:"winner_name"`
	Tally        encounter.Tally `msgpack:"tally"`
	Cancelled    int             `msgpack:"cancelled"`
}
