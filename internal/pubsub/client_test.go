package pubsub

import (
	"testing"

	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/match"
	"github.com/mauv0809/tt-encounter/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDecoder_ProcessMessage(t *testing.T) {
	event := MatchEvent{
		Match: match.Match{
			ID:      "m1",
			Sets:    []scoring.Set{{Side1: 11, Side2: 4}},
			SetsWon: scoring.SetsWon{Side1: 1},
			Status:  match.StatusInProgress,
		},
		EncounterID:  "e1",
		WinnerTeamID: "t1",
		Tally:        encounter.Tally{Side1Wins: 3, Side2Wins: 1},
	}
	data, err := msgpack.Marshal(event)
	require.NoError(t, err)

	var decoded MatchEvent
	require.NoError(t, Decoder().ProcessMessage(data, &decoded))
	assert.Equal(t, event.Match.ID, decoded.Match.ID)
	assert.Equal(t, event.Match.Sets, decoded.Match.Sets)
	assert.Equal(t, event.Tally, decoded.Tally)

	assert.Error(t, Decoder().ProcessMessage([]byte{0xc1}, &decoded), "0xc1 is never valid msgpack")
	assert.NoError(t, Decoder().SendMessage(EventMatchFinished, event))
}

func TestMock_RecordsTopics(t *testing.T) {
	m := NewMock("test")
	require.NoError(t, m.SendMessage(EventMatchFinished, MatchEvent{}))
	require.NoError(t, m.SendMessage(EventEncounterCompleted, EncounterEvent{}))
	assert.Equal(t, []EventType{EventMatchFinished, EventEncounterCompleted}, m.Topics())

	m.Reset()
	assert.Empty(t, m.Topics())
}
