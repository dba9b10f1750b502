package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/match"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
	"github.com/mauv0809/tt-encounter/internal/scoring"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func finishedEvent() pubsub.MatchEvent {
	return pubsub.MatchEvent{
		Match: match.Match{
			ID:          "m1",
			MatchNumber: 3,
			Player1:     match.Player{Name: "Alice"},
			Player2:     match.Player{Name: "Bob"},
			Sets:        []scoring.Set{{Side1: 11, Side2: 4}, {Side1: 9, Side2: 11}, {Side1: 11, Side2: 7}, {Side1: 12, Side2: 10}},
			SetsWon:     scoring.SetsWon{Side1: 3, Side2: 1},
			Status:      match.StatusFinished,
		},
		EncounterID: "e1",
		Team1Name:   "Home",
		Team2Name:   "Away",
		Tally:       encounter.Tally{Side1Wins: 2, Side2Wins: 1},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendMatchResult_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, notifier.SendMatchResult(finishedEvent(), false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendMatchResult")
}

func TestFormatMatchResult(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatMatchResult(finishedEvent())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "Block 0 should be a HeaderBlock")
	assert.Equal(t, "🏓 Match 3 finished! 🏓", header.Text.Text)

	result, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Block 1 should be a SectionBlock")
	assert.Equal(t, "*Alice* 3 - 1 Bob", result.Text.Text)

	sets, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Block 2 should be a SectionBlock")
	assert.Equal(t, "Sets: 11-4, 9-11, 11-7, 12-10", sets.Text.Text)

	tally, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Block 3 should be a ContextBlock")
	require.Len(t, tally.ContextElements.Elements, 1)
	text, ok := tally.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Home 2 - 1 Away", text.Text)
}

func TestFormatEncounterCompleted(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("with cancelled fixtures", func(t *testing.T) {
		msg := client.formatEncounterCompleted(pubsub.EncounterEvent{
			Team1Name:  "Home",
			Team2Name:  "Away",
			WinnerName: "Home",
			Tally:      encounter.Tally{Side1Wins: 8, Side2Wins: 2},
			Cancelled:  4,
		})
		require.Len(t, msg.Blocks.BlockSet, 3)
		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "*Home* wins the encounter\nHome 8 - 2 Away", details.Text.Text)
	})

	t.Run("without cancelled fixtures", func(t *testing.T) {
		msg := client.formatEncounterCompleted(pubsub.EncounterEvent{WinnerName: "Away"})
		assert.Len(t, msg.Blocks.BlockSet, 2)
	})

	t.Run("without a winner", func(t *testing.T) {
		msg := client.formatEncounterCompleted(pubsub.EncounterEvent{
			Team1Name: "Home",
			Team2Name: "Away",
			Tally:     encounter.Tally{Side1Wins: 7, Side2Wins: 1},
		})
		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No team reached the winning threshold\nHome 7 - 1 Away", details.Text.Text)
	})
}

func TestFormatTallyResponse(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	enc := &encounter.Encounter{
		Team1:  encounter.Team{Name: "Home"},
		Team2:  encounter.Team{Name: "Away"},
		Status: encounter.StatusActive,
	}

	resp, err := client.FormatTallyResponse(enc, encounter.Tally{Side1Wins: 5, Side2Wins: 3})
	require.NoError(t, err)
	msg, ok := resp.(slackapi.Message)
	require.True(t, ok, "Response should be a slack.Message")
	require.Len(t, msg.Blocks.BlockSet, 3)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "Home vs Away", header.Text.Text)
	score := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "*5 - 3*", score.Text.Text)
	status := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	assert.Equal(t, "In play, first to 8", status.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
}
