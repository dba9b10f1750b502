package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/notifier"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
	"github.com/mauv0809/tt-encounter/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchResult(event pubsub.MatchEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchResult(event), dryRun)
	return err
}

func (s *Notifier) SendEncounterCompleted(event pubsub.EncounterEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatEncounterCompleted(event), dryRun)
	return err
}

// FormatTallyResponse formats the running score of an encounter for a slash command response.
func (s *Notifier) FormatTallyResponse(enc *encounter.Encounter, tally encounter.Tally) (any, error) {
	return s.formatTally(enc, tally), nil
}

// FormatNoEncounterResponse is the slash command answer when no encounter is current.
func (s *Notifier) FormatNoEncounterResponse() (any, error) {
	text := slack.NewTextBlockObject("mrkdwn", "No encounter is currently being played.", false, false)
	return slack.NewBlockMessage(slack.NewSectionBlock(text, nil, nil)), nil
}

// formatMatchResult creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatMatchResult(event pubsub.MatchEvent) slack.Message {
	m := event.Match
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏓 Match %d finished! 🏓", m.MatchNumber), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	p1, p2 := m.Player1.Name, m.Player2.Name
	if winner, ok := m.SetsWon.Winner(); ok {
		if winner == scoring.Side1 {
			p1 = "*" + p1 + "*"
		} else {
			p2 = "*" + p2 + "*"
		}
	}
	resultText := fmt.Sprintf("%s %d - %d %s", p1, m.SetsWon.Side1, m.SetsWon.Side2, p2)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", resultText, false, false), nil, nil))

	if len(m.Sets) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Sets: "+formatSets(m.Sets), true, false), nil, nil))
	}

	tallyText := fmt.Sprintf("%s %d - %d %s", event.Team1Name, event.Tally.Side1Wins, event.Tally.Side2Wins, event.Team2Name)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", tallyText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatEncounterCompleted creates the Slack message for a finished
// encounter. An encounter can end without a team reaching the threshold.
func (s *Notifier) formatEncounterCompleted(event pubsub.EncounterEvent) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Encounter decided! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	outcome := "No team reached the winning threshold"
	if event.WinnerName != "" {
		outcome = fmt.Sprintf("*%s* wins the encounter", event.WinnerName)
	}
	detailsText := fmt.Sprintf("%s\n%s %d - %d %s",
		outcome, event.Team1Name, event.Tally.Side1Wins, event.Tally.Side2Wins, event.Team2Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", detailsText, false, false), nil, nil))

	if event.Cancelled > 0 {
		contextText := fmt.Sprintf("%d remaining fixtures were cancelled.", event.Cancelled)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatTally(enc *encounter.Encounter, tally encounter.Tally) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s vs %s", enc.Team1.Name, enc.Team2.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreText := fmt.Sprintf("*%d - %d*", tally.Side1Wins, tally.Side2Wins)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", scoreText, false, false), nil, nil))

	var status string
	switch enc.Status {
	case encounter.StatusCompleted:
		status = "Encounter completed"
	case encounter.StatusArchived:
		status = "Encounter archived"
	default:
		status = fmt.Sprintf("In play, first to %d", encounter.WinThreshold)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", status, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func formatSets(sets []scoring.Set) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		if set.IsZero() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d-%d", set.Side1, set.Side2))
	}
	return strings.Join(parts, ", ")
}
