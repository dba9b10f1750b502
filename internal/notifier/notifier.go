package notifier

import (
	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished matches
	SendMatchResult(event pubsub.MatchEvent, dryRun bool) error
	// For decided encounters
	SendEncounterCompleted(event pubsub.EncounterEvent, dryRun bool) error

	// For formatting responses for slash commands
	FormatTallyResponse(enc *encounter.Encounter, tally encounter.Tally) (any, error)
	FormatNoEncounterResponse() (any, error)
}
