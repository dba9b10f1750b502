package notifier

import (
	"sync"

	"github.com/mauv0809/tt-encounter/internal/encounter"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchResultFunc        func(event pubsub.MatchEvent, dryRun bool) error
	SendEncounterCompletedFunc func(event pubsub.EncounterEvent, dryRun bool) error
	FormatTallyResponseFunc    func(enc *encounter.Encounter, tally encounter.Tally) (any, error)

	// Call records
	SendMatchResultCalls        []pubsub.MatchEvent
	SendEncounterCompletedCalls []pubsub.EncounterEvent
	FormatTallyResponseCalls    []encounter.Tally
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendEncounterCompletedCalls = nil
	m.FormatTallyResponseCalls = nil
}

func (m *Mock) SendMatchResult(event pubsub.MatchEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, event)
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendEncounterCompleted(event pubsub.EncounterEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendEncounterCompletedCalls = append(m.SendEncounterCompletedCalls, event)
	if m.SendEncounterCompletedFunc != nil {
		return m.SendEncounterCompletedFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) FormatTallyResponse(enc *encounter.Encounter, tally encounter.Tally) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatTallyResponseCalls = append(m.FormatTallyResponseCalls, tally)
	if m.FormatTallyResponseFunc != nil {
		return m.FormatTallyResponseFunc(enc, tally)
	}
	return "formatted_tally", nil
}

func (m *Mock) FormatNoEncounterResponse() (any, error) {
	return "formatted_no_encounter", nil
}
