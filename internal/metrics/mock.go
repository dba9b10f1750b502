package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	pointsScored        int
	setsLaunched        int
	matchesFinished     int
	matchesReset        int
	fixturesCancelled   int
	encountersCompleted int
	versionConflicts    int
	commandDurations    map[string][]float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commandDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncPointsScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pointsScored++
}

func (m *Mock) IncSetsLaunched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setsLaunched++
}

func (m *Mock) IncMatchesFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesFinished++
}

func (m *Mock) IncMatchesReset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesReset++
}

func (m *Mock) AddFixturesCancelled(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixturesCancelled += n
}

func (m *Mock) IncEncountersCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encountersCompleted++
}

func (m *Mock) IncVersionConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versionConflicts++
}

func (m *Mock) ObserveCommandDuration(command string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandDurations[command] = append(m.commandDurations[command], duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PointsScored returns the number of times IncPointsScored was called.
func (m *Mock) PointsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointsScored
}

// MatchesFinished returns the number of times IncMatchesFinished was called.
func (m *Mock) MatchesFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesFinished
}

// MatchesReset returns the number of times IncMatchesReset was called.
func (m *Mock) MatchesReset() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesReset
}

// FixturesCancelled returns the sum passed to AddFixturesCancelled.
func (m *Mock) FixturesCancelled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixturesCancelled
}

// EncountersCompleted returns the number of times IncEncountersCompleted was called.
func (m *Mock) EncountersCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.encountersCompleted
}

// VersionConflicts returns the number of times IncVersionConflicts was called.
func (m *Mock) VersionConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versionConflicts
}

// CommandCalls returns how many durations were observed for command.
func (m *Mock) CommandCalls(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.commandDurations[command])
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
