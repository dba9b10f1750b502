package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPointsScored()
	IncSetsLaunched()
	IncMatchesFinished()
	IncMatchesReset()
	AddFixturesCancelled(n int)
	IncEncountersCompleted()
	IncVersionConflicts()
	ObserveCommandDuration(command string, duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
