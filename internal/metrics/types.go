package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PointsScored        prometheus.Counter
	SetsLaunched        prometheus.Counter
	MatchesFinished     prometheus.Counter
	MatchesReset        prometheus.Counter
	FixturesCancelled   prometheus.Counter
	EncountersCompleted prometheus.Counter
	VersionConflicts    prometheus.Counter
	CommandDuration     *prometheus.HistogramVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
