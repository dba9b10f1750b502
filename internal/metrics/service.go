package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PointsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_points_scored_total",
			Help: "The total number of score updates applied to a set.",
		}),
		SetsLaunched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_sets_launched_total",
			Help: "The total number of sets opened after the first one.",
		}),
		MatchesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_matches_finished_total",
			Help: "The total number of matches terminated.",
		}),
		MatchesReset: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_matches_reset_total",
			Help: "The total number of matches reset to waiting.",
		}),
		FixturesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_fixtures_cancelled_total",
			Help: "The total number of fixtures cancelled because the encounter was decided.",
		}),
		EncountersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_encounters_completed_total",
			Help: "The total number of encounters that reached completion.",
		}),
		VersionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_match_version_conflicts_total",
			Help: "The total number of match writes rejected because of a stale version.",
		}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tt_command_duration_seconds",
			Help:    "The duration of match and encounter commands.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"command"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tt_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tt_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PointsScored,
		s.SetsLaunched,
		s.MatchesFinished,
		s.MatchesReset,
		s.FixturesCancelled,
		s.EncountersCompleted,
		s.VersionConflicts,
		s.CommandDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPointsScored() {
	s.PointsScored.Inc()
}

func (s *Service) IncSetsLaunched() {
	s.SetsLaunched.Inc()
}

func (s *Service) IncMatchesFinished() {
	s.MatchesFinished.Inc()
}

func (s *Service) IncMatchesReset() {
	s.MatchesReset.Inc()
}

func (s *Service) AddFixturesCancelled(n int) {
	s.FixturesCancelled.Add(float64(n))
}

func (s *Service) IncEncountersCompleted() {
	s.EncountersCompleted.Inc()
}

func (s *Service) IncVersionConflicts() {
	s.VersionConflicts.Inc()
}

func (s *Service) ObserveCommandDuration(command string, duration float64) {
	s.CommandDuration.WithLabelValues(command).Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
