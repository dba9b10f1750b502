package http

import (
	"net/http"

	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/config"
	"github.com/mauv0809/tt-encounter/internal/http/handlers"
	"github.com/mauv0809/tt-encounter/internal/inngest"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/notifier"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
	"github.com/mauv0809/tt-encounter/internal/scheduling"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, scheduler *scheduling.Scheduler, pubsub pubsub.PubSubClient, inngestClient inngest.InngestClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Scheduler:      scheduler,
		PubSub:         pubsub,
		InngestClient:  inngestClient,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /encounters", Chain(handlers.CreateEncounterHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("GET /encounters", Chain(handlers.GetEncountersHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /encounters/matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /encounters/tally", Chain(handlers.TallyHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("GET /encounters/next", Chain(handlers.NextFixturesHandler(s.Store, s.Scheduler), paramsMiddleware))
	s.Router.Handle("POST /encounters/check", Chain(handlers.CheckEncounterHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("POST /encounters/reconcile", Chain(handlers.ReconcileHandler(s.Store, s.Processor), paramsMiddleware))
	s.Router.Handle("POST /encounters/archive", Chain(handlers.ArchiveEncounterHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /encounters/current", Chain(handlers.SetCurrentEncounterHandler(s.Processor), paramsMiddleware))

	s.Router.Handle("POST /matches/launch", Chain(handlers.LaunchMatchHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/score", Chain(handlers.UpdateScoreHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/launch-set", Chain(handlers.LaunchSetHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/terminate", Chain(handlers.TerminateMatchHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/reset", Chain(handlers.ResetMatchHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/cancel", Chain(handlers.CancelMatchHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/table", Chain(handlers.AssignTableHandler(s.Scheduler), paramsMiddleware))
	s.Router.Handle("POST /matches/doubles", Chain(handlers.DoublesCompositionHandler(s.Scheduler), paramsMiddleware))

	s.Router.Handle("POST /pubsub/match-finished", Chain(handlers.MatchFinishedHandler(s.Notifier, s.PubSub), paramsMiddleware))
	s.Router.Handle("POST /pubsub/encounter-completed", Chain(handlers.EncounterCompletedHandler(s.Notifier, s.PubSub), paramsMiddleware))

	s.Router.Handle("POST /slack/command/tally", Chain(handlers.TallyCommandHandler(s.Store, s.Processor, s.Notifier), paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)))

	if s.InngestClient != nil {
		s.Router.Handle("/api/inngest", s.InngestClient.Serve())
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
