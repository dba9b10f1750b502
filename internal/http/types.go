package http

import (
	"net/http"

	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/config"
	"github.com/mauv0809/tt-encounter/internal/inngest"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/notifier"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
	"github.com/mauv0809/tt-encounter/internal/scheduling"
)

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Scheduler      *scheduling.Scheduler
	PubSub         pubsub.PubSubClient
	// InngestClient is nil when durable jobs are disabled.
	InngestClient inngest.InngestClient
	Router        *http.ServeMux
}
