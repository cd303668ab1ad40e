package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors.
type Service struct {
	SyncRuns           prometheus.Counter
	TournamentsSynced  prometheus.Counter
	TournamentsFailed  prometheus.Counter
	SyncDuration       prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

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
		SyncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chinoize_sync_runs_total",
			Help: "The total number of times a sync batch has run.",
		}),
		TournamentsSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chinoize_tournaments_synced_total",
			Help: "The total number of tournaments synced successfully.",
		}),
		TournamentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chinoize_tournaments_failed_total",
			Help: "The total number of tournament syncs that failed.",
		}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chinoize_tournament_sync_duration_seconds",
			Help:    "The duration of individual tournament syncs.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chinoize_notifications_sent_total",
			Help: "The total number of sync notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chinoize_notifications_failed_total",
			Help: "The total number of sync notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chinoize_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncRuns,
		s.TournamentsSynced,
		s.TournamentsFailed,
		s.SyncDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSyncRuns() {
	s.SyncRuns.Inc()
}

func (s *Service) IncTournamentsSynced() {
	s.TournamentsSynced.Inc()
}

func (s *Service) IncTournamentsFailed() {
	s.TournamentsFailed.Inc()
}

func (s *Service) ObserveSyncDuration(duration float64) {
	s.SyncDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
