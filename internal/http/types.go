package http

import (
	"net/http"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/config"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/decklist"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/format"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/metrics"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/notifier"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/stats"
)

// Server wires the HTTP API to the circuit's stores and services.
type Server struct {
	Store          meta.MetaStore
	Syncer         *ingest.Syncer
	Stats          *stats.Service
	Decklists      *decklist.Service
	Formats        *format.Service
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
