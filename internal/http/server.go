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

func NewServer(store meta.MetaStore, syncer *ingest.Syncer, statsSvc *stats.Service, decklistSvc *decklist.Service, formatSvc *format.Service, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Syncer:         syncer,
		Stats:          statsSvc,
		Decklists:      decklistSvc,
		Formats:        formatSvc,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// The sync endpoints additionally require the bearer secret.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /sync", Chain(s.SyncHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /sync/{tournamentID}", Chain(s.SyncSingleHandler(), paramsMiddleware, s.authMiddleware))

	s.Router.Handle("GET /stats", Chain(s.DashboardStatsHandler(), paramsMiddleware))

	s.Router.Handle("GET /tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/recent", Chain(s.RecentWinnersHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{tournamentID}", Chain(s.GetTournamentHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{tournamentID}/standings", Chain(s.TournamentStandingsHandler(), paramsMiddleware))

	s.Router.Handle("GET /leaders", Chain(s.LeaderStatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaders/{deckID}", Chain(s.LeaderDetailHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaders/{deckID}/matchups", Chain(s.LeaderMatchupsHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaders/{deckID}/trend", Chain(s.LeaderTrendHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaders/{deckID}/decklists", Chain(s.GroupedDecklistsHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaders/{deckID}/cards", Chain(s.LeaderCardsHandler(), paramsMiddleware))
	s.Router.Handle("GET /matchups", Chain(s.MatchupMatrixHandler(), paramsMiddleware))

	s.Router.Handle("GET /meta/share", Chain(s.MetaShareHandler(), paramsMiddleware))
	s.Router.Handle("GET /cards/top", Chain(s.TopCardsHandler(), paramsMiddleware))

	s.Router.Handle("GET /formats", Chain(s.ListFormatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /formats/current", Chain(s.CurrentFormatHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.PlayerLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{player}", Chain(s.PlayerHistoryHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
