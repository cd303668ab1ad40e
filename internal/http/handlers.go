package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/format"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// formatFilter resolves the 'format' query parameter into a tournament-id
// restriction for the statistical endpoints.
func (s *Server) formatFilter(r *http.Request) ([]string, error) {
	return s.Formats.ResolveFilter(r.URL.Query().Get("format"))
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := r.URL.Query().Get("all") == "true"

		limit := ingest.DefaultBatchLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				log.Warn("Invalid 'limit' parameter provided. Using default.", "limit_param", limitStr)
			} else {
				limit = parsed
			}
		}
		if limit > ingest.MaxBatchLimit {
			limit = ingest.MaxBatchLimit
		}

		report, err := s.Syncer.SyncBatch(r.Context(), all, limit)
		if err != nil {
			log.Error("Batch sync failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if err := s.Notifier.SendSyncSummary(report, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send sync summary", "run", report.RunID, "error", err)
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func (s *Server) SyncSingleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.PathValue("tournamentID")
		result := s.Syncer.SyncSingleTournament(r.Context(), tournamentID)
		status := http.StatusOK
		if !result.Success {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, result)
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	type tournamentRow struct {
		meta.Tournament
		StandingCount int  `json:"standingCount"`
		SpecialEvent  bool `json:"specialEvent"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.Store.ListTournaments()
		if err != nil {
			log.Error("Failed to list tournaments", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		counts, err := s.Store.StandingCounts()
		if err != nil {
			log.Error("Failed to count standings", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		rows := make([]tournamentRow, 0, len(tournaments))
		for _, t := range tournaments {
			rows = append(rows, tournamentRow{
				Tournament:    t,
				StandingCount: counts[t.ID],
				SpecialEvent:  format.IsSpecialEvent(t.Name),
			})
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) DashboardStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.DashboardStats()
		if err != nil {
			log.Error("Failed to load dashboard stats", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) RecentWinnersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		winners, err := s.Store.RecentWinners(limit)
		if err != nil {
			log.Error("Failed to load recent winners", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, winners)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournament, err := s.Store.GetTournament(r.PathValue("tournamentID"))
		if err != nil {
			log.Error("Failed to load tournament", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if tournament == nil {
			writeError(w, http.StatusNotFound, "Tournament not found")
			return
		}
		writeJSON(w, http.StatusOK, tournament)
	}
}

func (s *Server) TournamentStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.GetTournamentStandings(r.PathValue("tournamentID"))
		if err != nil {
			log.Error("Failed to load standings", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) LeaderStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		leaders, err := s.Stats.LeaderStats(tournamentIDs)
		if err != nil {
			log.Error("Failed to compute leader stats", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, leaders)
	}
}

func (s *Server) LeaderDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		detail, err := s.Stats.LeaderDetail(r.PathValue("deckID"), tournamentIDs)
		if err != nil {
			log.Error("Failed to load leader detail", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if detail == nil {
			writeError(w, http.StatusNotFound, "Leader not found")
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func (s *Server) LeaderMatchupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchups, err := s.Stats.MatchupData(r.PathValue("deckID"))
		if err != nil {
			log.Error("Failed to load matchups", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, matchups)
	}
}

func (s *Server) LeaderTrendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		trend, err := s.Stats.LeaderTrend(r.PathValue("deckID"), tournamentIDs)
		if err != nil {
			log.Error("Failed to load leader trend", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, trend)
	}
}

func (s *Server) GroupedDecklistsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		archetypes, err := s.Decklists.GroupedDecklists(r.PathValue("deckID"), tournamentIDs)
		if err != nil {
			log.Error("Failed to group decklists", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, archetypes)
	}
}

func (s *Server) LeaderCardsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := s.Store.CardsByLeader(r.PathValue("deckID"))
		if err != nil {
			log.Error("Failed to load leader cards", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

func (s *Server) MatchupMatrixHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var deckIDs []string
		if decks := r.URL.Query().Get("decks"); decks != "" {
			deckIDs = strings.Split(decks, ",")
		} else {
			tournamentIDs, err := s.formatFilter(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			leaders, err := s.Stats.LeaderStats(tournamentIDs)
			if err != nil {
				log.Error("Failed to compute leader stats", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			for _, l := range leaders {
				deckIDs = append(deckIDs, l.DeckID)
			}
		}

		cells, err := s.Stats.MatchupMatrix(deckIDs)
		if err != nil {
			log.Error("Failed to compute matchup matrix", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, cells)
	}
}

func (s *Server) MetaShareHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		shares, err := s.Stats.MetaShare(tournamentIDs)
		if err != nil {
			log.Error("Failed to compute meta share", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, shares)
	}
}

func (s *Server) TopCardsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		cards, err := s.Store.MostPlayedCards(limit, tournamentIDs)
		if err != nil {
			log.Error("Failed to load top cards", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

func (s *Server) ListFormatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formats, err := s.Formats.AllFormats()
		if err != nil {
			log.Error("Failed to resolve formats", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, formats)
	}
}

func (s *Server) CurrentFormatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := s.Formats.CurrentFormat()
		if err != nil {
			log.Error("Failed to resolve current format", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if current == nil {
			writeError(w, http.StatusNotFound, "No format data available")
			return
		}
		writeJSON(w, http.StatusOK, current)
	}
}

func (s *Server) PlayerLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentIDs, err := s.formatFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		players, err := s.Stats.PlayerLeaderboard(tournamentIDs)
		if err != nil {
			log.Error("Failed to compute player leaderboard", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) PlayerHistoryHandler() http.HandlerFunc {
	type playerHistory struct {
		Summary any `json:"summary"`
		History any `json:"history"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		summary, history, err := s.Stats.PlayerHistory(r.PathValue("player"))
		if err != nil {
			log.Error("Failed to load player history", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if summary == nil {
			writeError(w, http.StatusNotFound, "Player not found")
			return
		}
		writeJSON(w, http.StatusOK, playerHistory{Summary: summary, History: history})
	}
}
