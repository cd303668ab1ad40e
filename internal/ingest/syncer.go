package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/config"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/limitless"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/metrics"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/pubsub"
)

// discoveryLimit caps the tournament list fetch per run.
const discoveryLimit = 500

// syncLogMessageLimit bounds the error text stored in the sync log.
const syncLogMessageLimit = 1000

// Syncer drives the ingestion pipeline: discovery of circuit tournaments,
// per-tournament detail sync, and batch orchestration.
type Syncer struct {
	store   meta.MetaStore
	client  limitless.LimitlessClient
	metrics metrics.Metrics
	events  pubsub.PubSubClient
	cfg     config.LimitlessConfig
	topic   string
}

func New(store meta.MetaStore, client limitless.LimitlessClient, m metrics.Metrics, events pubsub.PubSubClient, cfg config.LimitlessConfig, topic string) *Syncer {
	return &Syncer{
		store:   store,
		client:  client,
		metrics: m,
		events:  events,
		cfg:     cfg,
		topic:   topic,
	}
}

// SyncTournamentList fetches the organizer's tournament list, keeps only
// events whose name contains the circuit filter, and upserts them. Existing
// rows are left untouched so re-discovery never clobbers sync state.
// It returns the number of circuit tournaments discovered.
func (s *Syncer) SyncTournamentList(ctx context.Context) (int, error) {
	tournaments, err := s.client.GetTournaments(ctx, &limitless.ListParams{
		Game:        s.cfg.Game,
		OrganizerID: s.cfg.OrganizerID,
		Limit:       discoveryLimit,
	})
	if err != nil {
		return 0, fmt.Errorf("fetching tournament list: %w", err)
	}

	filter := strings.ToLower(s.cfg.NameFilter)
	var rows []meta.Tournament
	for _, t := range tournaments {
		if !strings.Contains(strings.ToLower(t.Name), filter) {
			continue
		}
		format := t.Format
		if format == "" {
			format = "OP"
		}
		rows = append(rows, meta.Tournament{
			ID:          t.ID,
			Name:        t.Name,
			Date:        t.Date,
			PlayerCount: t.Players,
			Platform:    "online",
			Format:      format,
			RoundCount:  0,
			SyncedAt:    "",
		})
	}

	if err := s.store.UpsertTournaments(rows); err != nil {
		return 0, fmt.Errorf("upserting tournaments: %w", err)
	}
	log.Info("Tournament list synced", "discovered", len(rows), "fetched", len(tournaments))
	return len(rows), nil
}

// SyncSingleTournament fetches standings and pairings for one tournament and
// atomically replaces its stored detail data. Every attempt is recorded in
// the sync log. The returned Result carries the full error text; the sync log
// stores a truncated copy.
func (s *Syncer) SyncSingleTournament(ctx context.Context, tournamentID string) Result {
	start := time.Now()
	startedAt := start.UTC().Format(time.RFC3339)

	logID, err := s.store.StartSyncLog(tournamentID, "full", startedAt)
	if err != nil {
		log.Error("Failed to open sync log", "tournament", tournamentID, "error", err)
	}

	var standings []limitless.Standing
	var pairings []limitless.Pairing
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		standings, err = s.client.GetStandings(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("fetching standings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pairings, err = s.client.GetPairings(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("fetching pairings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return s.failSync(tournamentID, logID, err, start)
	}

	standingRows := BuildStandingRows(tournamentID, standings)
	cardRows := BuildDecklistRows(tournamentID, standings)
	pairingRows := BuildPairingRows(tournamentID, pairings)

	maxRound := 0
	for _, p := range pairingRows {
		if p.Round > maxRound {
			maxRound = p.Round
		}
	}

	syncedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.store.ReplaceTournamentData(tournamentID, standingRows, cardRows, pairingRows); err != nil {
		return s.failSync(tournamentID, logID, fmt.Errorf("replacing tournament data: %w", err), start)
	}
	if err := s.store.UpdateTournamentSync(tournamentID, maxRound, len(standingRows), syncedAt); err != nil {
		return s.failSync(tournamentID, logID, fmt.Errorf("updating sync state: %w", err), start)
	}

	message := fmt.Sprintf("Synced %d standings, %d cards, %d pairings", len(standingRows), len(cardRows), len(pairingRows))
	s.closeSyncLog(logID, meta.SyncStatusSuccess, message)

	if err := s.events.SendMessage(s.topic, pubsub.TournamentSyncedEvent{
		TournamentID: tournamentID,
		Standings:    len(standingRows),
		Cards:        len(cardRows),
		Pairings:     len(pairingRows),
		SyncedAt:     syncedAt,
	}); err != nil {
		log.Error("Failed to publish sync event", "tournament", tournamentID, "error", err)
	}

	s.metrics.IncTournamentsSynced()
	s.metrics.ObserveSyncDuration(time.Since(start).Seconds())
	log.Info("Tournament synced", "tournament", tournamentID, "standings", len(standingRows), "cards", len(cardRows), "pairings", len(pairingRows), "duration", time.Since(start))

	return Result{TournamentID: tournamentID, Success: true, Message: message}
}

// SyncBatch runs list discovery and then syncs a selection of tournaments.
// Unsynced tournaments are taken first, then previously synced ones ordered
// by staleness. A list-discovery failure is reported but does not abort the
// detail syncs; a failure on one tournament does not stop the rest.
func (s *Syncer) SyncBatch(ctx context.Context, all bool, limit int) (*BatchReport, error) {
	s.metrics.IncSyncRuns()

	report := &BatchReport{
		RunID:   uuid.NewString(),
		Results: []Result{},
		Errors:  []string{},
	}
	log.Info("Starting batch sync", "run", report.RunID, "all", all, "limit", limit)

	discovered, err := s.SyncTournamentList(ctx)
	if err != nil {
		log.Error("Tournament list sync failed", "run", report.RunID, "error", err)
		report.Errors = append(report.Errors, fmt.Sprintf("list sync: %v", err))
	}
	report.TournamentsDiscovered = discovered

	tournaments, err := s.store.ListTournaments()
	if err != nil {
		return report, fmt.Errorf("listing tournaments: %w", err)
	}
	report.TotalTournaments = len(tournaments)

	standingCounts, err := s.store.StandingCounts()
	if err != nil {
		return report, fmt.Errorf("counting standings: %w", err)
	}

	selected := selectForSync(tournaments, standingCounts)
	report.UnsyncedBefore = countUnsynced(tournaments, standingCounts)
	if !all && len(selected) > limit {
		selected = selected[:limit]
	}

	for _, t := range selected {
		res := s.SyncSingleTournament(ctx, t.ID)
		report.Results = append(report.Results, res)
		if !res.Success {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", t.ID, res.Message))
		}
	}

	log.Info("Batch sync finished", "run", report.RunID, "synced", len(report.Results), "errors", len(report.Errors))
	return report, nil
}

func (s *Syncer) failSync(tournamentID string, logID int64, err error, start time.Time) Result {
	s.closeSyncLog(logID, meta.SyncStatusError, truncate(err.Error(), syncLogMessageLimit))
	s.metrics.IncTournamentsFailed()
	s.metrics.ObserveSyncDuration(time.Since(start).Seconds())
	log.Error("Tournament sync failed", "tournament", tournamentID, "error", err)
	return Result{TournamentID: tournamentID, Success: false, Message: err.Error()}
}

func (s *Syncer) closeSyncLog(logID int64, status, message string) {
	if logID == 0 {
		return
	}
	completedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.store.CompleteSyncLog(logID, status, message, completedAt); err != nil {
		log.Error("Failed to close sync log", "id", logID, "error", err)
	}
}

// selectForSync orders tournaments for a batch run: tournaments with no
// stored standings first (in list order), then the rest oldest sync first.
// A tournament synced before any standings existed counts as unsynced, so
// upcoming events get re-fetched ahead of staleness order.
func selectForSync(tournaments []meta.Tournament, standingCounts map[string]int) []meta.Tournament {
	selected := make([]meta.Tournament, len(tournaments))
	copy(selected, tournaments)
	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		aEmpty := standingCounts[a.ID] == 0
		bEmpty := standingCounts[b.ID] == 0
		if aEmpty != bEmpty {
			return aEmpty
		}
		return a.SyncedAt < b.SyncedAt
	})
	return selected
}

func countUnsynced(tournaments []meta.Tournament, standingCounts map[string]int) int {
	n := 0
	for _, t := range tournaments {
		if standingCounts[t.ID] == 0 {
			n++
		}
	}
	return n
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
