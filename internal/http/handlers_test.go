package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/config"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/database"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/decklist"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/format"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/limitless"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/metrics"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/notifier"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/pubsub"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/stats"
)

const testSyncSecret = "test-sync-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, meta.MetaStore, *limitless.MockClient, *notifier.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := meta.New(db)
	client := limitless.NewMockClient()
	cfg := config.Config{
		SyncSecret: testSyncSecret,
		Limitless: config.LimitlessConfig{
			Game:        "OP",
			OrganizerID: "2339",
			NameFilter:  "chinoize",
		},
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	events := pubsub.NewMock("TEST")
	notifierMock := notifier.NewMock()

	syncer := ingest.New(store, client, metricsSvc, events, cfg.Limitless, "tournament-synced")
	server := NewServer(store, syncer, stats.NewService(store), decklist.NewService(store), format.NewService(store), notifierMock, metricsSvc, metricsHandler, cfg)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, store, client, notifierMock, teardown
}

func TestSyncHandlerRejectsMissingToken(t *testing.T) {
	server, _, _, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestSyncHandlerRejectsWrongToken(t *testing.T) {
	server, _, _, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("Authorization", "Bearer wrong-secret")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncHandlerRejectsEmptyTokenWhenSecretUnset(t *testing.T) {
	server, _, _, _, teardown := setupTestServer(t)
	defer teardown()
	server.Cfg.SyncSecret = ""

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncHandlerRunsBatchAndNotifies(t *testing.T) {
	server, store, client, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	client.GetTournamentsFunc = func(params *limitless.ListParams) ([]limitless.Tournament, error) {
		return []limitless.Tournament{
			{ID: "t1", Name: "Chinoize Cup #1", Date: "2026-05-01", Players: 2},
		}, nil
	}
	client.GetStandingsFunc = func(tournamentID string) ([]limitless.Standing, error) {
		return []limitless.Standing{{Player: "alice", Record: &limitless.Record{Wins: 2}}}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/sync?limit=3", nil)
	req.Header.Set("Authorization", "Bearer "+testSyncSecret)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report ingest.BatchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TournamentsDiscovered)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Success)

	assert.Equal(t, 1, notifierMock.Sent())

	tournament, err := store.GetTournament("t1")
	require.NoError(t, err)
	require.NotNil(t, tournament)
	assert.NotEmpty(t, tournament.SyncedAt)
}

func TestSyncSingleHandler(t *testing.T) {
	server, store, client, _, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, store.UpsertTournaments([]meta.Tournament{
		{ID: "t9", Name: "Chinoize Cup #9", Date: "2026-05-01", Platform: "online", Format: "OP"},
	}))
	client.GetStandingsFunc = func(tournamentID string) ([]limitless.Standing, error) {
		return []limitless.Standing{{Player: "alice", Record: &limitless.Record{Wins: 2}}}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/sync/t9", nil)
	req.Header.Set("Authorization", "Bearer "+testSyncSecret)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result ingest.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "t9", result.TournamentID)
	assert.True(t, result.Success)
}

func TestHealthHandlerIsPublic(t *testing.T) {
	server, _, _, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestListTournamentsHandler(t *testing.T) {
	server, store, _, _, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, store.UpsertTournaments([]meta.Tournament{
		{ID: "t1", Name: "Chinoize Cup #1", Date: "2026-05-01", Platform: "online", Format: "OP"},
		{ID: "t2", Name: "Chinoize Heroine Battles #1", Date: "2026-05-08", Platform: "online", Format: "OP"},
	}))

	req := httptest.NewRequest(http.MethodGet, "/tournaments", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		ID           string `json:"id"`
		SpecialEvent bool   `json:"specialEvent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	special := make(map[string]bool)
	for _, r := range rows {
		special[r.ID] = r.SpecialEvent
	}
	assert.False(t, special["t1"])
	assert.True(t, special["t2"])
}

func TestGetTournamentHandlerNotFound(t *testing.T) {
	server, _, _, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/tournaments/missing", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeaderStatsHandler(t *testing.T) {
	server, store, _, _, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, store.UpsertTournaments([]meta.Tournament{
		{ID: "t1", Name: "Chinoize Cup #1", Date: "2026-05-01", Platform: "online", Format: "OP"},
	}))
	deckID := "OP01-001"
	placing := 1
	require.NoError(t, store.ReplaceTournamentData("t1",
		[]meta.Standing{{TournamentID: "t1", Player: "alice", Placing: &placing, Wins: 4, DeckID: &deckID}},
		[]meta.DecklistCard{{TournamentID: "t1", StandingPlayer: "alice", CardType: "character", CardName: "Zoro", CardSet: "OP10", CardNumber: "025", Count: 4, CardID: "OP10-025"}},
		nil))

	req := httptest.NewRequest(http.MethodGet, "/leaders?format=all", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var leaders []struct {
		DeckID       string `json:"deckId"`
		TotalEntries int    `json:"totalEntries"`
		Tier         string `json:"tier"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leaders))
	require.Len(t, leaders, 1)
	assert.Equal(t, deckID, leaders[0].DeckID)
	assert.Equal(t, "U", leaders[0].Tier)
}
