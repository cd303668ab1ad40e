package decklist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/database"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/decklist"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func setupService(t *testing.T) (*decklist.Service, meta.MetaStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := meta.New(db)
	return decklist.NewService(store), store, teardown
}

func standingFor(tournamentID, player string, placing, wins, losses int) meta.Standing {
	return meta.Standing{
		TournamentID: tournamentID,
		Player:       player,
		DisplayName:  player,
		Placing:      intPtr(placing),
		Wins:         wins,
		Losses:       losses,
		DeckID:       strPtr("OP01-001"),
		DeckName:     strPtr("Red Luffy"),
		LeaderName:   strPtr("Monkey.D.Luffy"),
		LeaderSet:    strPtr("OP01"),
		LeaderNumber: strPtr("001"),
	}
}

func cardsFor(tournamentID, player, number string) []meta.DecklistCard {
	return []meta.DecklistCard{
		{TournamentID: tournamentID, StandingPlayer: player, CardType: "character", CardName: "Card A", CardSet: "OP01", CardNumber: number, Count: 4, CardID: "OP01-" + number},
		{TournamentID: tournamentID, StandingPlayer: player, CardType: "event", CardName: "Card B", CardSet: "OP01", CardNumber: "090", Count: 2, CardID: "OP01-090"},
	}
}

func TestGroupedDecklistsMergesIdenticalLists(t *testing.T) {
	svc, store, teardown := setupService(t)
	defer teardown()

	require.NoError(t, store.UpsertTournaments([]meta.Tournament{
		{ID: "t1", Name: "Chinoize Cup #1", Date: "2026-05-01", Platform: "online", Format: "OP"},
	}))

	standings := []meta.Standing{
		standingFor("t1", "alice", 1, 4, 0),
		standingFor("t1", "bob", 3, 3, 1),
		standingFor("t1", "carol", 8, 1, 3),
	}
	// alice and bob run the same list, carol a one-card variation.
	cards := append(cardsFor("t1", "alice", "025"), cardsFor("t1", "bob", "025")...)
	cards = append(cards, cardsFor("t1", "carol", "026")...)
	require.NoError(t, store.ReplaceTournamentData("t1", standings, cards, nil))

	archetypes, err := svc.GroupedDecklists("OP01-001", nil)
	require.NoError(t, err)
	require.Len(t, archetypes, 2)

	// Merged group has the most games and sorts first.
	merged := archetypes[0]
	assert.Equal(t, 2, merged.PilotCount)
	assert.Equal(t, 7, merged.Wins)
	assert.Equal(t, 1, merged.Losses)
	assert.Equal(t, 1, *merged.BestPlacing)
	require.Len(t, merged.Pilots, 2)

	// Representative cards come from the best-placed pilot.
	require.NotEmpty(t, merged.Cards)
	for _, c := range merged.Cards {
		assert.Equal(t, "alice", c.StandingPlayer)
	}

	solo := archetypes[1]
	assert.Equal(t, 1, solo.PilotCount)
	assert.InDelta(t, 25.0, solo.WinRate, 1e-9)
}

func TestGroupedDecklistsRepresentativeTieBreaks(t *testing.T) {
	svc, store, teardown := setupService(t)
	defer teardown()

	require.NoError(t, store.UpsertTournaments([]meta.Tournament{
		{ID: "t1", Name: "Chinoize Cup #1", Date: "2026-05-01", Platform: "online", Format: "OP"},
		{ID: "t2", Name: "Chinoize Cup #2", Date: "2026-05-08", Platform: "online", Format: "OP"},
	}))

	// Same list in both tournaments, same placing, different wins.
	require.NoError(t, store.ReplaceTournamentData("t1",
		[]meta.Standing{standingFor("t1", "alice", 2, 3, 1)},
		cardsFor("t1", "alice", "025"), nil))
	require.NoError(t, store.ReplaceTournamentData("t2",
		[]meta.Standing{standingFor("t2", "bob", 2, 5, 1)},
		cardsFor("t2", "bob", "025"), nil))

	archetypes, err := svc.GroupedDecklists("OP01-001", nil)
	require.NoError(t, err)
	require.Len(t, archetypes, 1)

	// bob wins the representative slot on win count.
	for _, c := range archetypes[0].Cards {
		assert.Equal(t, "bob", c.StandingPlayer)
	}

	// Pilot history is ordered by tournament date descending.
	require.Len(t, archetypes[0].Pilots, 2)
	assert.Equal(t, "t2", archetypes[0].Pilots[0].TournamentID)
}

func TestGroupedDecklistsRespectsTournamentFilter(t *testing.T) {
	svc, store, teardown := setupService(t)
	defer teardown()

	require.NoError(t, store.UpsertTournaments([]meta.Tournament{
		{ID: "t1", Name: "Chinoize Cup #1", Date: "2026-05-01", Platform: "online", Format: "OP"},
		{ID: "t2", Name: "Chinoize Cup #2", Date: "2026-05-08", Platform: "online", Format: "OP"},
	}))
	require.NoError(t, store.ReplaceTournamentData("t1",
		[]meta.Standing{standingFor("t1", "alice", 1, 4, 0)},
		cardsFor("t1", "alice", "025"), nil))
	require.NoError(t, store.ReplaceTournamentData("t2",
		[]meta.Standing{standingFor("t2", "bob", 1, 4, 0)},
		cardsFor("t2", "bob", "025"), nil))

	archetypes, err := svc.GroupedDecklists("OP01-001", []string{"t1"})
	require.NoError(t, err)
	require.Len(t, archetypes, 1)
	assert.Equal(t, 1, archetypes[0].PilotCount)
	assert.Equal(t, "alice", archetypes[0].Pilots[0].Player)
}
