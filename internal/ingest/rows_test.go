package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/limitless"
)

func record(w, l, t int) *limitless.Record {
	return &limitless.Record{Wins: w, Losses: l, Ties: t}
}

func TestBuildStandingRowsComputesPlacings(t *testing.T) {
	drop := 3
	src := []limitless.Standing{
		{Player: "carol", Record: record(2, 2, 0)},
		{Player: "dave", Record: record(2, 1, 0)},
		{Player: "alice", Record: record(4, 0, 0)},
		{Player: "eve", Record: record(0, 2, 0), Drop: &drop},
		{Player: "bob", Record: record(2, 1, 0)},
	}

	rows := BuildStandingRows("t1", src)
	require.Len(t, rows, 5)

	// Wins descending, losses ascending, dropped last.
	assert.Equal(t, "alice", rows[0].Player)
	assert.Equal(t, 1, *rows[0].Placing)
	assert.Equal(t, "dave", rows[1].Player)
	assert.Equal(t, "bob", rows[2].Player)
	assert.Equal(t, "carol", rows[3].Player)
	assert.Equal(t, "eve", rows[4].Player)
	assert.Equal(t, 5, *rows[4].Placing)
	assert.Equal(t, &drop, rows[4].DropRound)
}

func TestBuildStandingRowsEqualRecordsKeepSourceOrder(t *testing.T) {
	src := []limitless.Standing{
		{Player: "first", Record: record(3, 1, 0)},
		{Player: "second", Record: record(3, 1, 0)},
		{Player: "third", Record: record(3, 1, 0)},
	}

	rows := BuildStandingRows("t1", src)
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[0].Player)
	assert.Equal(t, "second", rows[1].Player)
	assert.Equal(t, "third", rows[2].Player)
}

func TestBuildStandingRowsTrustsSourcePlacing(t *testing.T) {
	placing := 7
	src := []limitless.Standing{
		{Player: "alice", Placing: &placing, Record: record(4, 0, 0)},
	}

	rows := BuildStandingRows("t1", src)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, *rows[0].Placing)
}

func TestBuildStandingRowsPlayerKeyFallback(t *testing.T) {
	src := []limitless.Standing{
		{Player: "handle", Name: "Display"},
		{Name: "Only A Name"},
		{},
	}

	rows := BuildStandingRows("t1", src)
	require.Len(t, rows, 3)

	byName := make(map[string]bool)
	for _, r := range rows {
		byName[r.Player] = true
	}
	assert.True(t, byName["handle"])
	assert.True(t, byName["only a name"])
	assert.True(t, byName["unknown-2"])
}

func TestBuildDecklistRowsInjectsCardTypes(t *testing.T) {
	src := []limitless.Standing{
		{
			Player: "alice",
			Decklist: &limitless.Decklist{
				Leader:    &limitless.Card{Name: "Monkey.D.Luffy", Set: "OP01", Number: "001"},
				Character: []limitless.DeckCard{{Name: "Zoro", Set: "OP01", Number: "025", Count: 4}},
				Event:     []limitless.DeckCard{{Name: "Gum-Gum Pistol", Set: "OP01", Number: "052", Count: 2}},
				Stage:     []limitless.DeckCard{{Name: "Thousand Sunny", Set: "OP01", Number: "118", Count: 1}},
			},
		},
	}

	rows := BuildDecklistRows("t1", src)
	require.Len(t, rows, 3)

	types := make(map[string]string)
	for _, r := range rows {
		types[r.CardName] = r.CardType
		assert.Equal(t, "alice", r.StandingPlayer)
	}
	assert.Equal(t, "character", types["Zoro"])
	assert.Equal(t, "event", types["Gum-Gum Pistol"])
	assert.Equal(t, "stage", types["Thousand Sunny"])

	assert.Equal(t, "OP01-025", rows[0].CardID)
}

func TestBuildDecklistRowsSkipsMissingDecklists(t *testing.T) {
	src := []limitless.Standing{
		{Player: "alice"},
	}
	assert.Empty(t, BuildDecklistRows("t1", src))
}

func TestBuildPairingRowsSynthesizesTables(t *testing.T) {
	src := []limitless.Pairing{
		{Round: 1, Player1: "a", Player2: "b", Winner: "a"},
		{Round: 1, Player1: "c", Player2: "d", Winner: "d"},
		{Round: 1, Phase: 2, Player1: "e", Player2: "f", Winner: "e"},
		{Round: 2, Player1: "a", Player2: "d", Winner: ""},
		{Round: 1, Table: 9, Player1: "g", Player2: "h", Winner: "g"},
	}

	rows := BuildPairingRows("t1", src)
	require.Len(t, rows, 5)

	// Counters are scoped per round+phase; explicit tables pass through.
	assert.Equal(t, 1, rows[0].Table)
	assert.Equal(t, 2, rows[1].Table)
	assert.Equal(t, 1, rows[2].Table)
	assert.Equal(t, "2", rows[2].Phase)
	assert.Equal(t, 1, rows[3].Table)
	assert.Equal(t, 9, rows[4].Table)
}

func TestBuildPairingRowsDefaultsPhase(t *testing.T) {
	src := []limitless.Pairing{
		{Round: 1, Table: 1, Player1: "a", Player2: "b", Winner: "a"},
	}

	rows := BuildPairingRows("t1", src)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Phase)
}

func TestBuildPairingRowsKeepsDrawWinner(t *testing.T) {
	src := []limitless.Pairing{
		{Round: 1, Table: 1, Player1: "a", Player2: "b"},
	}

	rows := BuildPairingRows("t1", src)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Winner)
}
