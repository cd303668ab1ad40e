package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func entry(deckID string, placing *int, wins, losses, ties int, dropRound *int) meta.Standing {
	return meta.Standing{
		TournamentID: "t1",
		Player:       fmt.Sprintf("p-%s-%d-%d", deckID, wins, losses),
		Placing:      placing,
		Wins:         wins,
		Losses:       losses,
		Ties:         ties,
		DropRound:    dropRound,
		DeckID:       strPtr(deckID),
	}
}

func TestComputeLeaderStatsBasicAggregates(t *testing.T) {
	standings := []meta.Standing{
		entry("OP01-001", intPtr(1), 4, 0, 0, nil),
		entry("OP01-001", intPtr(5), 2, 2, 0, nil),
		entry("OP02-013", intPtr(2), 3, 1, 0, nil),
		{TournamentID: "t1", Player: "no-deck", Wins: 1, Losses: 1},
	}

	leaders := ComputeLeaderStats(standings)
	require.Len(t, leaders, 2)

	byDeck := make(map[string]LeaderStats)
	for _, l := range leaders {
		byDeck[l.DeckID] = l
	}

	luffy := byDeck["OP01-001"]
	assert.Equal(t, 2, luffy.TotalEntries)
	assert.Equal(t, 6, luffy.TotalWins)
	assert.Equal(t, 2, luffy.TotalLosses)
	assert.InDelta(t, 0.75, luffy.WinRate, 1e-9)
	assert.InDelta(t, 3.0, luffy.AvgPlacing, 1e-9)
	assert.Equal(t, 1, luffy.Top4Count)
	assert.InDelta(t, 0.5, luffy.Top4Rate, 1e-9)
	assert.Equal(t, 1, luffy.TournamentWins)
	// Two of three entries with a deck id belong to this leader.
	assert.InDelta(t, 2.0/3.0, luffy.PlayRate, 1e-9)
}

func TestComputeLeaderStatsExcludesDroppedFromPlacementMetrics(t *testing.T) {
	drop := 3
	standings := []meta.Standing{
		entry("OP01-001", intPtr(6), 3, 2, 0, nil),
		// Dropped with a top-4 placing: counts for games, never for placements.
		entry("OP01-001", intPtr(2), 4, 1, 0, &drop),
	}

	leaders := ComputeLeaderStats(standings)
	require.Len(t, leaders, 1)

	l := leaders[0]
	assert.Equal(t, 2, l.TotalEntries)
	assert.Equal(t, 7, l.TotalWins)
	assert.Equal(t, 0, l.Top4Count)
	assert.Equal(t, 0, l.TournamentWins)
	assert.InDelta(t, 6.0, l.AvgPlacing, 1e-9)
	assert.InDelta(t, 0.0, l.WeightedTop4Score, 1e-9)
}

func TestComputeLeaderStatsWeightedTop4Score(t *testing.T) {
	standings := []meta.Standing{
		entry("OP01-001", intPtr(1), 4, 0, 0, nil),
		entry("OP01-001", intPtr(3), 3, 1, 0, nil),
		entry("OP01-001", intPtr(9), 1, 3, 0, nil),
	}

	leaders := ComputeLeaderStats(standings)
	require.Len(t, leaders, 1)

	// (4 for 1st + 2 for 3rd) / (4 * 3 entries)
	assert.InDelta(t, 6.0/12.0, leaders[0].WeightedTop4Score, 1e-9)
}

func TestComputeLeaderStatsCompositeWeights(t *testing.T) {
	standings := []meta.Standing{
		entry("OP01-001", intPtr(1), 4, 0, 0, nil),
	}

	leaders := ComputeLeaderStats(standings)
	require.Len(t, leaders, 1)

	l := leaders[0]
	// Sole leader: winRate 1, top4Rate 1, normalized wins 1, playRate 1.
	expected := 0.40*1 + 0.30*1 + 0.20*1 + 0.10*1
	assert.InDelta(t, expected, l.CompositeScore, 1e-9)
}

func TestComputeLeaderStatsUnrankedBelowFiveEntries(t *testing.T) {
	var standings []meta.Standing
	for i := 0; i < 5; i++ {
		standings = append(standings, meta.Standing{
			TournamentID: "t1",
			Player:       fmt.Sprintf("big-%d", i),
			Placing:      intPtr(i + 1),
			Wins:         3,
			Losses:       1,
			DeckID:       strPtr("OP01-001"),
		})
	}
	standings = append(standings, entry("OP02-013", intPtr(1), 5, 0, 0, nil))

	leaders := ComputeLeaderStats(standings)
	require.Len(t, leaders, 2)

	// Qualified leaders come first regardless of score.
	assert.Equal(t, "OP01-001", leaders[0].DeckID)
	assert.NotEqual(t, "U", leaders[0].Tier)
	assert.Equal(t, "OP02-013", leaders[1].DeckID)
	assert.Equal(t, "U", leaders[1].Tier)
	assert.Greater(t, leaders[1].CompositeScore, leaders[0].CompositeScore)
}

// tierPopulation builds n qualified leaders with strictly decreasing scores.
func tierPopulation(n int) []meta.Standing {
	var standings []meta.Standing
	for leader := 0; leader < n; leader++ {
		deckID := fmt.Sprintf("OP01-%03d", leader+1)
		wins := 2*n - leader
		for i := 0; i < 5; i++ {
			placing := 10 + i
			standings = append(standings, meta.Standing{
				TournamentID: "t1",
				Player:       fmt.Sprintf("p-%d-%d", leader, i),
				Placing:      &placing,
				Wins:         wins,
				Losses:       leader + 1,
				DeckID:       &deckID,
			})
		}
	}
	return standings
}

func TestTierAssignmentByRankPercentile(t *testing.T) {
	leaders := ComputeLeaderStats(tierPopulation(20))
	require.Len(t, leaders, 20)

	for i := 1; i < len(leaders); i++ {
		assert.GreaterOrEqual(t, leaders[i-1].CompositeScore, leaders[i].CompositeScore)
	}

	assert.Equal(t, "S", leaders[0].Tier)
	assert.Equal(t, "B", leaders[9].Tier)
	assert.Equal(t, "C", leaders[19].Tier)
}

func TestTierAssignmentIgnoresAbsoluteScores(t *testing.T) {
	first := ComputeLeaderStats(tierPopulation(20))

	// Same rank order, different score magnitudes.
	inflated := tierPopulation(20)
	for i := range inflated {
		inflated[i].Wins *= 3
	}
	second := ComputeLeaderStats(inflated)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Tier, second[i].Tier, "rank %d", i+1)
	}
}

func TestComputeLeaderStatsZeroGames(t *testing.T) {
	standings := []meta.Standing{
		entry("OP01-001", intPtr(1), 0, 0, 0, nil),
	}

	leaders := ComputeLeaderStats(standings)
	require.Len(t, leaders, 1)
	assert.True(t, math.IsNaN(leaders[0].WinRate) == false)
	assert.InDelta(t, 0.0, leaders[0].WinRate, 1e-9)
}
