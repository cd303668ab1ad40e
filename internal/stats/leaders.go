package stats

import (
	"fmt"
	"sort"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

// minQualifiedEntries is the entry count below which a leader stays unranked.
const minQualifiedEntries = 5

// Composite score weights.
const (
	weightWinRate        = 0.40
	weightTop4Rate       = 0.30
	weightTournamentWins = 0.20
	weightPlayRate       = 0.10
)

func NewService(store meta.MetaStore) *Service {
	return &Service{store: store}
}

// LeaderStats aggregates all standings (optionally restricted to the given
// tournaments) into per-leader metric lines, ranked by composite score.
func (s *Service) LeaderStats(tournamentIDs []string) ([]LeaderStats, error) {
	standings, err := s.store.GetStandings(tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading standings: %w", err)
	}
	return ComputeLeaderStats(standings), nil
}

// ComputeLeaderStats groups standings with a deck id by leader and computes
// the full metric line for each. Dropped entries count toward entry and game
// totals but never toward placement-derived metrics. Leaders with fewer than
// five entries are returned unranked (tier "U") after the tiered population;
// both groups are sorted by composite score descending.
func ComputeLeaderStats(standings []meta.Standing) []LeaderStats {
	type accumulator struct {
		stats        LeaderStats
		placingSum   int
		placingCount int
		weightedTop4 int
	}

	byDeck := make(map[string]*accumulator)
	var order []string
	for _, st := range standings {
		if st.DeckID == nil || *st.DeckID == "" {
			continue
		}
		acc, ok := byDeck[*st.DeckID]
		if !ok {
			acc = &accumulator{stats: LeaderStats{DeckID: *st.DeckID}}
			byDeck[*st.DeckID] = acc
			order = append(order, *st.DeckID)
		}
		if st.DeckName != nil {
			acc.stats.DeckName = *st.DeckName
		}
		if st.LeaderName != nil {
			acc.stats.LeaderName = *st.LeaderName
		}
		if st.LeaderSet != nil {
			acc.stats.LeaderSet = *st.LeaderSet
		}
		if st.LeaderNumber != nil {
			acc.stats.LeaderNumber = *st.LeaderNumber
		}

		acc.stats.TotalEntries++
		acc.stats.TotalWins += st.Wins
		acc.stats.TotalLosses += st.Losses
		acc.stats.TotalTies += st.Ties

		// Placement metrics only count completed runs.
		if st.DropRound != nil || st.Placing == nil {
			continue
		}
		p := *st.Placing
		acc.placingSum += p
		acc.placingCount++
		if p <= 4 {
			acc.stats.Top4Count++
			acc.weightedTop4 += 5 - p
		}
		if p == 1 {
			acc.stats.TournamentWins++
		}
	}

	totalEntries := 0
	maxTournamentWins := 0
	for _, id := range order {
		acc := byDeck[id]
		totalEntries += acc.stats.TotalEntries
		if acc.stats.TournamentWins > maxTournamentWins {
			maxTournamentWins = acc.stats.TournamentWins
		}
	}
	if maxTournamentWins < 1 {
		maxTournamentWins = 1
	}

	results := make([]LeaderStats, 0, len(order))
	for _, id := range order {
		acc := byDeck[id]
		st := acc.stats

		games := st.TotalWins + st.TotalLosses + st.TotalTies
		if games > 0 {
			st.WinRate = float64(st.TotalWins) / float64(games)
		}
		if acc.placingCount > 0 {
			st.AvgPlacing = float64(acc.placingSum) / float64(acc.placingCount)
		}
		if st.TotalEntries > 0 {
			st.Top4Rate = float64(st.Top4Count) / float64(st.TotalEntries)
			st.WeightedTop4Score = float64(acc.weightedTop4) / float64(4*st.TotalEntries)
		}
		if totalEntries > 0 {
			st.PlayRate = float64(st.TotalEntries) / float64(totalEntries)
		}
		if st.Top4Count > 0 {
			st.ConversionRate = float64(st.TournamentWins) / float64(st.Top4Count)
		}
		st.CompositeScore = weightWinRate*st.WinRate +
			weightTop4Rate*st.Top4Rate +
			weightTournamentWins*(float64(st.TournamentWins)/float64(maxTournamentWins)) +
			weightPlayRate*st.PlayRate

		results = append(results, st)
	}

	return assignTiers(results)
}

// assignTiers splits leaders into a qualified population (>=5 entries) and an
// unranked tail, sorts both by composite score descending, and assigns tiers
// to the qualified population by rank percentile.
func assignTiers(leaders []LeaderStats) []LeaderStats {
	var qualified, unranked []LeaderStats
	for _, l := range leaders {
		if l.TotalEntries >= minQualifiedEntries {
			qualified = append(qualified, l)
		} else {
			l.Tier = "U"
			unranked = append(unranked, l)
		}
	}

	byScore := func(list []LeaderStats) func(i, j int) bool {
		return func(i, j int) bool {
			if list[i].CompositeScore != list[j].CompositeScore {
				return list[i].CompositeScore > list[j].CompositeScore
			}
			return list[i].DeckID < list[j].DeckID
		}
	}
	sort.SliceStable(qualified, byScore(qualified))
	sort.SliceStable(unranked, byScore(unranked))

	total := len(qualified)
	for i := range qualified {
		percentile := 1 - float64(i)/float64(total)
		switch {
		case percentile >= 0.9:
			qualified[i].Tier = "S"
		case percentile >= 0.65:
			qualified[i].Tier = "A"
		case percentile >= 0.35:
			qualified[i].Tier = "B"
		default:
			qualified[i].Tier = "C"
		}
	}

	return append(qualified, unranked...)
}

// LeaderDetail bundles the stat line, matchups, and trend for one leader.
func (s *Service) LeaderDetail(deckID string, tournamentIDs []string) (*LeaderDetail, error) {
	all, err := s.LeaderStats(tournamentIDs)
	if err != nil {
		return nil, err
	}
	var line *LeaderStats
	for i := range all {
		if all[i].DeckID == deckID {
			line = &all[i]
			break
		}
	}
	if line == nil {
		return nil, nil
	}

	matchups, err := s.MatchupData(deckID)
	if err != nil {
		return nil, err
	}
	trend, err := s.LeaderTrend(deckID, tournamentIDs)
	if err != nil {
		return nil, err
	}
	return &LeaderDetail{Stats: line, Matchups: matchups, Trend: trend}, nil
}
