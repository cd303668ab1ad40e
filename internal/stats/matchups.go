package stats

import (
	"fmt"
	"sort"
)

// MatchupData aggregates one leader's record against every opponent archetype,
// sorted by games played descending.
func (s *Service) MatchupData(deckID string) ([]Matchup, error) {
	rows, err := s.store.MatchupCounts(deckID)
	if err != nil {
		return nil, fmt.Errorf("loading matchups for %s: %w", deckID, err)
	}

	matchups := make([]Matchup, 0, len(rows))
	for _, r := range rows {
		m := Matchup{
			OpponentDeckID: r.OpponentDeckID,
			Wins:           r.Wins,
			Losses:         r.Losses,
			Ties:           r.Ties,
			Total:          r.Wins + r.Losses + r.Ties,
		}
		if m.Total > 0 {
			m.WinRate = float64(m.Wins) / float64(m.Total)
		}
		matchups = append(matchups, m)
	}

	sort.SliceStable(matchups, func(i, j int) bool {
		if matchups[i].Total != matchups[j].Total {
			return matchups[i].Total > matchups[j].Total
		}
		return matchups[i].OpponentDeckID < matchups[j].OpponentDeckID
	})
	return matchups, nil
}

// MatchupMatrix computes the directed matchup record for every ordered pair
// of the given leaders in one pass over the pairings.
func (s *Service) MatchupMatrix(deckIDs []string) ([]MatrixCell, error) {
	rows, err := s.store.MatchupMatrixCounts(deckIDs)
	if err != nil {
		return nil, fmt.Errorf("loading matchup matrix: %w", err)
	}

	cells := make([]MatrixCell, 0, len(rows))
	for _, r := range rows {
		c := MatrixCell{
			DeckID:         r.DeckID,
			OpponentDeckID: r.OpponentDeckID,
			Wins:           r.Wins,
			Losses:         r.Losses,
			Ties:           r.Ties,
		}
		if total := c.Wins + c.Losses + c.Ties; total > 0 {
			c.WinRate = float64(c.Wins) / float64(total)
		}
		cells = append(cells, c)
	}
	return cells, nil
}
