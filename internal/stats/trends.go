package stats

import (
	"fmt"
	"sort"
)

// MetaShare returns each leader's share of total entries in the filtered set,
// largest first.
func (s *Service) MetaShare(tournamentIDs []string) ([]MetaShareEntry, error) {
	standings, err := s.store.GetStandings(tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading standings: %w", err)
	}

	type entry struct {
		leaderName string
		count      int
	}
	byDeck := make(map[string]*entry)
	var order []string
	total := 0
	for _, st := range standings {
		if st.DeckID == nil || *st.DeckID == "" {
			continue
		}
		e, ok := byDeck[*st.DeckID]
		if !ok {
			e = &entry{}
			byDeck[*st.DeckID] = e
			order = append(order, *st.DeckID)
		}
		if st.LeaderName != nil {
			e.leaderName = *st.LeaderName
		}
		e.count++
		total++
	}

	shares := make([]MetaShareEntry, 0, len(order))
	for _, id := range order {
		e := byDeck[id]
		share := 0.0
		if total > 0 {
			share = float64(e.count) / float64(total)
		}
		shares = append(shares, MetaShareEntry{
			DeckID:     id,
			LeaderName: e.leaderName,
			Entries:    e.count,
			Share:      share,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Entries != shares[j].Entries {
			return shares[i].Entries > shares[j].Entries
		}
		return shares[i].DeckID < shares[j].DeckID
	})
	return shares, nil
}

// LeaderTrend returns one leader's per-tournament record as a time series,
// oldest first.
func (s *Service) LeaderTrend(deckID string, tournamentIDs []string) ([]TrendPoint, error) {
	entries, err := s.store.GetLeaderEntries(deckID, tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading entries for %s: %w", deckID, err)
	}

	byTournament := make(map[string]*TrendPoint)
	var order []string
	for _, st := range entries {
		point, ok := byTournament[st.TournamentID]
		if !ok {
			point = &TrendPoint{
				TournamentID:   st.TournamentID,
				TournamentName: st.TournamentName,
				Date:           st.TournamentDate,
			}
			byTournament[st.TournamentID] = point
			order = append(order, st.TournamentID)
		}
		point.Entries++
		point.Wins += st.Wins
		point.Losses += st.Losses
		point.Ties += st.Ties
	}

	points := make([]TrendPoint, 0, len(order))
	for _, id := range order {
		p := byTournament[id]
		if games := p.Wins + p.Losses + p.Ties; games > 0 {
			p.WinRate = float64(p.Wins) / float64(games)
		}
		points = append(points, *p)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}
