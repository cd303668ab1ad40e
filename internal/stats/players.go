package stats

import (
	"fmt"
	"sort"
)

// circuitPoints returns the points awarded for a final placing. Dropped
// players and players without a recorded placing earn nothing.
func circuitPoints(placing *int, dropped bool) int {
	if dropped || placing == nil {
		return 0
	}
	switch p := *placing; {
	case p == 1:
		return 16
	case p == 2:
		return 12
	case p <= 4:
		return 8
	case p <= 8:
		return 6
	case p <= 16:
		return 4
	case p <= 32:
		return 2
	case p <= 64:
		return 1
	default:
		return 0
	}
}

// mostPlayedLeader returns the modal leader name; ties go to the
// alphabetically first name.
func mostPlayedLeader(counts map[string]int) string {
	var best string
	bestCount := 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}

// PlayerLeaderboard ranks every player across the given tournaments by
// circuit points, with win rate as the tiebreaker.
func (s *Service) PlayerLeaderboard(tournamentIDs []string) ([]PlayerStanding, error) {
	standings, err := s.store.GetStandingsWithEvent(tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading standings: %w", err)
	}

	byPlayer := make(map[string]*PlayerStanding)
	leaderCounts := make(map[string]map[string]int)
	var order []string
	for _, st := range standings {
		ps, ok := byPlayer[st.Player]
		if !ok {
			ps = &PlayerStanding{Player: st.Player, Country: st.Country}
			byPlayer[st.Player] = ps
			leaderCounts[st.Player] = make(map[string]int)
			order = append(order, st.Player)
		}
		if st.DisplayName != "" {
			ps.DisplayName = st.DisplayName
		}
		if st.LeaderName != nil && *st.LeaderName != "" {
			leaderCounts[st.Player][*st.LeaderName]++
		}

		dropped := st.DropRound != nil
		ps.Points += circuitPoints(st.Placing, dropped)
		ps.Entries++
		ps.Wins += st.Wins
		ps.Losses += st.Losses
		ps.Ties += st.Ties

		if dropped || st.Placing == nil {
			continue
		}
		p := *st.Placing
		if p <= 4 {
			ps.Top4s++
		}
		if p == 1 {
			ps.TournamentWins++
		}
		if ps.BestPlacing == nil || p < *ps.BestPlacing {
			best := p
			ps.BestPlacing = &best
		}
	}

	results := make([]PlayerStanding, 0, len(order))
	for _, player := range order {
		ps := byPlayer[player]
		if games := ps.Wins + ps.Losses + ps.Ties; games > 0 {
			ps.WinRate = float64(ps.Wins) / float64(games)
		}
		ps.MostPlayedLeader = mostPlayedLeader(leaderCounts[player])
		results = append(results, *ps)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		if results[i].WinRate != results[j].WinRate {
			return results[i].WinRate > results[j].WinRate
		}
		return results[i].Player < results[j].Player
	})
	return results, nil
}

// PlayerHistory returns one player's entries across all tournaments, most
// recent first.
func (s *Service) PlayerHistory(player string) (*PlayerStanding, []TrendPoint, error) {
	entries, err := s.store.GetPlayerEntries(player)
	if err != nil {
		return nil, nil, fmt.Errorf("loading entries for %s: %w", player, err)
	}
	if len(entries) == 0 {
		return nil, nil, nil
	}

	summary := &PlayerStanding{Player: player}
	leaders := make(map[string]int)
	history := make([]TrendPoint, 0, len(entries))
	for _, st := range entries {
		if st.DisplayName != "" {
			summary.DisplayName = st.DisplayName
		}
		if st.LeaderName != nil && *st.LeaderName != "" {
			leaders[*st.LeaderName]++
		}
		if st.Country != "" {
			summary.Country = st.Country
		}
		dropped := st.DropRound != nil
		summary.Points += circuitPoints(st.Placing, dropped)
		summary.Entries++
		summary.Wins += st.Wins
		summary.Losses += st.Losses
		summary.Ties += st.Ties
		if !dropped && st.Placing != nil {
			p := *st.Placing
			if p <= 4 {
				summary.Top4s++
			}
			if p == 1 {
				summary.TournamentWins++
			}
			if summary.BestPlacing == nil || p < *summary.BestPlacing {
				best := p
				summary.BestPlacing = &best
			}
		}

		point := TrendPoint{
			TournamentID:   st.TournamentID,
			TournamentName: st.TournamentName,
			Date:           st.TournamentDate,
			Entries:        1,
			Wins:           st.Wins,
			Losses:         st.Losses,
			Ties:           st.Ties,
		}
		if games := st.Wins + st.Losses + st.Ties; games > 0 {
			point.WinRate = float64(st.Wins) / float64(games)
		}
		history = append(history, point)
	}
	if games := summary.Wins + summary.Losses + summary.Ties; games > 0 {
		summary.WinRate = float64(summary.Wins) / float64(games)
	}
	summary.MostPlayedLeader = mostPlayedLeader(leaders)

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})
	return summary, history, nil
}
