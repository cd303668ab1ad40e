package decklist

import (
	"fmt"
	"math"
	"sort"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

// maxArchetypes caps the grouped result for display.
const maxArchetypes = 50

func NewService(store meta.MetaStore) *Service {
	return &Service{store: store}
}

// GroupedDecklists groups every decklist played with the given leader by
// card-composition fingerprint. Each group carries summed results, its pilot
// history, and the representative instance's card list. Results are capped to
// the top archetypes by games played, then win rate.
func (s *Service) GroupedDecklists(deckID string, tournamentIDs []string) ([]Archetype, error) {
	entries, err := s.store.GetLeaderEntries(deckID, tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading entries for %s: %w", deckID, err)
	}
	cards, err := s.store.GetArchetypeCards(deckID, tournamentIDs)
	if err != nil {
		return nil, fmt.Errorf("loading cards for %s: %w", deckID, err)
	}

	type instanceKey struct {
		tournamentID string
		player       string
	}
	cardsByInstance := make(map[instanceKey][]meta.DecklistCard)
	for _, c := range cards {
		key := instanceKey{c.TournamentID, c.StandingPlayer}
		cardsByInstance[key] = append(cardsByInstance[key], c)
	}

	groups := make(map[string]*Archetype)
	representatives := make(map[string]meta.StandingWithEvent)
	var order []string
	for _, st := range entries {
		instanceCards, ok := cardsByInstance[instanceKey{st.TournamentID, st.Player}]
		if !ok {
			// No stored decklist for this entry; it cannot join a group.
			continue
		}
		fp := Fingerprint(instanceCards)

		group, ok := groups[fp]
		if !ok {
			group = &Archetype{Fingerprint: fp}
			groups[fp] = group
			representatives[fp] = st
			order = append(order, fp)
		}

		group.PilotCount++
		group.Wins += st.Wins
		group.Losses += st.Losses
		group.Ties += st.Ties
		if st.DropRound == nil && st.Placing != nil {
			if group.BestPlacing == nil || *st.Placing < *group.BestPlacing {
				best := *st.Placing
				group.BestPlacing = &best
			}
		}
		group.Pilots = append(group.Pilots, Pilot{
			TournamentID:   st.TournamentID,
			TournamentName: st.TournamentName,
			Date:           st.TournamentDate,
			Player:         st.Player,
			DisplayName:    st.DisplayName,
			Placing:        st.Placing,
			Wins:           st.Wins,
			Losses:         st.Losses,
			Ties:           st.Ties,
		})

		if betterRepresentative(st, representatives[fp]) {
			representatives[fp] = st
		}
	}

	archetypes := make([]Archetype, 0, len(order))
	for _, fp := range order {
		group := groups[fp]
		if games := group.Wins + group.Losses + group.Ties; games > 0 {
			group.WinRate = math.Round(float64(group.Wins)/float64(games)*1000) / 10
		}

		rep := representatives[fp]
		group.Cards = cardsByInstance[instanceKey{rep.TournamentID, rep.Player}]

		sort.SliceStable(group.Pilots, func(i, j int) bool {
			a, b := group.Pilots[i], group.Pilots[j]
			if a.Date != b.Date {
				return a.Date > b.Date
			}
			return lessPlacing(a.Placing, b.Placing)
		})

		archetypes = append(archetypes, *group)
	}

	sort.SliceStable(archetypes, func(i, j int) bool {
		a, b := archetypes[i], archetypes[j]
		gamesA := a.Wins + a.Losses + a.Ties
		gamesB := b.Wins + b.Losses + b.Ties
		if gamesA != gamesB {
			return gamesA > gamesB
		}
		return a.WinRate > b.WinRate
	})
	if len(archetypes) > maxArchetypes {
		archetypes = archetypes[:maxArchetypes]
	}
	return archetypes, nil
}

// betterRepresentative reports whether candidate should replace current as a
// group's display instance: best placing first, then most wins, then
// tournament id and player for determinism.
func betterRepresentative(candidate, current meta.StandingWithEvent) bool {
	if candidate.Placing == nil && current.Placing != nil {
		return false
	}
	if candidate.Placing != nil && current.Placing == nil {
		return true
	}
	if candidate.Placing != nil && current.Placing != nil && *candidate.Placing != *current.Placing {
		return *candidate.Placing < *current.Placing
	}
	if candidate.Wins != current.Wins {
		return candidate.Wins > current.Wins
	}
	if candidate.TournamentID != current.TournamentID {
		return candidate.TournamentID < current.TournamentID
	}
	return candidate.Player < current.Player
}

// lessPlacing orders placings ascending with nil last.
func lessPlacing(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}
