package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/limitless"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

// BuildStandingRows normalizes source standings into store rows.
//
// When the source's placing is absent it is derived from position in a fixed
// sort order: non-dropped players first by wins descending then losses
// ascending, dropped players last in source order. A source-provided placing
// is trusted verbatim.
func BuildStandingRows(tournamentID string, src []limitless.Standing) []meta.Standing {
	sorted := make([]limitless.Standing, len(src))
	copy(sorted, src)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aDropped := a.Drop != nil
		bDropped := b.Drop != nil
		if aDropped != bDropped {
			return !aDropped
		}
		if aDropped {
			// Dropped players keep their source order.
			return false
		}
		if wa, wb := recordWins(a), recordWins(b); wa != wb {
			return wa > wb
		}
		return recordLosses(a) < recordLosses(b)
	})

	rows := make([]meta.Standing, 0, len(sorted))
	for i, s := range sorted {
		placing := i + 1
		if s.Placing != nil {
			placing = *s.Placing
		}

		row := meta.Standing{
			TournamentID: tournamentID,
			Player:       playerKey(s, fmt.Sprintf("unknown-%d", i)),
			DisplayName:  displayName(s),
			Country:      s.Country,
			Placing:      &placing,
			Wins:         recordWins(s),
			Losses:       recordLosses(s),
			Ties:         recordTies(s),
			DropRound:    s.Drop,
		}
		if s.Deck != nil {
			row.DeckID = &s.Deck.ID
			row.DeckName = &s.Deck.Name
		}
		if s.Decklist != nil && s.Decklist.Leader != nil {
			row.LeaderName = &s.Decklist.Leader.Name
			row.LeaderSet = &s.Decklist.Leader.Set
			row.LeaderNumber = &s.Decklist.Leader.Number
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildDecklistRows flattens each standing's sectioned decklist into one row
// per card, injecting the card type from the section it came from.
func BuildDecklistRows(tournamentID string, src []limitless.Standing) []meta.DecklistCard {
	var rows []meta.DecklistCard
	for _, s := range src {
		key := playerKey(s, "unknown")
		for _, card := range flattenDecklist(s) {
			rows = append(rows, meta.DecklistCard{
				TournamentID:   tournamentID,
				StandingPlayer: key,
				CardType:       card.cardType,
				CardName:       card.Name,
				CardSet:        card.Set,
				CardNumber:     card.Number,
				Count:          card.Count,
				CardID:         card.Set + "-" + card.Number,
			})
		}
	}
	return rows
}

// BuildPairingRows normalizes pairings, synthesizing sequential table numbers
// per (round, phase) when the source omits them or reports 0.
func BuildPairingRows(tournamentID string, src []limitless.Pairing) []meta.Pairing {
	tableCounters := make(map[string]int)

	rows := make([]meta.Pairing, 0, len(src))
	for _, p := range src {
		phase := p.Phase
		if phase == 0 {
			phase = 1
		}

		table := p.Table
		if table == 0 {
			key := strconv.Itoa(p.Round) + "-" + strconv.Itoa(phase)
			tableCounters[key]++
			table = tableCounters[key]
		}

		rows = append(rows, meta.Pairing{
			TournamentID: tournamentID,
			Round:        p.Round,
			Phase:        strconv.Itoa(phase),
			Table:        table,
			Player1:      p.Player1,
			Player2:      p.Player2,
			Winner:       p.Winner,
		})
	}
	return rows
}

type typedCard struct {
	limitless.DeckCard
	cardType string
}

func flattenDecklist(s limitless.Standing) []typedCard {
	var cards []typedCard
	if s.Decklist == nil {
		return cards
	}
	for _, c := range s.Decklist.Character {
		cards = append(cards, typedCard{DeckCard: c, cardType: "character"})
	}
	for _, c := range s.Decklist.Event {
		cards = append(cards, typedCard{DeckCard: c, cardType: "event"})
	}
	for _, c := range s.Decklist.Stage {
		cards = append(cards, typedCard{DeckCard: c, cardType: "stage"})
	}
	return cards
}

func playerKey(s limitless.Standing, fallback string) string {
	if s.Player != "" {
		return s.Player
	}
	if s.Name != "" {
		return strings.ToLower(s.Name)
	}
	return fallback
}

func displayName(s limitless.Standing) string {
	if s.Name != "" {
		return s.Name
	}
	return s.Player
}

func recordWins(s limitless.Standing) int {
	if s.Record == nil {
		return 0
	}
	return s.Record.Wins
}

func recordLosses(s limitless.Standing) int {
	if s.Record == nil {
		return 0
	}
	return s.Record.Losses
}

func recordTies(s limitless.Standing) int {
	if s.Record == nil {
		return 0
	}
	return s.Record.Ties
}
