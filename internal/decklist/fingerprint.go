package decklist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

// Fingerprint derives a canonical identity string for a decklist: every card
// rendered as "set-number:count", sorted by set then number, joined with
// commas. Two decklists with the same cards in the same counts produce the
// same fingerprint regardless of pilot or input order. Leader and DON rows
// must be filtered out before this is called.
func Fingerprint(cards []meta.DecklistCard) string {
	sorted := make([]meta.DecklistCard, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CardSet != sorted[j].CardSet {
			return sorted[i].CardSet < sorted[j].CardSet
		}
		return sorted[i].CardNumber < sorted[j].CardNumber
	})

	parts := make([]string, 0, len(sorted))
	for _, c := range sorted {
		parts = append(parts, fmt.Sprintf("%s-%s:%d", c.CardSet, c.CardNumber, c.Count))
	}
	return strings.Join(parts, ",")
}
