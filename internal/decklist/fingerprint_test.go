package decklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

func card(set, number string, count int) meta.DecklistCard {
	return meta.DecklistCard{CardSet: set, CardNumber: number, Count: count}
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	a := []meta.DecklistCard{
		card("OP01", "025", 4),
		card("OP01", "016", 2),
		card("ST01", "006", 4),
	}
	b := []meta.DecklistCard{
		card("ST01", "006", 4),
		card("OP01", "025", 4),
		card("OP01", "016", 2),
	}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t, "OP01-016:2,OP01-025:4,ST01-006:4", Fingerprint(a))
}

func TestFingerprintDistinguishesCounts(t *testing.T) {
	a := []meta.DecklistCard{card("OP01", "025", 4)}
	b := []meta.DecklistCard{card("OP01", "025", 3)}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintDistinguishesCards(t *testing.T) {
	a := []meta.DecklistCard{card("OP01", "025", 4)}
	b := []meta.DecklistCard{card("OP01", "026", 4)}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintEmptyDecklist(t *testing.T) {
	assert.Equal(t, "", Fingerprint(nil))
}

func TestFingerprintDoesNotMutateInput(t *testing.T) {
	cards := []meta.DecklistCard{
		card("ST01", "006", 4),
		card("OP01", "025", 4),
	}
	Fingerprint(cards)
	assert.Equal(t, "ST01", cards[0].CardSet)
}
