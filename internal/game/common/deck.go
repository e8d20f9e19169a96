package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"time"
)

// Deck is an ordered sequence of the 52 card identities, each exactly once.
type Deck []Card

// NewDeck enumerates all (suit, rank) pairs suit-outer/rank-inner in identity
// order, so d[i].MustIdentityID() == i+1 before shuffling.
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range []Suit{Spades, Clubs, Hearts, Diamonds} {
		for r := 1; r <= 13; r++ {
			deck = append(deck, Card{Rank: Rank(r), Suit: s})
		}
	}
	return deck
}

// Validate checks the construction invariant: exactly 52 distinct identities.
func (d Deck) Validate() error {
	if len(d) != 52 {
		return fmt.Errorf("deck has %d cards, want 52", len(d))
	}
	seen := make(map[int]bool, 52)
	for _, c := range d {
		id, err := c.IdentityID()
		if err != nil {
			return err
		}
		if seen[id] {
			return fmt.Errorf("duplicate card %s in deck", c)
		}
		seen[id] = true
	}
	return nil
}

// Shuffle permutes the deck uniformly at random using crypto-secure
// Fisher-Yates. Comparator-based "random sort" shuffles are biased and must
// not be used here. If crypto/rand fails we fall back to a time-seeded
// Fisher-Yates as a last resort.
func Shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		nBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			fallbackShuffle(cards)
			return
		}
		j := int(nBig.Int64())
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func fallbackShuffle(cards []Card) {
	// Minimal fallback (predictable) used only if crypto/rand fails.
	seed := time.Now().UnixNano()
	for i := len(cards) - 1; i > 0; i-- {
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		j := int(seed % int64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// SortByIdentity returns a copy of cards in ascending identity order (the
// canonical order used by the permutation codec).
func SortByIdentity(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].MustIdentityID() < out[j].MustIdentityID()
	})
	return out
}
