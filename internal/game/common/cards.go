package common

import (
	"fmt"
	"strings"

	"five-card-trick-go/internal/models"
)

type Suit string

const (
	Spades   Suit = "S"
	Clubs    Suit = "C"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
)

// suitOrder fixes the total order used for identity numbering:
// Spades < Clubs < Hearts < Diamonds. Gameplay never depends on it; identity
// ids do.
var suitOrder = []Suit{Spades, Clubs, Hearts, Diamonds}

// Ordinal returns the suit's position in the identity order, or -1 for an
// unknown suit.
func (s Suit) Ordinal() int {
	for i, v := range suitOrder {
		if v == s {
			return i
		}
	}
	return -1
}

type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Card is an immutable (Suit, Rank) identity. Two cards are the same card
// exactly when suit and rank match; there is no other card state.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// IdentityID maps a card to its identity number in [1,52]:
// id = rank + 13*ordinal(suit). The mapping is a bijection over the 52 legal
// (suit, rank) pairs; anything else is a contract violation, not a data
// condition.
func (c Card) IdentityID() (int, error) {
	ord := c.Suit.Ordinal()
	if ord < 0 || c.Rank < Ace || c.Rank > King {
		return 0, fmt.Errorf("%w: rank=%d suit=%q", models.ErrInvalidCard, int(c.Rank), string(c.Suit))
	}
	return int(c.Rank) + 13*ord, nil
}

// MustIdentityID is IdentityID for cards already known legal (anything built
// by NewDeck, CardFromID, or ParseCard). It panics on misuse rather than
// producing a wrong-but-plausible id.
func (c Card) MustIdentityID() int {
	id, err := c.IdentityID()
	if err != nil {
		panic(err)
	}
	return id
}

// CardFromID is the inverse of IdentityID.
func CardFromID(id int) (Card, error) {
	if id < 1 || id > 52 {
		return Card{}, fmt.Errorf("%w: id %d outside [1,52]", models.ErrInvalidCard, id)
	}
	ord := (id - 1) / 13
	rank := id - 13*ord
	return Card{Rank: Rank(rank), Suit: suitOrder[ord]}, nil
}

func (c Card) String() string {
	var r string
	switch c.Rank {
	case Ace:
		r = "A"
	case Jack:
		r = "J"
	case Queen:
		r = "Q"
	case King:
		r = "K"
	default:
		r = fmt.Sprintf("%d", int(c.Rank))
	}
	return r + string(c.Suit)
}

func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Card{}, models.ErrInvalidCard
	}
	suit := Suit(s[len(s)-1:])
	rankStr := s[:len(s)-1]
	var r Rank
	switch rankStr {
	case "A":
		r = Ace
	case "J":
		r = Jack
	case "Q":
		r = Queen
	case "K":
		r = King
	default:
		var v int
		_, err := fmt.Sscanf(rankStr, "%d", &v)
		if err != nil || v < 2 || v > 10 {
			return Card{}, fmt.Errorf("%w: rank %q", models.ErrInvalidCard, rankStr)
		}
		r = Rank(v)
	}
	switch suit {
	case Spades, Clubs, Hearts, Diamonds:
	default:
		return Card{}, fmt.Errorf("%w: suit %q", models.ErrInvalidCard, string(suit))
	}
	return Card{Rank: r, Suit: suit}, nil
}
