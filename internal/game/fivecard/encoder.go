// Package fivecard implements the five-card trick: the identity of one hidden
// card is encoded in the observable arrangement of the remaining four.
package fivecard

import (
	"fmt"

	"five-card-trick-go/internal/game/common"
	"five-card-trick-go/internal/game/permcodec"
	"five-card-trick-go/internal/models"
)

// DisplayMode names how the four visible cards are ordered.
//
// CanonicalDisplay shows them ascending by identity id regardless of the
// computed permutation rank (the rank is still reported, just not applied).
// RankedDisplay orders them as the permutation designated by the rank, so the
// visible order itself carries the rank; a decoder can recover it by
// re-sorting and re-ranking. RankedDisplay is the default.
type DisplayMode string

const (
	CanonicalDisplay DisplayMode = "canonical"
	RankedDisplay    DisplayMode = "ranked"
)

func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case CanonicalDisplay, RankedDisplay:
		return DisplayMode(s), nil
	case "":
		return RankedDisplay, nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrInvalidMode, s)
	}
}

// Encoding is the output of one trick: the hidden card plus the four visible
// cards in display order and the permutation rank relating their selection
// order to their canonical (ascending-id) order.
type Encoding struct {
	Hidden      common.Card   `json:"hidden"`
	Arrangement []common.Card `json:"arrangement"`
	Rank        int           `json:"rank"` // 1..24
	Mode        DisplayMode   `json:"mode"`
}

// Encode takes a hand of exactly 5 distinct cards in selection order. The 5th
// selected card is the hidden card; the rank captures how the first four were
// selected relative to their ascending-id order.
func Encode(hand []common.Card, mode DisplayMode) (Encoding, error) {
	if len(hand) != 5 {
		return Encoding{}, fmt.Errorf("%w: got %d cards", models.ErrInvalidHand, len(hand))
	}
	seen := make(map[common.Card]bool, 5)
	for _, c := range hand {
		if _, err := c.IdentityID(); err != nil {
			return Encoding{}, err
		}
		if seen[c] {
			return Encoding{}, fmt.Errorf("%w: duplicate card %s", models.ErrInvalidHand, c)
		}
		seen[c] = true
	}

	hidden := hand[4]
	selected := append([]common.Card(nil), hand[:4]...)
	canonical := common.SortByIdentity(selected)

	rank, err := permcodec.Rank(selected, canonical)
	if err != nil {
		// Unreachable given the distinctness check above.
		return Encoding{}, err
	}

	arrangement := canonical
	if mode == RankedDisplay {
		arrangement = selected
	}
	return Encoding{
		Hidden:      hidden,
		Arrangement: arrangement,
		Rank:        rank,
		Mode:        mode,
	}, nil
}

// DecodeRank recovers the permutation rank carried by a displayed
// arrangement of four cards, by re-sorting to canonical order and re-ranking.
// For a CanonicalDisplay arrangement this is always 1; for RankedDisplay it
// reproduces the rank the encoder computed.
func DecodeRank(arrangement []common.Card) (int, error) {
	if len(arrangement) != 4 {
		return 0, fmt.Errorf("%w: arrangement has %d cards, want 4", models.ErrInvalidHand, len(arrangement))
	}
	for _, c := range arrangement {
		if _, err := c.IdentityID(); err != nil {
			return 0, err
		}
	}
	canonical := common.SortByIdentity(arrangement)
	return permcodec.Rank(arrangement, canonical)
}

// DecodeOrder reconstructs the selection order of four cards from their
// canonical order and a rank in [1,24].
func DecodeOrder(rank int, arrangement []common.Card) ([]common.Card, error) {
	if len(arrangement) != 4 {
		return nil, fmt.Errorf("%w: arrangement has %d cards, want 4", models.ErrInvalidHand, len(arrangement))
	}
	canonical := common.SortByIdentity(arrangement)
	return permcodec.Unrank(rank, canonical)
}
