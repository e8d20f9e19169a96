package fivecard

import (
	"five-card-trick-go/internal/game/common"
	"five-card-trick-go/internal/models"
)

type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhaseRevealed  Phase = "revealed"
)

// Session sequences one run of the trick: selection → encoding → reveal.
//
// A session is owned by a single caller; there is no internal locking. The
// serving layer wraps sessions in its own synchronized manager.
type Session struct {
	Deck common.Deck   `json:"deck"` // presentation order; never mutated between resets
	Hand []common.Card `json:"hand"` // selection order, up to 5 distinct cards
	Mode DisplayMode   `json:"mode"`

	Phase         Phase     `json:"phase"`
	Encoding      *Encoding `json:"encoding,omitempty"`
	HiddenExposed bool      `json:"hidden_exposed"` // presentation flag, not a phase
}

func NewSession(mode DisplayMode) *Session {
	deck := common.NewDeck()
	common.Shuffle(deck)
	return &Session{
		Deck:  deck,
		Hand:  []common.Card{},
		Mode:  mode,
		Phase: PhaseSelecting,
	}
}

// Select appends a card to the hand. Illegal selections (wrong phase, hand
// already full, duplicate card, card outside the 52-identity universe) are
// no-ops, mirroring UI idempotence: it reports whether the card was taken.
func (s *Session) Select(card common.Card) bool {
	if s.Phase != PhaseSelecting || len(s.Hand) >= 5 {
		return false
	}
	if _, err := card.IdentityID(); err != nil {
		return false
	}
	for _, c := range s.Hand {
		if c == card {
			return false
		}
	}
	s.Hand = append(s.Hand, card)
	return true
}

// Commit runs the encoder over the completed hand and transitions to
// PhaseRevealed. With fewer than 5 cards it returns ErrInvalidHand and the
// session stays in PhaseSelecting.
func (s *Session) Commit() error {
	if s.Phase != PhaseSelecting {
		return nil // idempotent no-op once revealed
	}
	enc, err := Encode(s.Hand, s.Mode)
	if err != nil {
		return err
	}
	s.Encoding = &enc
	s.Phase = PhaseRevealed
	return nil
}

// ToggleReveal flips whether the hidden card's identity is exposed to the
// presentation layer. Outside PhaseRevealed it is a no-op.
func (s *Session) ToggleReveal() bool {
	if s.Phase != PhaseRevealed {
		return false
	}
	s.HiddenExposed = !s.HiddenExposed
	return true
}

// Reset is legal from any state: clears the hand and encoding, reshuffles the
// deck, and returns to PhaseSelecting.
func (s *Session) Reset() {
	common.Shuffle(s.Deck)
	s.Hand = s.Hand[:0]
	s.Encoding = nil
	s.HiddenExposed = false
	s.Phase = PhaseSelecting
}

// Hidden returns the hidden card once committed.
func (s *Session) Hidden() (common.Card, error) {
	if s.Encoding == nil {
		return common.Card{}, models.ErrNotCommitted
	}
	return s.Encoding.Hidden, nil
}
