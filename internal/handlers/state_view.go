package handlers

import (
	"five-card-trick-go/internal/game/common"
	"five-card-trick-go/internal/game/fivecard"
)

// SessionView is a client-safe snapshot. The hidden card is omitted unless
// the session has been toggled to expose it; the deck is never included
// (fetched separately with asset refs).
type SessionView struct {
	ID            int64    `json:"id"`
	Mode          string   `json:"mode"`
	Phase         string   `json:"phase"`
	HandCount     int      `json:"hand_count"`
	Hand          []string `json:"hand,omitempty"` // owner only, selection order
	Arrangement   []string `json:"arrangement,omitempty"`
	Rank          int      `json:"rank,omitempty"`
	HiddenExposed bool     `json:"hidden_exposed"`
	Hidden        string   `json:"hidden,omitempty"`
}

func cardStrings(cards []common.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

// buildPublicView is what spectators in the session's gallery room see.
// Caller must hold the managed session's lock.
func buildPublicView(id int64, s *fivecard.Session) SessionView {
	view := SessionView{
		ID:            id,
		Mode:          string(s.Mode),
		Phase:         string(s.Phase),
		HandCount:     len(s.Hand),
		HiddenExposed: s.HiddenExposed,
	}
	if s.Encoding != nil {
		view.Arrangement = cardStrings(s.Encoding.Arrangement)
		view.Rank = s.Encoding.Rank
		if s.HiddenExposed {
			view.Hidden = s.Encoding.Hidden.String()
		}
	}
	return view
}

// buildOwnerView adds the selection-order hand, which only the magician
// holding the session should see before commit.
func buildOwnerView(id int64, s *fivecard.Session) SessionView {
	view := buildPublicView(id, s)
	view.Hand = cardStrings(s.Hand)
	return view
}
