package fivecard

import (
	"errors"
	"testing"

	"five-card-trick-go/internal/game/common"
	"five-card-trick-go/internal/models"
)

func selectN(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c, err := common.CardFromID(i + 1)
		if err != nil {
			t.Fatal(err)
		}
		if !s.Select(c) {
			t.Fatalf("Select(%s) rejected", c)
		}
	}
}

func TestSession_InitialState(t *testing.T) {
	s := NewSession(RankedDisplay)
	if s.Phase != PhaseSelecting {
		t.Fatalf("phase = %s, want selecting", s.Phase)
	}
	if len(s.Hand) != 0 {
		t.Fatalf("hand = %v, want empty", s.Hand)
	}
	if err := s.Deck.Validate(); err != nil {
		t.Fatalf("session deck invalid: %v", err)
	}
}

func TestSession_SelectRules(t *testing.T) {
	s := NewSession(RankedDisplay)

	c, _ := common.CardFromID(7)
	if !s.Select(c) {
		t.Fatal("first selection rejected")
	}
	if s.Select(c) {
		t.Fatal("duplicate selection accepted")
	}
	if s.Select(common.Card{Rank: 99, Suit: "S"}) {
		t.Fatal("illegal card accepted")
	}

	for id := 1; id <= 6; id++ {
		card, _ := common.CardFromID(id)
		s.Select(card)
	}
	if len(s.Hand) != 5 {
		t.Fatalf("hand size = %d, want capped at 5", len(s.Hand))
	}
	extra, _ := common.CardFromID(40)
	if s.Select(extra) {
		t.Fatal("selection beyond 5 accepted")
	}
}

func TestSession_CommitRequiresFullHand(t *testing.T) {
	s := NewSession(RankedDisplay)
	selectN(t, s, 3)

	err := s.Commit()
	if !errors.Is(err, models.ErrInvalidHand) {
		t.Fatalf("expected ErrInvalidHand, got %v", err)
	}
	if s.Phase != PhaseSelecting {
		t.Fatalf("failed commit moved phase to %s", s.Phase)
	}

	selectN2 := []int{4, 5}
	for _, id := range selectN2 {
		c, _ := common.CardFromID(id)
		s.Select(c)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit with 5 cards failed: %v", err)
	}
	if s.Phase != PhaseRevealed {
		t.Fatalf("phase = %s, want revealed", s.Phase)
	}
	if s.Encoding == nil || s.Encoding.Hidden != s.Hand[4] {
		t.Fatal("encoding missing or hidden card not the 5th selection")
	}

	// Commit is idempotent once revealed.
	if err := s.Commit(); err != nil {
		t.Fatalf("second commit: %v", err)
	}
	// Selection is illegal once revealed.
	c, _ := common.CardFromID(50)
	if s.Select(c) {
		t.Fatal("selection accepted in revealed phase")
	}
}

func TestSession_ToggleReveal(t *testing.T) {
	s := NewSession(CanonicalDisplay)
	if s.ToggleReveal() {
		t.Fatal("toggle legal while selecting")
	}
	selectN(t, s, 5)
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	if !s.ToggleReveal() || !s.HiddenExposed {
		t.Fatal("toggle failed to expose hidden card")
	}
	if !s.ToggleReveal() || s.HiddenExposed {
		t.Fatal("second toggle failed to hide again")
	}
}

func TestSession_ResetFromAnyState(t *testing.T) {
	s := NewSession(RankedDisplay)
	selectN(t, s, 5)
	if err := s.Commit(); err != nil {
		t.Fatal(err)
	}
	s.ToggleReveal()

	s.Reset()
	if s.Phase != PhaseSelecting {
		t.Fatalf("phase after reset = %s", s.Phase)
	}
	if len(s.Hand) != 0 || s.Encoding != nil || s.HiddenExposed {
		t.Fatal("reset did not clear hand/encoding/reveal flag")
	}
	if err := s.Deck.Validate(); err != nil {
		t.Fatalf("deck invalid after reset: %v", err)
	}

	// Reset while selecting is also legal.
	selectN(t, s, 2)
	s.Reset()
	if len(s.Hand) != 0 {
		t.Fatal("reset mid-selection did not clear hand")
	}

	if _, err := s.Hidden(); !errors.Is(err, models.ErrNotCommitted) {
		t.Fatalf("Hidden() after reset: expected ErrNotCommitted, got %v", err)
	}
}
