package game

import "five-card-trick-go/internal/game/fivecard"

// Factory builds a fresh session for one registered display mode.
type Factory func() *fivecard.Session
