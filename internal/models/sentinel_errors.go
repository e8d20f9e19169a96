package models

import "errors"

var (
	ErrInvalidJSON     = errors.New("invalid json")
	ErrInvalidCard     = errors.New("invalid card")
	ErrInvalidHand     = errors.New("hand must be exactly 5 distinct cards")
	ErrInvalidMode     = errors.New("unknown display mode")
	ErrNotCommitted    = errors.New("session not committed")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotOwner        = errors.New("not the session owner")
	ErrPatterDisabled  = errors.New("patter service not configured")
)
