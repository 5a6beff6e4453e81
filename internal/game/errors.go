package game

import (
	"errors"
	"fmt"
)

// Sentinel rule violations. RuleError wraps one of these so callers can use
// errors.Is while still showing a specific reason.
var (
	ErrWrongPhase = errors.New("not allowed in the current phase")
	ErrNotInHand  = errors.New("cards not in hand")
	ErrInvalidBid = errors.New("invalid declaration")
	ErrWeakBid    = errors.New("declaration does not beat the current one")
	ErrBurySize   = errors.New("wrong number of cards to bury")
)

// RuleError is an expected, recoverable rejection. The round is unchanged
// and the caller should ask the player again.
type RuleError struct {
	Kind   error
	Reason string
}

func (e *RuleError) Error() string {
	return e.Reason
}

func (e *RuleError) Unwrap() error {
	return e.Kind
}

func ruleErrorf(kind error, format string, args ...any) error {
	return &RuleError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
