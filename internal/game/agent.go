package game

import (
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trick"
	"github.com/lox/tuolaji/internal/trump"
)

// DealView is what a seat sees after receiving a card during dealing
type DealView struct {
	Seat        int
	Hand        []deck.Card
	TrumpRank   deck.Rank
	Trump       trump.System // working trump, may still change
	Declaration *Declaration // strongest bid so far, nil if none
	CardsDealt  int
}

// KittyView is what the declarer sees when burying. Hand already includes
// the kitty cards.
type KittyView struct {
	Seat  int
	Hand  []deck.Card
	Trump trump.System
}

// PlayView is the read-only state of the table for choosing a play
type PlayView struct {
	Seat          int
	Hand          []deck.Card
	Trump         trump.System
	Trick         *trick.Trick // a copy of the trick in progress
	Declarer      int
	DefendingTeam int
	Scores        [2]int
	TricksPlayed  int
}

// IsLead reports whether the seat is leading the trick.
func (v PlayView) IsLead() bool {
	return v.Trick == nil || v.Trick.IsEmpty()
}

// Agent represents any entity (human or AI) that makes decisions for a seat.
// Agents receive copies of round state and return cards - no state mutation
// allowed. The engine checks every answer and falls back to a legal choice
// when it is rejected.
type Agent interface {
	// Declare returns cards to declare trump with, or nil to pass.
	Declare(view DealView) []deck.Card
	// Bury returns the KittySize cards to put back in the kitty.
	Bury(view KittyView) []deck.Card
	// Play returns the cards to lead or follow with.
	Play(view PlayView) []deck.Card
}
