package game

import (
	"slices"

	"github.com/lox/tuolaji/internal/deck"
)

// Bid strengths, weakest first. A declaration must strictly beat the
// current one.
const (
	BidNone = iota
	BidSingle
	BidPair
	BidSmallJoker
	BidSmallJokerPair
	BidBigJoker
	BidBigJokerPair
)

var bidNames = map[int]string{
	BidSingle:         "single",
	BidPair:           "pair",
	BidSmallJoker:     "small joker",
	BidSmallJokerPair: "small joker pair",
	BidBigJoker:       "big joker",
	BidBigJokerPair:   "big joker pair",
}

// BidStrength scores a proposed declaration under trumpRank. It returns
// BidNone for anything that is not a legal bid.
func BidStrength(cards []deck.Card, trumpRank deck.Rank) int {
	switch len(cards) {
	case 1:
		c := cards[0]
		switch {
		case c.Suit == deck.BigJoker:
			return BidBigJoker
		case c.Suit == deck.SmallJoker:
			return BidSmallJoker
		case c.Rank == trumpRank:
			return BidSingle
		}
	case 2:
		a, b := cards[0], cards[1]
		switch {
		case a.Suit == deck.BigJoker && b.Suit == deck.BigJoker:
			return BidBigJokerPair
		case a.Suit == deck.SmallJoker && b.Suit == deck.SmallJoker:
			return BidSmallJokerPair
		case a.Rank == trumpRank && b.Rank == trumpRank && a.Suit == b.Suit:
			return BidPair
		}
	}
	return BidNone
}

// BidName describes a bid strength, e.g. "small joker pair".
func BidName(strength int) string {
	return bidNames[strength]
}

// Declaration is the strongest accepted bid of a round.
type Declaration struct {
	Seat     int
	Cards    []deck.Card
	Strength int
}

// Suit returns the suit the declaration names. Joker bids name no suit.
func (d Declaration) Suit() (deck.Suit, bool) {
	for _, c := range d.Cards {
		if !c.IsJoker() {
			return c.Suit, true
		}
	}
	return 0, false
}

// Name describes the declaration's strength.
func (d Declaration) Name() string {
	return BidName(d.Strength)
}

func (d Declaration) clone() Declaration {
	d.Cards = slices.Clone(d.Cards)
	return d
}
