// Package trump classifies and orders cards for one round given the
// declared trump suit and the round's trump rank.
//
// A System is an immutable value. Rounds create a new System whenever the
// declaration changes and pass it explicitly to everything that needs it;
// there is no shared mutable trump state.
package trump

import (
	"fmt"
	"slices"

	"github.com/lox/tuolaji/internal/deck"
)

// Group is a card's effective suit: its own suit, or Trump for every trump
// card. All "same suit" checks compare Groups.
type Group int

// Trump is the single group holding every trump card.
const Trump Group = -1

// SuitGroup returns the group of an ordinary suit.
func SuitGroup(s deck.Suit) Group {
	return Group(s)
}

func (g Group) String() string {
	if g == Trump {
		return "trump"
	}
	return deck.Suit(g).String()
}

// Order bands within the trump group. Bands are spaced so that only
// neighbours inside one band ever differ by exactly one.
const (
	offSuitRankBand = 100
	smallJokerOrder = 200
	bigJokerOrder   = 201
	trumpCardBase   = 1000
	suitStride      = 100
)

// System is the trump configuration of a round.
type System struct {
	Suit deck.Suit
	Rank deck.Rank
}

// New returns the trump system for the given suit and rank.
func New(suit deck.Suit, rank deck.Rank) System {
	return System{Suit: suit, Rank: rank}
}

func (s System) String() string {
	return fmt.Sprintf("%s%s", s.Suit, s.Rank)
}

// IsTrump reports whether c is a joker, carries the trump rank or belongs
// to the trump suit.
func (s System) IsTrump(c deck.Card) bool {
	return c.IsJoker() || c.Rank == s.Rank || c.Suit == s.Suit
}

// Group returns the effective suit of c.
func (s System) Group(c deck.Card) Group {
	if s.IsTrump(c) {
		return Trump
	}
	return SuitGroup(c.Suit)
}

// TrumpOrder ranks trump cards from weakest to strongest:
//
//	trump-suit cards below the trump rank band, by rank
//	the trump-suit card of trump rank
//	off-suit cards of trump rank, in canonical suit rotation
//	small joker
//	big joker
//
// Consecutive trump-suit ranks differ by one and the trump-suit trump-rank
// card sits one above the highest ordinary trump-suit rank. The off-suit
// trump-rank cards form their own band and jokers are only adjacent to
// each other. It panics for non-trump cards.
func (s System) TrumpOrder(c deck.Card) int {
	switch {
	case c.Suit == deck.BigJoker:
		return bigJokerOrder
	case c.Suit == deck.SmallJoker:
		return smallJokerOrder
	case c.Rank == s.Rank && c.Suit == s.Suit:
		return s.topOrdinaryIndex() + 1
	case c.Rank == s.Rank:
		pos := 0
		for _, suit := range deck.Suits {
			if suit == s.Suit {
				continue
			}
			if suit == c.Suit {
				return offSuitRankBand + pos
			}
			pos++
		}
	case c.Suit == s.Suit:
		return c.Rank.Index()
	}
	panic(fmt.Sprintf("trump: %s is not trump under %s", c, s))
}

// topOrdinaryIndex is the rank index of the strongest trump-suit card that
// does not carry the trump rank.
func (s System) topOrdinaryIndex() int {
	if s.Rank == deck.Ace {
		return deck.King.Index()
	}
	return deck.Ace.Index()
}

// Order is the strength of c inside its own group: TrumpOrder for trump
// cards, rank index otherwise. Two cards of one group are "consecutive"
// when their orders differ by exactly one.
func (s System) Order(c deck.Card) int {
	if s.IsTrump(c) {
		return s.TrumpOrder(c)
	}
	return c.Rank.Index()
}

// CardOrder is a total sort key over all cards: every trump outranks every
// non-trump, and non-trumps are grouped by suit in canonical order, then
// by rank.
func (s System) CardOrder(c deck.Card) int {
	if s.IsTrump(c) {
		return trumpCardBase + s.TrumpOrder(c)
	}
	return int(c.Suit)*suitStride + c.Rank.Index()
}

// Beats compares two single cards without any knowledge of combination
// structure. Within one group the stronger card wins; a trump beats any
// non-trump; a card of the led suit beats a card that is neither led suit
// nor trump. Everything else loses.
func (s System) Beats(challenger, incumbent deck.Card, led Group) bool {
	cg, ig := s.Group(challenger), s.Group(incumbent)

	if cg == ig {
		if cg == Trump {
			return s.TrumpOrder(challenger) > s.TrumpOrder(incumbent)
		}
		return challenger.Rank > incumbent.Rank
	}

	if cg == Trump {
		return true
	}

	return cg == led && ig != Trump
}

// SortHand returns a copy of hand stably sorted strongest first.
func (s System) SortHand(hand []deck.Card) []deck.Card {
	sorted := slices.Clone(hand)
	slices.SortStableFunc(sorted, func(a, b deck.Card) int {
		return s.CardOrder(b) - s.CardOrder(a)
	})
	return sorted
}

// SortAscending returns a copy of cards stably sorted weakest first by CardOrder.
func (s System) SortAscending(cards []deck.Card) []deck.Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b deck.Card) int {
		return s.CardOrder(a) - s.CardOrder(b)
	})
	return sorted
}

// Top returns the strongest of cards by CardOrder. cards must not be empty.
func (s System) Top(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if s.CardOrder(c) > s.CardOrder(best) {
			best = c
		}
	}
	return best
}

// InGroup returns the cards of the given group, preserving order.
func (s System) InGroup(cards []deck.Card, g Group) []deck.Card {
	var out []deck.Card
	for _, c := range cards {
		if s.Group(c) == g {
			out = append(out, c)
		}
	}
	return out
}

// Groups returns the distinct groups present in cards, in first-seen order.
func (s System) Groups(cards []deck.Card) []Group {
	var groups []Group
	for _, c := range cards {
		g := s.Group(c)
		if !slices.Contains(groups, g) {
			groups = append(groups, g)
		}
	}
	return groups
}
