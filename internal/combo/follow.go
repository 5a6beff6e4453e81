package combo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trump"
)

// Violation reports why a set of cards breaks a lead or follow rule. It is
// an expected, recoverable outcome: the caller should ask for another play.
type Violation struct {
	Reason string
}

func (v *Violation) Error() string {
	return v.Reason
}

func violationf(format string, args ...any) error {
	return &Violation{Reason: fmt.Sprintf(format, args...)}
}

// IsViolation reports whether err is a rule violation.
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}

// ValidateLead checks that cards form a legal lead: at least one card, all
// of a single effective suit. Any mix of singles, pairs and tractors within
// that suit is allowed.
func ValidateLead(ts trump.System, cards []deck.Card) error {
	if len(cards) == 0 {
		return violationf("no cards selected")
	}
	if groups := ts.Groups(cards); len(groups) > 1 {
		return violationf("a lead must be all one suit, got cards from %d suits", len(groups))
	}
	return nil
}

// IsValidLead is ValidateLead as a predicate.
func IsValidLead(ts trump.System, cards []deck.Card) bool {
	return ValidateLead(ts, cards) == nil
}

// Requirement is the minimum structural contribution a follower owes from
// the led suit.
type Requirement struct {
	// TractorPairs is the number of pairs that must be played as part of tractors.
	TractorPairs int
	// Pairs is the number of free (non-tractor) pairs that must be played.
	Pairs int
	// Singles is the number of further led-suit cards owed.
	Singles int
	// Total is the number of led-suit cards that must be played.
	Total int

	// What the follower holds in the led suit.
	AvailableTractorPairs int
	AvailableFreePairs    int
	InSuit                int
}

// structure counts pairs among cards of one group. Pairs whose orders form
// runs of two or more count as tractor pairs; the rest are free pairs.
type structure struct {
	byOrder      map[int][]deck.Card
	pairOrders   []int
	tractorPairs int
	freePairs    int
}

func analyze(ts trump.System, cards []deck.Card) structure {
	s := structure{byOrder: make(map[int][]deck.Card)}
	for _, c := range cards {
		o := ts.Order(c)
		s.byOrder[o] = append(s.byOrder[o], c)
	}
	for o, cs := range s.byOrder {
		if len(cs) >= 2 {
			s.pairOrders = append(s.pairOrders, o)
		}
	}
	slices.Sort(s.pairOrders)

	for _, sp := range runs(s.pairOrders) {
		if sp.len() >= 2 {
			s.tractorPairs += sp.len()
		} else {
			s.freePairs++
		}
	}
	return s
}

// freeOrders returns the orders of pairs that are not part of any run.
func (s structure) freeOrders() []int {
	var out []int
	for _, sp := range runs(s.pairOrders) {
		if sp.len() == 1 {
			out = append(out, s.pairOrders[sp.start])
		}
	}
	return out
}

// tractorPortions picks, from the earliest runs first, the stretches of
// pairs that meet a tractor demand of the given number of pairs. A stretch
// is never shorter than two pairs, so a demand that would leave a lone pair
// over is met only up to the last whole tractor.
func tractorPortions(pairOrders []int, demand int) []span {
	var out []span
	taken := 0
	for _, sp := range runs(pairOrders) {
		n := min(sp.len(), demand-taken)
		if n < 2 {
			continue
		}
		out = append(out, span{start: sp.start, end: sp.start + n})
		taken += n
	}
	return out
}

// RequiredFollow computes what a follower holding hand must contribute
// from the led suit. Tractor demand is met first; unmet tractor pairs turn
// into pair demand one for one, unmet pairs into two singles each. A
// follower void in the led suit owes nothing.
func RequiredFollow(ts trump.System, led Combo, hand []deck.Card) Requirement {
	inSuit := ts.InGroup(hand, led.Group())
	if len(inSuit) == 0 {
		return Requirement{}
	}

	held := analyze(ts, inSuit)

	var demandTractorPairs, demandPairs, demandSingles int
	for _, size := range led.Template() {
		switch {
		case size >= 4:
			demandTractorPairs += size / 2
		case size == 2:
			demandPairs++
		default:
			demandSingles++
		}
	}

	tractorPairs := 0
	for _, sp := range tractorPortions(held.pairOrders, demandTractorPairs) {
		tractorPairs += sp.len()
	}
	demandPairs += demandTractorPairs - tractorPairs

	pairs := min(held.freePairs, demandPairs)
	demandSingles += (demandPairs - pairs) * 2

	committed := tractorPairs*2 + pairs*2
	singles := min(len(inSuit)-committed, demandSingles)

	return Requirement{
		TractorPairs:          tractorPairs,
		Pairs:                 pairs,
		Singles:               singles,
		Total:                 min(committed+singles, len(inSuit), led.Len()),
		AvailableTractorPairs: held.tractorPairs,
		AvailableFreePairs:    held.freePairs,
		InSuit:                len(inSuit),
	}
}

// ValidateFollow checks cards as a response to led by a player holding
// hand (cards included). The play must have as many cards as the lead,
// contain at least the required number of led-suit cards, and must not
// break required tractors or pairs into singles. Slots beyond the required
// led-suit total may hold any cards.
func ValidateFollow(ts trump.System, cards []deck.Card, led Combo, hand []deck.Card) error {
	if len(cards) != led.Len() {
		return violationf("must play exactly %d card(s), got %d", led.Len(), len(cards))
	}

	g := led.Group()
	req := RequiredFollow(ts, led, hand)
	played := ts.InGroup(cards, g)

	if len(played) < req.Total {
		return violationf("must play %d card(s) of the led suit (%s), played %d", req.Total, g, len(played))
	}
	if req.Total == 0 {
		return nil
	}

	got := analyze(ts, played)
	if got.tractorPairs < req.TractorPairs {
		return violationf("must play %d tractor pair(s) from %s", req.TractorPairs, g)
	}
	if got.freePairs < req.Pairs {
		return violationf("must play %d pair(s) from %s instead of breaking them", req.Pairs, g)
	}
	return nil
}

// IsValidFollow is ValidateFollow as a predicate.
func IsValidFollow(ts trump.System, cards []deck.Card, led Combo, hand []deck.Card) bool {
	return ValidateFollow(ts, cards, led, hand) == nil
}

// BuildFollow deterministically constructs a legal follow from hand. It
// plays required tractor pairs from the earliest runs, then the highest
// free pairs, then the lowest led-suit singles, and pads with the lowest
// off-suit cards.
func BuildFollow(ts trump.System, led Combo, hand []deck.Card) []deck.Card {
	need := led.Len()
	g := led.Group()
	req := RequiredFollow(ts, led, hand)

	inSuit := ts.InGroup(hand, g)
	held := analyze(ts, inSuit)

	remaining := inSuit
	var chosen []deck.Card
	take := func(cards []deck.Card) {
		chosen = append(chosen, cards...)
		remaining, _ = deck.Remove(remaining, cards)
	}

	for _, sp := range tractorPortions(held.pairOrders, req.TractorPairs) {
		for _, o := range held.pairOrders[sp.start:sp.end] {
			take(held.byOrder[o][:2])
		}
	}

	free := held.freeOrders()
	slices.Reverse(free)
	for _, o := range free[:min(req.Pairs, len(free))] {
		take(held.byOrder[o][:2])
	}

	if req.Singles > 0 {
		low := slices.Clone(remaining)
		slices.SortStableFunc(low, func(a, b deck.Card) int { return ts.Order(a) - ts.Order(b) })
		take(low[:min(req.Singles, len(low))])
	}

	if short := need - len(chosen); short > 0 {
		var offSuit []deck.Card
		for _, c := range hand {
			if ts.Group(c) != g && !deck.Contains(chosen, c) {
				offSuit = append(offSuit, c)
			}
		}
		offSuit = ts.SortAscending(offSuit)
		chosen = append(chosen, offSuit[:min(short, len(offSuit))]...)
	}

	if len(chosen) > need {
		chosen = chosen[:need]
	}
	return chosen
}
