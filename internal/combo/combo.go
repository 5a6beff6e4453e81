// Package combo detects the structure of a set of cards (single, pair,
// tractor or a mixed multi-component set) and implements the lead and
// follow legality rules built on that structure.
//
// Detection and decomposition are deliberately greedy: tractors are found
// per effective suit from maximal runs of consecutive pairs, then leftover
// pairs, then singles. This is not guaranteed to be the best possible
// decomposition and callers must not rely on it being one.
package combo

import (
	"fmt"
	"slices"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trump"
)

// Type is the structural type of a combination.
type Type int

const (
	Invalid Type = iota
	Single
	Pair
	Tractor
	Multi
)

func (t Type) String() string {
	switch t {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Tractor:
		return "tractor"
	case Multi:
		return "multi"
	default:
		return "invalid"
	}
}

// Combo is a derived view over a set of cards under one trump system. It is
// recomputed whenever needed and never owns the cards it describes.
type Combo struct {
	Type  Type
	Cards []deck.Card
	// Components partitions Cards into singles, pairs and tractors.
	Components [][]deck.Card

	trump trump.System
}

// Detect classifies cards. The cards must be distinct physical cards; an
// empty set yields an Invalid combo with no components.
func Detect(ts trump.System, cards []deck.Card) Combo {
	c := Combo{Cards: slices.Clone(cards), trump: ts}
	n := len(cards)

	switch {
	case n == 0:
		c.Type = Invalid
		return c
	case n == 1:
		c.Type = Single
		c.Components = [][]deck.Card{c.Cards}
		return c
	}

	if len(ts.Groups(cards)) == 1 {
		if n == 2 && ts.Order(cards[0]) == ts.Order(cards[1]) {
			c.Type = Pair
			c.Components = [][]deck.Card{c.Cards}
			return c
		}
		if isTractor(ts, cards) {
			c.Type = Tractor
			c.Components = [][]deck.Card{c.Cards}
			return c
		}
	}

	c.Components = decompose(ts, cards)
	if len(c.Components) == 1 && len(c.Components[0]) == n {
		if n == 2 {
			c.Type = Pair
		} else {
			c.Type = Tractor
		}
		return c
	}
	c.Type = Multi
	return c
}

// Group is the effective suit of the combo, taken from its first card.
// For a legal lead every card shares it.
func (c Combo) Group() trump.Group {
	return c.trump.Group(c.Cards[0])
}

// Trump returns the trump system the combo was detected under.
func (c Combo) Trump() trump.System {
	return c.trump
}

// Len is the number of cards in the combo.
func (c Combo) Len() int {
	return len(c.Cards)
}

// Top returns the strongest card of the combo.
func (c Combo) Top() deck.Card {
	return c.trump.Top(c.Cards)
}

// Template returns the component sizes, largest first. Later plays of a
// trick are split into slots of exactly these sizes.
func (c Combo) Template() []int {
	sizes := make([]int, len(c.Components))
	for i, comp := range c.Components {
		sizes[i] = len(comp)
	}
	slices.SortStableFunc(sizes, func(a, b int) int { return b - a })
	return sizes
}

// SortedComponents returns the components ordered largest first.
func (c Combo) SortedComponents() [][]deck.Card {
	comps := slices.Clone(c.Components)
	slices.SortStableFunc(comps, func(a, b []deck.Card) int { return len(b) - len(a) })
	return comps
}

func (c Combo) String() string {
	return fmt.Sprintf("%s[%s]", c.Type, deck.Format(c.Cards))
}

// isTractor reports whether cards of one group are two or more pairs at
// consecutive orders with every order present exactly twice.
func isTractor(ts trump.System, cards []deck.Card) bool {
	if len(cards) < 4 || len(cards)%2 != 0 {
		return false
	}

	counts := make(map[int]int)
	for _, c := range cards {
		counts[ts.Order(c)]++
	}

	orders := make([]int, 0, len(counts))
	for o, n := range counts {
		if n != 2 {
			return false
		}
		orders = append(orders, o)
	}
	slices.Sort(orders)

	for i := 1; i < len(orders); i++ {
		if orders[i]-orders[i-1] != 1 {
			return false
		}
	}
	return true
}

type groupKey struct {
	group trump.Group
	order int
}

type pairAt struct {
	order int
	cards []deck.Card
}

// decompose breaks cards into tractors, then pairs, then singles. Groups
// and suits are visited in first-seen order so the result is deterministic.
func decompose(ts trump.System, cards []deck.Card) [][]deck.Card {
	var keys []groupKey
	byKey := make(map[groupKey][]deck.Card)
	for _, c := range cards {
		k := groupKey{group: ts.Group(c), order: ts.Order(c)}
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], c)
	}

	var suits []trump.Group
	pairsBySuit := make(map[trump.Group][]pairAt)
	for _, k := range keys {
		cs := byKey[k]
		if len(cs) < 2 {
			continue
		}
		if _, ok := pairsBySuit[k.group]; !ok {
			suits = append(suits, k.group)
		}
		pairsBySuit[k.group] = append(pairsBySuit[k.group], pairAt{order: k.order, cards: cs[:2]})
	}

	var components [][]deck.Card
	used := make(map[deck.Card]bool)

	for _, g := range suits {
		pairs := pairsBySuit[g]
		slices.SortStableFunc(pairs, func(a, b pairAt) int { return a.order - b.order })

		orders := make([]int, len(pairs))
		for i, p := range pairs {
			orders[i] = p.order
		}

		for _, span := range runs(orders) {
			if span.len() < 2 {
				continue
			}
			var tractor []deck.Card
			for _, p := range pairs[span.start:span.end] {
				tractor = append(tractor, p.cards...)
				for _, c := range p.cards {
					used[c] = true
				}
			}
			components = append(components, tractor)
		}
	}

	for _, k := range keys {
		var unused []deck.Card
		for _, c := range byKey[k] {
			if !used[c] {
				unused = append(unused, c)
			}
		}
		if len(unused) == 2 {
			components = append(components, unused)
			used[unused[0]] = true
			used[unused[1]] = true
		}
	}

	for _, k := range keys {
		for _, c := range byKey[k] {
			if !used[c] {
				components = append(components, []deck.Card{c})
				used[c] = true
			}
		}
	}

	if len(components) == 0 {
		return [][]deck.Card{slices.Clone(cards)}
	}
	return components
}

// span is a half-open index range [start, end) into a sorted order list.
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// runs splits ascending orders into maximal stretches whose neighbours
// differ by exactly one. Every index belongs to exactly one span.
func runs(orders []int) []span {
	var out []span
	i := 0
	for i < len(orders) {
		j := i + 1
		for j < len(orders) && orders[j]-orders[j-1] == 1 {
			j++
		}
		out = append(out, span{start: i, end: j})
		i = j
	}
	return out
}
