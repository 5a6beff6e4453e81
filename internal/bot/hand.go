package bot

import (
	"cmp"
	"slices"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/trump"
)

// pair is two cards of one group with equal order.
type pair struct {
	group trump.Group
	order int
	cards [2]deck.Card
}

// findPairs returns one pair per (group, order) present in hand, sorted by
// group then order ascending.
func findPairs(ts trump.System, hand []deck.Card) []pair {
	type key struct {
		group trump.Group
		order int
	}
	seen := make(map[key][]deck.Card)
	for _, c := range hand {
		k := key{ts.Group(c), ts.Order(c)}
		seen[k] = append(seen[k], c)
	}

	var pairs []pair
	for k, cs := range seen {
		if len(cs) >= 2 {
			pairs = append(pairs, pair{group: k.group, order: k.order, cards: [2]deck.Card{cs[0], cs[1]}})
		}
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		return cmp.Or(cmp.Compare(a.group, b.group), cmp.Compare(a.order, b.order))
	})
	return pairs
}

// findTractor returns the longest run of consecutive pairs in hand, or nil.
// Ties go to non-trump runs, then to the higher run.
func findTractor(ts trump.System, hand []deck.Card) []deck.Card {
	pairs := findPairs(ts, hand)

	var best []pair
	better := func(run []pair) bool {
		if len(run) != len(best) {
			return len(run) > len(best)
		}
		if (run[0].group == trump.Trump) != (best[0].group == trump.Trump) {
			return best[0].group == trump.Trump
		}
		return run[len(run)-1].order > best[len(best)-1].order
	}

	start := 0
	for i := 1; i <= len(pairs); i++ {
		if i < len(pairs) && pairs[i].group == pairs[i-1].group && pairs[i].order == pairs[i-1].order+1 {
			continue
		}
		if run := pairs[start:i]; len(run) >= 2 && better(run) {
			best = run
		}
		start = i
	}

	if best == nil {
		return nil
	}
	var cards []deck.Card
	for i := len(best) - 1; i >= 0; i-- {
		cards = append(cards, best[i].cards[:]...)
	}
	return cards
}

// findPair returns the highest non-trump pair in hand, or the highest trump
// pair if there is no other, or nil.
func findPair(ts trump.System, hand []deck.Card) []deck.Card {
	var best *pair
	for _, p := range findPairs(ts, hand) {
		switch {
		case best == nil:
		case (p.group == trump.Trump) != (best.group == trump.Trump):
			if p.group == trump.Trump {
				continue
			}
		case p.order < best.order:
			continue
		}
		best = &p
	}
	if best == nil {
		return nil
	}
	return best.cards[:]
}

// bestBid returns the strongest declaration in hand that beats current, or
// nil.
func bestBid(hand []deck.Card, trumpRank deck.Rank, current int) (cards []deck.Card, strength int) {
	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range hand {
		if c.Rank == trumpRank || c.IsJoker() {
			bySuit[c.Suit] = append(bySuit[c.Suit], c)
		}
	}

	strength = current
	for _, suit := range []deck.Suit{deck.Clubs, deck.Diamonds, deck.Hearts, deck.Spades, deck.SmallJoker, deck.BigJoker} {
		cs := bySuit[suit]
		for n := min(2, len(cs)); n > 0; n-- {
			if s := game.BidStrength(cs[:n], trumpRank); s > strength {
				cards, strength = cs[:n], s
			}
		}
	}
	return slices.Clone(cards), strength
}

// sortByPoints returns cards with the highest point values first, breaking
// ties with the weaker card first.
func sortByPoints(ts trump.System, cards []deck.Card) []deck.Card {
	sorted := ts.SortAscending(cards)
	slices.SortStableFunc(sorted, func(a, b deck.Card) int {
		return b.Points() - a.Points()
	})
	return sorted
}

func firstN(cards []deck.Card, n int) []deck.Card {
	return slices.Clone(cards[:min(n, len(cards))])
}
