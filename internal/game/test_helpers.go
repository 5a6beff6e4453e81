package game

import (
	"fmt"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/randutil"
)

// TestRoundOption configures test round creation
type TestRoundOption func(*testRoundBuilder)

type testRoundBuilder struct {
	seed  int64
	opts  []RoundOption
	hands [Players][]deck.Card
	kitty []deck.Card
}

// Test round options
func WithSeed(seed int64) TestRoundOption {
	return func(b *testRoundBuilder) { b.seed = seed }
}

func WithOptions(opts ...RoundOption) TestRoundOption {
	return func(b *testRoundBuilder) { b.opts = append(b.opts, opts...) }
}

// WithHand makes cards the first cards dealt to seat, in order.
func WithHand(seat int, cards ...deck.Card) TestRoundOption {
	return func(b *testRoundBuilder) { b.hands[seat] = append(b.hands[seat], cards...) }
}

// WithKitty puts cards in the kitty.
func WithKitty(cards ...deck.Card) TestRoundOption {
	return func(b *testRoundBuilder) { b.kitty = append(b.kitty, cards...) }
}

// NewTestRound creates a round for testing with sensible defaults: seed 42,
// trump rank Two, seat 0 holding the kitty. Any cards fixed with WithHand or
// WithKitty are placed first and the rest of the pool is shuffled around
// them.
func NewTestRound(opts ...TestRoundOption) *Round {
	b := &testRoundBuilder{seed: 42}
	for _, opt := range opts {
		opt(b)
	}

	rng := randutil.New(b.seed)
	pool := StackedPool(deck.NewDoubleDeck(rng).Cards(), b.hands, b.kitty)
	return NewRound(rng, append([]RoundOption{WithCards(pool)}, b.opts...)...)
}

// StackedPool arranges source into a deal order that gives each seat its
// fixed cards first and puts kitty last. Remaining cards fill the gaps in
// source order.
func StackedPool(source []deck.Card, hands [Players][]deck.Card, kitty []deck.Card) []deck.Card {
	rest := source
	for _, fixed := range append(hands[:], kitty) {
		var ok bool
		if rest, ok = deck.Remove(rest, fixed); !ok {
			panic(fmt.Sprintf("stacked cards %s are not all available", deck.Format(fixed)))
		}
	}
	if len(kitty) > KittySize {
		panic("too many kitty cards")
	}

	var dealt [Players][]deck.Card
	for seat, fixed := range hands {
		if len(fixed) > CardsPerPlayer {
			panic(fmt.Sprintf("too many cards for seat %d", seat))
		}
		need := CardsPerPlayer - len(fixed)
		dealt[seat] = append(append([]deck.Card{}, fixed...), rest[:need]...)
		rest = rest[need:]
	}

	pool := make([]deck.Card, 0, deck.DoubleDeckSize)
	for i := 0; i < CardsPerPlayer; i++ {
		for seat := range dealt {
			pool = append(pool, dealt[seat][i])
		}
	}
	pool = append(pool, kitty...)
	return append(pool, rest...)
}

// DealAll deals every remaining card without declarations.
func DealAll(r *Round) {
	for {
		if _, _, ok := r.DealNext(); !ok {
			return
		}
	}
}

// PlayOut finishes a round from any phase using the engine's fallbacks.
func PlayOut(r *Round) {
	DealAll(r)
	if r.Phase() == Kitty {
		if err := r.BuryKitty(LowestCards(r.Trump(), r.Hand(r.Declarer()), KittySize)); err != nil {
			panic(err)
		}
	}
	for r.Phase() == Playing {
		r.Play(r.CurrentPlayer(), FallbackPlay(r))
	}
}
