package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/tuolaji/internal/deck"
)

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

// roundConfig holds all configuration for creating a round.
type roundConfig struct {
	rng *rand.Rand

	trumpRank   deck.Rank   // Default: Two
	declarer    int         // Default: 0
	defaultSuit deck.Suit   // Default: Spades
	cards       []deck.Card // If provided, dealt in this order instead of shuffling
}

// NewRound creates a round ready to deal. The RNG is required to make the
// shuffle explicit and testing deterministic.
//
// Example usage:
//
//	// Production - time-seeded RNG
//	rng, seed := randutil.NewFromTime()
//	r := NewRound(rng, WithTrumpRank(deck.Five), WithDeclarer(2))
//
//	// Testing - fixed deal order
//	r := NewRound(randutil.New(1), WithCards(cards))
func NewRound(rng *rand.Rand, opts ...RoundOption) *Round {
	if rng == nil {
		panic("rng is required for round creation")
	}

	cfg := &roundConfig{
		rng:         rng,
		trumpRank:   deck.Two,
		defaultSuit: deck.Spades,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.trumpRank.Valid() {
		panic(fmt.Sprintf("invalid trump rank %d", cfg.trumpRank))
	}
	if cfg.declarer < 0 || cfg.declarer >= Players {
		panic("declarer seat out of range")
	}
	if cfg.defaultSuit < deck.Clubs || cfg.defaultSuit > deck.Spades {
		panic("default trump suit must be an ordinary suit")
	}

	var pool []deck.Card
	if cfg.cards != nil {
		if err := checkPool(cfg.cards); err != nil {
			panic(err.Error())
		}
		pool = deck.NewDeckFromCards(cfg.cards).Cards()
	} else {
		pool = deck.NewDoubleDeck(cfg.rng).Cards()
	}

	return newRound(pool, cfg)
}

// WithTrumpRank sets the round's trump rank, normally the defending team's
// level. Default is Two.
func WithTrumpRank(rank deck.Rank) RoundOption {
	return func(c *roundConfig) {
		c.trumpRank = rank
	}
}

// WithDeclarer sets the seat that buries the kitty if nobody declares.
// Default is seat 0.
func WithDeclarer(seat int) RoundOption {
	return func(c *roundConfig) {
		c.declarer = seat
	}
}

// WithDefaultSuit sets the trump suit used until a declaration names one.
// Default is Spades.
func WithDefaultSuit(suit deck.Suit) RoundOption {
	return func(c *roundConfig) {
		c.defaultSuit = suit
	}
}

// WithCards deals exactly the given 108 cards in order; the last eight are
// the kitty. This overrides the RNG shuffle.
func WithCards(cards []deck.Card) RoundOption {
	return func(c *roundConfig) {
		c.cards = cards
	}
}

func checkPool(cards []deck.Card) error {
	if len(cards) != deck.DoubleDeckSize {
		return fmt.Errorf("a round needs %d cards, got %d", deck.DoubleDeckSize, len(cards))
	}
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("card %s appears twice", c.Code())
		}
		seen[c] = true
	}
	return nil
}
