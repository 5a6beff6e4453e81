package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
)

// randDeclareRate is how often RandBot declares when it can.
const randDeclareRate = 0.1

// RandBot plays random cards. Its follows ignore combination structure, so
// the engine replaces the illegal ones.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

func (r *RandBot) Declare(view game.DealView) []deck.Card {
	current := game.BidNone
	if view.Declaration != nil {
		current = view.Declaration.Strength
	}
	cards, _ := bestBid(view.Hand, view.TrumpRank, current)
	if cards == nil || r.rng.Float64() >= randDeclareRate {
		return nil
	}
	return cards
}

func (r *RandBot) Bury(view game.KittyView) []deck.Card {
	return r.sample(view.Hand, game.KittySize)
}

// Play leads a random single, or follows with random cards of the led suit
// when it has any.
func (r *RandBot) Play(view game.PlayView) []deck.Card {
	if view.IsLead() {
		return r.sample(view.Hand, 1)
	}

	led := view.Trick.Led()
	pool := view.Trump.InGroup(view.Hand, led.Group())
	if len(pool) == 0 {
		pool = view.Hand
	}
	cards := r.sample(pool, led.Len())
	r.logger.Debug("Random follow", "seat", view.Seat, "cards", deck.Format(cards))
	return cards
}

func (r *RandBot) sample(cards []deck.Card, n int) []deck.Card {
	shuffled := make([]deck.Card, len(cards))
	copy(shuffled, cards)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return firstN(shuffled, n)
}
