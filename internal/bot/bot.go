// Package bot provides automated players for the engine: a random player
// and a heuristic player that mixes in random play at a configurable rate.
package bot

import (
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/tuolaji/internal/combo"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
)

const (
	// DefaultRandomRate is how often the heuristic bot plays randomly.
	DefaultRandomRate = 0.22

	// earlyDeal is the number of dealt cards during which single bids are
	// sometimes held back.
	earlyDeal          = 12
	earlySingleHold    = 0.4
	declarationHoldOff = 0.25
)

// Bot is the heuristic player. It satisfies game.Agent.
type Bot struct {
	rng        *rand.Rand
	logger     *log.Logger
	randomRate float64
	random     *RandBot
}

// Option configures a Bot
type Option func(*Bot)

// WithRandomRate sets the chance of a random play in place of the
// heuristic one. Default is DefaultRandomRate.
func WithRandomRate(rate float64) Option {
	return func(b *Bot) {
		b.randomRate = rate
	}
}

// NewBot creates a heuristic bot.
func NewBot(rng *rand.Rand, logger *log.Logger, opts ...Option) *Bot {
	if rng == nil {
		panic("rng is required for bot creation")
	}
	b := &Bot{
		rng:        rng,
		logger:     logger.WithPrefix("bot"),
		randomRate: DefaultRandomRate,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.random = NewRandBot(rng, logger)
	return b
}

// Declare bids the strongest declaration it holds, preferring pairs.
// Early in the deal it sometimes sits on a single, and it occasionally
// holds back entirely.
func (b *Bot) Declare(view game.DealView) []deck.Card {
	current := game.BidNone
	if view.Declaration != nil {
		current = view.Declaration.Strength
	}

	cards, strength := bestBid(view.Hand, view.TrumpRank, current)
	if cards == nil {
		return nil
	}
	if len(cards) == 1 && view.CardsDealt < earlyDeal && b.rng.Float64() < earlySingleHold {
		return nil
	}
	if b.rng.Float64() < declarationHoldOff {
		return nil
	}

	b.logger.Debug("Declaring", "seat", view.Seat, "cards", deck.Format(cards), "bid", game.BidName(strength))
	return cards
}

// Bury returns low non-trump cards without points first, then non-trump
// point cards, then the lowest trumps.
func (b *Bot) Bury(view game.KittyView) []deck.Card {
	ts := view.Trump
	var plain, points, trumps []deck.Card
	for _, c := range ts.SortAscending(view.Hand) {
		switch {
		case ts.IsTrump(c):
			trumps = append(trumps, c)
		case c.Points() > 0:
			points = append(points, c)
		default:
			plain = append(plain, c)
		}
	}

	// Ascending card order groups by suit; burial wants the lowest ranks
	// across suits.
	slices.SortStableFunc(plain, func(a, c deck.Card) int { return a.Rank.Index() - c.Rank.Index() })
	slices.SortStableFunc(points, func(a, c deck.Card) int { return a.Points() - c.Points() })

	bury := append(append(append([]deck.Card{}, plain...), points...), trumps...)
	bury = firstN(bury, game.KittySize)
	b.logger.Debug("Burying", "seat", view.Seat, "cards", deck.Format(bury), "points", deck.Points(bury))
	return bury
}

// Play chooses a lead or follow. With probability randomRate it plays
// like RandBot instead.
func (b *Bot) Play(view game.PlayView) []deck.Card {
	if b.rng.Float64() < b.randomRate {
		return b.random.Play(view)
	}

	var cards []deck.Card
	var reason string
	if view.IsLead() {
		cards, reason = b.lead(view)
	} else {
		cards, reason = b.follow(view)
	}
	b.logger.Debug("Playing", "seat", view.Seat, "cards", deck.Format(cards), "reason", reason)
	return cards
}

func (b *Bot) lead(view game.PlayView) ([]deck.Card, string) {
	ts := view.Trump
	if tractor := findTractor(ts, view.Hand); tractor != nil {
		return tractor, "tractor"
	}
	if pair := findPair(ts, view.Hand); pair != nil {
		return pair, "pair"
	}

	sorted := ts.SortHand(view.Hand)
	for _, c := range sorted {
		if !ts.IsTrump(c) {
			return []deck.Card{c}, "highest side card"
		}
	}
	return []deck.Card{sorted[len(sorted)-1]}, "lowest trump"
}

func (b *Bot) follow(view game.PlayView) ([]deck.Card, string) {
	ts := view.Trump
	t := view.Trick
	led := t.Led()
	n := led.Len()
	inSuit := ts.InGroup(view.Hand, led.Group())

	winning, _ := t.CurrentWinningPlay()
	partnerWinning := winning.Seat == game.Partner(view.Seat)

	var cards []deck.Card
	var reason string
	switch {
	case len(inSuit) > 0 && partnerWinning:
		cards, reason = firstN(sortByPoints(ts, inSuit), n), "points to partner"
	case len(inSuit) > 0 && n == 1:
		cards, reason = firstN(ts.SortAscending(inSuit), 1), "lowest"
		for _, c := range ts.SortAscending(inSuit) {
			if t.Beats([]deck.Card{c}, winning.Cards) {
				cards, reason = []deck.Card{c}, "lowest winner"
				break
			}
		}
	case len(inSuit) > 0:
		cards, reason = combo.BuildFollow(ts, led, view.Hand), "structured follow"
	case partnerWinning:
		cards, reason = firstN(sortByPoints(ts, view.Hand), n), "points to partner"
	default:
		var plain []deck.Card
		for _, c := range view.Hand {
			if c.Points() == 0 {
				plain = append(plain, c)
			}
		}
		if len(plain) < n {
			plain = view.Hand
		}
		cards, reason = firstN(ts.SortAscending(plain), n), "discard"
	}

	if err := combo.ValidateFollow(ts, cards, led, view.Hand); err != nil {
		return combo.BuildFollow(ts, led, view.Hand), "forced: " + err.Error()
	}
	return cards, reason
}
