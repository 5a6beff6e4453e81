package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/tuolaji/internal/combo"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/gameid"
	"github.com/lox/tuolaji/internal/trump"
)

// Engine drives rounds and matches through Agents. It shares the game loop
// between interactive play, the viewer and simulation.
type Engine struct {
	logger     *log.Logger
	eventBus   EventBus
	clock      quartz.Clock
	thinkDelay time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock sets the clock used for think delays. Default is the real clock.
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithThinkDelay pauses before every burial and play so a watcher can
// follow along. Default is no delay.
func WithThinkDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.thinkDelay = d
	}
}

// WithEventBus publishes to bus instead of a private bus.
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) {
		e.eventBus = bus
	}
}

// NewEngine creates a new engine.
func NewEngine(logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   logger.WithPrefix("engine"),
		eventBus: NewEventBus(),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventBus returns the event bus for subscribing to round events
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	RoundID   string
	Trump     trump.System
	Declarer  int
	Declared  bool
	Outcome   Outcome
	Scores    [2]int
	Tricks    int
	// KittyPoints is the kitty bonus awarded with the last trick
	KittyPoints int
	Fallbacks   int // agent answers the engine had to replace
}

// PlayRound runs r from its first deal to Scoring. It returns early with
// the context's error if ctx is cancelled; the round is then abandoned.
func (e *Engine) PlayRound(ctx context.Context, r *Round, agents [Players]Agent, roundID string) (*RoundResult, error) {
	if r.Phase() != Dealing || r.CardsDealt() > 0 {
		return nil, fmt.Errorf("round %s has already started", roundID)
	}
	for seat, a := range agents {
		if a == nil {
			return nil, fmt.Errorf("no agent for seat %d", seat)
		}
	}

	result := &RoundResult{RoundID: roundID}
	logger := e.logger.With("round", roundID)
	logger.Debug("Starting round", "trumpRank", r.TrumpRank(), "declarer", r.Declarer())

	if err := e.deal(ctx, r, agents, logger); err != nil {
		return nil, err
	}

	_, declared := r.Declaration()
	result.Trump, result.Declarer, result.Declared = r.Trump(), r.Declarer(), declared
	e.eventBus.Publish(NewDealingDoneEvent(r.Trump(), r.Declarer(), declared))
	logger.Debug("Dealing complete", "trump", r.Trump(), "declarer", r.Declarer(), "declared", declared)

	fallback, err := e.bury(ctx, r, agents[r.Declarer()], logger)
	if err != nil {
		return nil, err
	}
	if fallback {
		result.Fallbacks++
	}

	for r.Phase() == Playing {
		replaced, err := e.playTurn(ctx, r, agents[r.CurrentPlayer()], logger)
		if err != nil {
			return nil, err
		}
		if replaced {
			result.Fallbacks++
		}
	}

	result.Outcome = r.Outcome()
	result.Scores = r.Scores()
	result.Tricks = len(r.Tricks())
	result.KittyPoints = r.KittyPoints()

	e.eventBus.Publish(NewRoundEndEvent(roundID, result.Outcome, result.Scores, r.Kitty(), r.KittyPoints()))
	logger.Debug("Round complete",
		"attackerPoints", result.Outcome.AttackerPoints,
		"attackersWin", result.Outcome.AttackersWin,
		"levelDelta", result.Outcome.LevelDelta,
		"fallbacks", result.Fallbacks)
	return result, nil
}

func (e *Engine) deal(ctx context.Context, r *Round, agents [Players]Agent, logger *log.Logger) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		seat, _, ok := r.DealNext()
		if !ok {
			return nil
		}
		// The final card finalizes the declaration; nobody can bid on it.
		if r.Phase() != Dealing {
			return nil
		}

		view := DealView{
			Seat:       seat,
			Hand:       r.Hand(seat),
			TrumpRank:  r.TrumpRank(),
			Trump:      r.Trump(),
			CardsDealt: r.CardsDealt(),
		}
		if d, ok := r.Declaration(); ok {
			view.Declaration = &d
		}

		bid := agents[seat].Declare(view)
		if len(bid) == 0 {
			continue
		}
		if err := r.Declare(seat, bid); err != nil {
			logger.Debug("Declaration rejected", "seat", seat, "cards", deck.Format(bid), "error", err)
			continue
		}

		d, _ := r.Declaration()
		e.eventBus.Publish(NewTrumpDeclaredEvent(d, r.Trump(), r.CardsDealt()))
		logger.Debug("Trump declared", "seat", seat, "bid", d.Name(), "trump", r.Trump())
	}
}

func (e *Engine) bury(ctx context.Context, r *Round, agent Agent, logger *log.Logger) (fallback bool, err error) {
	if err := e.think(ctx); err != nil {
		return false, err
	}

	seat := r.Declarer()
	cards := agent.Bury(KittyView{Seat: seat, Hand: r.Hand(seat), Trump: r.Trump()})
	if err := r.BuryKitty(cards); err != nil {
		logger.Warn("Burial rejected, burying lowest cards", "seat", seat, "error", err)
		if err := r.BuryKitty(LowestCards(r.Trump(), r.Hand(seat), KittySize)); err != nil {
			return false, fmt.Errorf("fallback burial failed: %w", err)
		}
		fallback = true
	}

	e.eventBus.Publish(NewKittyBuriedEvent(seat, fallback))
	return fallback, nil
}

func (e *Engine) playTurn(ctx context.Context, r *Round, agent Agent, logger *log.Logger) (replaced bool, err error) {
	if err := e.think(ctx); err != nil {
		return false, err
	}

	seat := r.CurrentPlayer()
	t := r.CurrentTrick()
	lead := t.IsEmpty()

	cards := agent.Play(PlayView{
		Seat:          seat,
		Hand:          r.Hand(seat),
		Trump:         r.Trump(),
		Trick:         t.Clone(),
		Declarer:      r.Declarer(),
		DefendingTeam: r.DefendingTeam(),
		Scores:        r.Scores(),
		TricksPlayed:  len(r.Tricks()),
	})

	var reason string
	if err := r.CheckPlay(seat, cards); err != nil {
		reason = err.Error()
		logger.Warn("Play rejected, using fallback", "seat", seat, "cards", deck.Format(cards), "error", err)
		cards = FallbackPlay(r)
		replaced = true
	}

	number := len(r.Tricks()) + 1
	e.eventBus.Publish(NewCardsPlayedEvent(seat, cards, lead, replaced, reason))

	winner, complete := r.Play(seat, cards)
	if complete {
		finished := r.Tricks()[len(r.Tricks())-1]
		e.eventBus.Publish(NewTrickCompleteEvent(number, winner, finished.Points(), r.Scores()))
		logger.Debug("Trick complete", "trick", number, "winner", winner, "points", finished.Points())
	}
	return replaced, nil
}

// think waits out the configured delay on the engine's clock.
func (e *Engine) think(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.thinkDelay <= 0 {
		return nil
	}

	fired := make(chan struct{})
	timer := e.clock.AfterFunc(e.thinkDelay, func() {
		close(fired)
	})
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-fired:
		return nil
	}
}

// FallbackPlay is the engine's legal substitute for the current player:
// the strongest single card when leading, otherwise combo.BuildFollow.
func FallbackPlay(r *Round) []deck.Card {
	seat := r.CurrentPlayer()
	hand := r.Hand(seat)
	t := r.CurrentTrick()
	if t.IsEmpty() {
		return []deck.Card{r.Trump().Top(hand)}
	}
	return combo.BuildFollow(r.Trump(), t.Led(), hand)
}

// LowestCards returns the n weakest cards of hand by overall card order.
func LowestCards(ts trump.System, hand []deck.Card, n int) []deck.Card {
	sorted := ts.SortAscending(hand)
	return sorted[:min(n, len(sorted))]
}

// MatchResult contains the results of a sequence of rounds
type MatchResult struct {
	Rounds []*RoundResult
	Levels [2]deck.Rank
}

// PlayMatch plays rounds rounds of m with the same agents, applying each
// outcome to the match. Every round is shuffled from rng.
func (e *Engine) PlayMatch(ctx context.Context, m *Match, rng *rand.Rand, agents [Players]Agent, rounds int) (*MatchResult, error) {
	ids := gameid.NewGenerator(rng)
	result := &MatchResult{}

	for i := 0; i < rounds; i++ {
		r := m.NewRound(rng)
		id := ids.Generate()

		e.eventBus.Publish(NewRoundStartEvent(id, r.TrumpRank(), r.Declarer(), m.Levels))
		rr, err := e.PlayRound(ctx, r, agents, id)
		if err != nil {
			return result, fmt.Errorf("round %d: %w", i+1, err)
		}

		m.ApplyRound(r)
		result.Rounds = append(result.Rounds, rr)
		e.logger.Info("Round finished", "round", i+1, "summary", rr.Outcome.Summary(), "levels", fmt.Sprintf("%s/%s", m.Levels[0], m.Levels[1]))
	}

	result.Levels = m.Levels
	return result, nil
}
