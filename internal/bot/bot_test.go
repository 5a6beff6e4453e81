package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/combo"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/randutil"
	"github.com/lox/tuolaji/internal/trick"
	"github.com/lox/tuolaji/internal/trump"
)

func newTestBot(seed int64, opts ...Option) *Bot {
	return NewBot(randutil.New(seed), log.New(io.Discard), opts...)
}

// playView builds the view for the seat after the given plays, starting
// from leader.
func playView(ts trump.System, leader int, hand string, plays ...string) game.PlayView {
	t := trick.New(ts, leader, game.Players)
	for _, p := range plays {
		t.Play(t.NextSeat(), cards(p))
	}
	return game.PlayView{
		Seat:  t.NextSeat(),
		Hand:  cards(hand),
		Trump: ts,
		Trick: t,
	}
}

func TestBotLead(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want string
	}{
		{"tractor first", "9c 9c' 10c 10c' Kd Kd' As", "10c 10c' 9c 9c'"},
		{"side pair over trump pair", "Kd Kd' 3s 3s' 7h", "Kd Kd'"},
		{"highest side single", "Ah 3c 2d 5s", "Ah"},
		{"lowest trump", "BJ 2s 3s", "3s"},
	}

	b := newTestBot(1, WithRandomRate(0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := playView(spadesTwo, 0, tt.hand)
			assert.ElementsMatch(t, cards(tt.want), b.Play(view))
		})
	}
}

func TestBotFollow(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		plays []string
		want  string
	}{
		{"points to winning partner", "Kh 4h 10c", []string{"Ah", "3h"}, "Kh"},
		{"lowest card that wins", "Ah Kh 3h 5c", []string{"Qh"}, "Kh"},
		{"lowest when beaten", "3h 4h Jh", []string{"Qh"}, "3h"},
		{"discard without points", "Kc 3d 5c", []string{"Qh"}, "3d"},
		{"follows a pair with a pair", "3h 3h' Ah 7c", []string{"Qh Qh'"}, "3h 3h'"},
		{"side points to partner", "Kc 3d 10s", []string{"Ah", "3h"}, "Kc"},
	}

	b := newTestBot(1, WithRandomRate(0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := playView(spadesTwo, 0, tt.hand, tt.plays...)
			got := b.Play(view)
			assert.ElementsMatch(t, cards(tt.want), got)
			assert.NoError(t, checkFollow(view, got))
		})
	}
}

func checkFollow(view game.PlayView, played []deck.Card) error {
	return combo.ValidateFollow(view.Trump, played, view.Trick.Led(), view.Hand)
}

func TestBotBury(t *testing.T) {
	b := newTestBot(1)
	hand := cards("3c 4d 5c Kd 10h 7h As 2h BJ 9c Jd 6c")
	got := b.Bury(game.KittyView{Seat: 0, Hand: hand, Trump: spadesTwo})
	assert.Equal(t, cards("3c 4d 6c 7h 9c Jd 5c Kd"), got)
}

func TestBotBuryReachesForTrump(t *testing.T) {
	b := newTestBot(1)
	hand := cards("3c Kd 10h As 2h BJ 3s 4s 5s Qs")
	got := b.Bury(game.KittyView{Seat: 0, Hand: hand, Trump: spadesTwo})
	require.Len(t, got, game.KittySize)
	assert.Equal(t, cards("3c Kd 10h 3s 4s 5s Qs As"), got)
}

func TestBotDeclare(t *testing.T) {
	view := game.DealView{Seat: 1, Hand: cards("5h 5h' 3c"), TrumpRank: deck.Five, CardsDealt: 40}

	declared := 0
	for seed := int64(0); seed < 200; seed++ {
		got := newTestBot(seed).Declare(view)
		if got != nil {
			assert.Equal(t, cards("5h 5h'"), got)
			declared++
		}
	}
	assert.Greater(t, declared, 100, "most chances are taken")
	assert.Less(t, declared, 200, "some are held back")

	view.Declaration = &game.Declaration{Seat: 0, Cards: cards("BJ"), Strength: game.BidBigJoker}
	for seed := int64(0); seed < 20; seed++ {
		assert.Nil(t, newTestBot(seed).Declare(view))
	}
}

func TestHeuristicBotsNeverNeedFallbacks(t *testing.T) {
	engine := game.NewEngine(log.New(io.Discard))

	for seed := int64(1); seed <= 10; seed++ {
		rng := randutil.New(seed)
		var agents [game.Players]game.Agent
		for i := range agents {
			agents[i] = NewBot(rng, log.New(io.Discard), WithRandomRate(0))
		}

		r := game.NewTestRound(game.WithSeed(seed))
		result, err := engine.PlayRound(context.Background(), r, agents, "test")
		require.NoError(t, err)
		assert.Zero(t, result.Fallbacks, "seed %d", seed)
		assert.Equal(t, game.Scoring, r.Phase())
	}
}

func TestRandomBotsFinishRounds(t *testing.T) {
	engine := game.NewEngine(log.New(io.Discard))
	rng := randutil.New(3)

	var agents [game.Players]game.Agent
	for i := range agents {
		agents[i] = NewRandBot(rng, log.New(io.Discard))
	}

	r := game.NewTestRound(game.WithSeed(3))
	result, err := engine.PlayRound(context.Background(), r, agents, "test")
	require.NoError(t, err)
	assert.Equal(t, game.Scoring, r.Phase())
	assert.Equal(t, 200, result.Scores[0]+result.Scores[1])
}

func TestStrategy(t *testing.T) {
	s, err := ParseStrategy("random")
	require.NoError(t, err)
	assert.Equal(t, Random, s)

	_, err = ParseStrategy("psychic")
	assert.ErrorContains(t, err, "unknown strategy")

	a, err := New(Heuristic, randutil.New(1), log.New(io.Discard), 0.5)
	require.NoError(t, err)
	assert.IsType(t, &Bot{}, a)
}
