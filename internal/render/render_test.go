package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/trick"
	"github.com/lox/tuolaji/internal/trump"
)

var spadesTwo = trump.New(deck.Spades, deck.Two)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func TestCardsPlain(t *testing.T) {
	r := Plain(nil)

	assert.Equal(t, "♥A", r.Card(spadesTwo, cards("Ah")[0]))
	assert.Equal(t, "BJ ♠3 ♣10", r.Cards(spadesTwo, cards("BJ 3s 10c")))
	assert.Equal(t, "-", r.Cards(spadesTwo, nil))
}

func TestHandGroupsStrongestFirst(t *testing.T) {
	r := Plain(nil)

	got := r.Hand(spadesTwo, cards("3h 2c As Kh BJ 4d"))
	assert.Equal(t, "trump: BJ ♣2 ♠A | ♥: ♥K ♥3 | ♦: ♦4", got)
	assert.Equal(t, "(empty)", r.Hand(spadesTwo, nil))
}

func TestTrickMarksWinner(t *testing.T) {
	r := Plain([]string{"north", "east", "south", "west"})

	tr := trick.New(spadesTwo, 1, game.Players)
	assert.Equal(t, "(no cards played)", r.Trick(tr))

	tr.Play(1, cards("Kh"))
	tr.Play(2, cards("3s"))
	out := r.Trick(tr)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "east:    ♥K", lines[0])
	assert.Equal(t, "south:   ♠3 *", lines[1])

	tr.Play(3, cards("Ah"))
	tr.Play(0, cards("10h"))
	assert.True(t, strings.HasSuffix(r.Trick(tr), "20 points"))
}

func TestRoundRendersEveryPhase(t *testing.T) {
	r := Plain(nil)
	rd := game.NewTestRound(game.WithSeed(5))

	out := r.Round(rd)
	assert.Contains(t, out, "dealing | trump ♠2")
	assert.Contains(t, out, "nobody has declared")

	game.DealAll(rd)
	require.NoError(t, rd.BuryKitty(game.LowestCards(rd.Trump(), rd.Hand(rd.Declarer()), game.KittySize)))
	out = r.Round(rd)
	assert.Contains(t, out, "playing")
	assert.Contains(t, out, "Trick 1")
	assert.Contains(t, out, "> Seat 0:")

	game.PlayOut(rd)
	out = r.Round(rd)
	assert.Contains(t, out, "scoring")
	assert.Contains(t, out, "Last trick (25)")
	assert.Contains(t, out, "Kitty:")
	assert.Contains(t, out, rd.Outcome().Summary())
}

func TestEventUsesSeatNames(t *testing.T) {
	r := Plain([]string{"north", "east", "south", "west"})

	line := r.Event(game.NewCardsPlayedEvent(2, cards("As"), true, false, ""))
	assert.Equal(t, "south: leads ♠A", line)

	line = r.Event(game.NewKittyBuriedEvent(3, true))
	assert.Equal(t, "west: kitty buried automatically", line)
}

func TestColourProfile(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithProfile(&buf, termenv.TrueColor, nil)

	out := r.Card(spadesTwo, cards("Ah")[0])
	assert.Contains(t, out, "♥A")
	assert.Contains(t, out, "\x1b[", "true colour output is styled")
}
