package trick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trump"
)

var heartsFive = trump.New(deck.Hearts, deck.Five)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

// playAll plays one hand per seat in rotation starting from leader.
func playAll(t *testing.T, tr *Trick, hands ...string) {
	t.Helper()
	for _, h := range hands {
		tr.Play(tr.NextSeat(), cards(h))
	}
}

func TestTrumpSingleWinsKingLead(t *testing.T) {
	tests := []struct {
		name   string
		leader int
		plays  []string
		winner int
	}{
		{"trump after higher led card", 0, []string{"Ks", "As", "2h", "3d"}, 2},
		{"trump played second", 0, []string{"Ks", "2h", "As", "3d"}, 1},
		{"higher trump later", 0, []string{"Ks", "2h", "As", "BJ"}, 3},
		{"lower trump later", 0, []string{"Ks", "SJ", "2h", "As"}, 1},
		{"discard never wins", 1, []string{"Ks", "Ad", "Ac", "Qs"}, 1},
		{"higher led card without trump", 2, []string{"Ks", "3d", "As", "Qs"}, 0},
		{"equal copy does not dethrone", 0, []string{"Ks", "Ks'", "3d", "4d"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(heartsFive, tt.leader, 4)
			playAll(t, tr, tt.plays...)
			require.True(t, tr.IsComplete())
			assert.Equal(t, tt.winner, tr.Winner())
		})
	}
}

func TestPairSlots(t *testing.T) {
	tests := []struct {
		name   string
		plays  []string
		winner int
	}{
		{"higher pair wins", []string{"9s 9s'", "Qs Qs'", "3s 4s", "2c 3c"}, 1},
		{"two singles cannot beat a pair", []string{"9s 9s'", "As Ks", "3s 4s", "2c 3c"}, 0},
		{"trump pair beats led pair", []string{"As As'", "2h 2h'", "3s 4s", "2c 3c"}, 1},
		{"trump singles cannot beat a pair", []string{"9s 9s'", "2h 3h", "3s 4s", "2c 3c"}, 0},
		{"higher trump pair over trump pair", []string{"As As'", "2h 2h'", "SJ SJ'", "2c 3c"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(heartsFive, 0, 4)
			playAll(t, tr, tt.plays...)
			assert.Equal(t, tt.winner, tr.Winner())
		})
	}
}

func TestTractorSlots(t *testing.T) {
	tr := New(heartsFive, 0, 4)
	playAll(t, tr,
		"9s 9s' 10s 10s'",
		"Qs Qs' Ks Ks'",
		"2h 2h' 3h 3h'",
		"Jh Jh' As As'",
	)
	// A trump tractor beats a higher led-suit tractor; two unrelated pairs do not.
	assert.Equal(t, 2, tr.Winner())
}

func TestMultiLeadMustWinEverySlot(t *testing.T) {
	tr := New(heartsFive, 0, 4)
	playAll(t, tr,
		"As As' 3s",
		"3h 3h' 2h", // wins both slots with trump
		"SJ SJ' 3c", // stronger pair, but the off-suit single cannot beat 2h
		"2c 3c 4c",
	)
	assert.Equal(t, []int{2, 1}, tr.Template())
	assert.Equal(t, 1, tr.Winner())
}

func TestCurrentWinner(t *testing.T) {
	tr := New(heartsFive, 3, 4)

	_, ok := tr.CurrentWinner()
	assert.False(t, ok)

	tr.Play(3, cards("Ks"))
	seat, ok := tr.CurrentWinner()
	require.True(t, ok)
	assert.Equal(t, 3, seat)

	tr.Play(0, cards("2h"))
	seat, _ = tr.CurrentWinner()
	assert.Equal(t, 0, seat)

	play, ok := tr.CurrentWinningPlay()
	require.True(t, ok)
	assert.Equal(t, cards("2h"), play.Cards)
	assert.False(t, tr.IsComplete())
	assert.Panics(t, func() { tr.Winner() })
}

func TestPoints(t *testing.T) {
	tr := New(heartsFive, 0, 4)
	playAll(t, tr, "Ks", "5s", "10h", "2d")
	assert.Equal(t, 25, tr.Points())
	assert.Len(t, tr.Cards(), 4)
}

func TestPlayOutOfTurnPanics(t *testing.T) {
	tr := New(heartsFive, 2, 4)
	assert.Panics(t, func() { tr.Play(0, cards("As")) })
	tr.Play(2, cards("As"))
	assert.Equal(t, 3, tr.NextSeat())
	assert.Equal(t, 2, tr.Leader())
}
