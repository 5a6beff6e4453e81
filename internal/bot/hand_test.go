package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/game"
	"github.com/lox/tuolaji/internal/trump"
)

var spadesTwo = trump.New(deck.Spades, deck.Two)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func TestFindTractor(t *testing.T) {
	tests := []struct {
		name string
		ts   trump.System
		hand string
		want string
	}{
		{"simple", spadesTwo, "9c 9c' 10c 10c' 3d As", "10c 10c' 9c 9c'"},
		{"longest run", spadesTwo, "3c 3c' 4c 4c' Jh Jh' Qh Qh' Kh Kh'", "Kh Kh' Qh Qh' Jh Jh'"},
		{"side suit before trump", spadesTwo, "3s 3s' 4s 4s' 7d 7d' 8d 8d'", "8d 8d' 7d 7d'"},
		{"gap at trump rank", trump.New(deck.Hearts, deck.Five), "4h 4h' 6h 6h'", ""},
		{"no pairs", spadesTwo, "3c 4c 5c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findTractor(tt.ts, cards(tt.hand))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, cards(tt.want), got)
		})
	}
}

func TestFindPair(t *testing.T) {
	assert.ElementsMatch(t, cards("Kd Kd'"), findPair(spadesTwo, cards("Kd Kd' 3s 3s' 7h 7h'")))
	assert.ElementsMatch(t, cards("BJ BJ'"), findPair(spadesTwo, cards("3s 3s' BJ BJ' 4c")))
	assert.Nil(t, findPair(spadesTwo, cards("Kd 7h")))
}

func TestBestBid(t *testing.T) {
	tests := []struct {
		name     string
		hand     string
		current  int
		want     string
		strength int
	}{
		{"pair over single", "5h 5h' 5s 3c", game.BidNone, "5h 5h'", game.BidPair},
		{"joker beats pair", "5h 5h' 5s SJ", game.BidPair, "SJ", game.BidSmallJoker},
		{"strongest overall", "SJ SJ' BJ", game.BidNone, "BJ", game.BidBigJoker},
		{"nothing stronger", "5h 5h'", game.BidBigJoker, "", game.BidBigJoker},
		{"no trump rank", "3c 4d", game.BidNone, "", game.BidNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strength := bestBid(cards(tt.hand), deck.Five, tt.current)
			assert.Equal(t, tt.strength, strength)
			if tt.want == "" {
				assert.Nil(t, got)
			} else {
				assert.Equal(t, cards(tt.want), got)
			}
		})
	}
}

func TestSortByPoints(t *testing.T) {
	assert.Equal(t, cards("10h Kh 5h 3h"), sortByPoints(spadesTwo, cards("3h Kh 5h 10h")))
}
