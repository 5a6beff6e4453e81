package deck

import (
	rand "math/rand/v2"
)

const (
	// SingleDeckSize is 4 suits x 13 ranks plus two jokers.
	SingleDeckSize = 54
	// DoubleDeckSize is the size of the pool dealt each round.
	DoubleDeckSize = 2 * SingleDeckSize
)

// Deck represents an ordered pool of cards dealt from the top
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDoubleDeck creates the 108-card pool (two copies of a 54-card deck,
// tagged with copy ids 0 and 1) and shuffles it once as a single pool.
func NewDoubleDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{
		cards: DoubleDeck(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// NewDeckFromCards creates a deck that deals cards in exactly the given
// order. Used for deterministic testing.
func NewDeckFromCards(cards []Card) *Deck {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Deck{cards: c}
}

// SingleDeck returns the 54 cards of one deck in canonical order.
func SingleDeck(copyID uint8) []Card {
	cards := make([]Card, 0, SingleDeckSize)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank, Copy: copyID})
		}
	}
	cards = append(cards, NewJoker(SmallJoker, copyID), NewJoker(BigJoker, copyID))
	return cards
}

// DoubleDeck returns the unshuffled 108 cards of two decks.
func DoubleDeck() []Card {
	cards := make([]Card, 0, DoubleDeckSize)
	cards = append(cards, SingleDeck(0)...)
	cards = append(cards, SingleDeck(1)...)
	return cards
}

// Shuffle randomizes the order of cards in the deck (Fisher-Yates)
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the undealt cards in deal order.
func (d *Deck) Cards() []Card {
	c := make([]Card, len(d.cards))
	copy(c, d.cards)
	return c
}
