package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The four ordinary suits are listed in the
// canonical rotation used wherever a fixed suit order is needed; the two
// joker sentinels follow them.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
	SmallJoker
	BigJoker
)

// Suits lists the four ordinary suits in canonical order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case SmallJoker:
		return "SJ"
	case BigJoker:
		return "BJ"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// IsJoker reports whether s is one of the joker sentinels.
func (s Suit) IsJoker() bool {
	return s == SmallJoker || s == BigJoker
}

// Rank represents a card rank. Jokers carry NoRank.
type Rank int

const (
	NoRank Rank = 0
	Two    Rank = iota + 1
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is one of the thirteen ordinary ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Index returns the zero-based position of r in the rank sequence (2 -> 0, A -> 12).
func (r Rank) Index() int {
	return int(r - Two)
}

// Card represents one physical playing card. Copy distinguishes the two
// otherwise identical cards of a double deck, so the full triple is the
// card's identity and two copies never compare equal.
type Card struct {
	Suit Suit
	Rank Rank
	Copy uint8
}

// NewCard creates a new card from the first deck copy
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// NewJoker creates a joker of the given kind.
func NewJoker(kind Suit, copyID uint8) Card {
	return Card{Suit: kind, Copy: copyID}
}

// String returns the display form of a card (e.g., "♠A", "SJ")
func (c Card) String() string {
	if c.IsJoker() {
		return c.Suit.String()
	}
	return fmt.Sprintf("%s%s", c.Suit, c.Rank)
}

// Code returns the ASCII notation accepted by ParseCard, including the copy
// marker (e.g., "As", "10h'", "BJ").
func (c Card) Code() string {
	var b strings.Builder
	switch c.Suit {
	case SmallJoker:
		b.WriteString("SJ")
	case BigJoker:
		b.WriteString("BJ")
	default:
		b.WriteString(c.Rank.String())
		b.WriteByte(suitLetters[c.Suit])
	}
	if c.Copy > 0 {
		b.WriteByte('\'')
	}
	return b.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed() || c.Suit == BigJoker
}

// IsJoker returns true for either joker
func (c Card) IsJoker() bool {
	return c.Suit.IsJoker()
}

// Points returns the scoring value of the card: 5s are worth 5, 10s and Ks
// are worth 10, everything else is worth nothing.
func (c Card) Points() int {
	switch c.Rank {
	case Five:
		return 5
	case Ten, King:
		return 10
	default:
		return 0
	}
}

// Points sums the scoring value of cards.
func Points(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

var suitLetters = map[Suit]byte{Clubs: 'c', Diamonds: 'd', Hearts: 'h', Spades: 's'}

// ParseCard parses a single card in Code notation: rank then suit letter
// ("As", "10h", "Td"), or "SJ"/"BJ" for jokers, with an optional trailing
// apostrophe selecting the second deck copy.
func ParseCard(s string) (Card, error) {
	var copyID uint8
	body := s
	if strings.HasSuffix(body, "'") {
		copyID = 1
		body = strings.TrimSuffix(body, "'")
	}

	switch strings.ToUpper(body) {
	case "SJ":
		return NewJoker(SmallJoker, copyID), nil
	case "BJ":
		return NewJoker(BigJoker, copyID), nil
	}

	if len(body) < 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	rank, err := parseRank(body[:len(body)-1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}

	var suit Suit
	switch body[len(body)-1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, body[len(body)-1])
	}

	return Card{Suit: suit, Rank: rank, Copy: copyID}, nil
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	return NoRank, fmt.Errorf("unknown rank %q", s)
}

// ParseRank parses a rank name such as "2", "10" or "K".
func ParseRank(s string) (Rank, error) {
	return parseRank(s)
}

// ParseCards parses whitespace separated cards, e.g. "As As' 10h SJ".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals known to be valid; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// Contains reports whether cards holds c (by physical identity).
func Contains(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// Remove returns cards without the given cards, matching each by physical
// identity. ok is false if any card was not present; cards is then returned
// unchanged.
func Remove(cards []Card, remove []Card) (rest []Card, ok bool) {
	rest = make([]Card, len(cards))
	copy(rest, cards)
	for _, r := range remove {
		idx := -1
		for i, x := range rest {
			if x == r {
				idx = i
				break
			}
		}
		if idx < 0 {
			return cards, false
		}
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return rest, true
}

// Format renders cards as a space separated list.
func Format(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
