package game

import (
	"fmt"
	"slices"

	"github.com/lox/tuolaji/internal/combo"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trick"
	"github.com/lox/tuolaji/internal/trump"
)

const (
	// Players is the fixed table size. Seats 0 and 2 form team 0, seats 1
	// and 3 form team 1.
	Players = 4
	// KittySize is the number of cards set aside for the declarer.
	KittySize = 8
	// CardsPerPlayer is the size of each dealt hand.
	CardsPerPlayer = (deck.DoubleDeckSize - KittySize) / Players
)

// Phase is a stage of the round state machine.
type Phase int

const (
	Dealing Phase = iota
	Kitty
	Playing
	Scoring
)

func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case Kitty:
		return "kitty"
	case Playing:
		return "playing"
	case Scoring:
		return "scoring"
	default:
		return "unknown"
	}
}

// TeamOf returns the team of seat.
func TeamOf(seat int) int {
	return seat % 2
}

// Partner returns the other seat of seat's team.
func Partner(seat int) int {
	return (seat + 2) % Players
}

// Round is the state of one round. It is not safe for concurrent use; a
// driver applies one operation at a time.
type Round struct {
	trumpRank deck.Rank
	trump     trump.System
	phase     Phase

	undealt []deck.Card
	hands   [Players][]deck.Card
	kitty   []deck.Card
	played  int

	declaration *Declaration
	declarer    int

	current int
	trick   *trick.Trick
	tricks  []*trick.Trick
	scores  [2]int

	kittyPoints int
	lastWinner  int
}

func newRound(pool []deck.Card, cfg *roundConfig) *Round {
	dealt := len(pool) - KittySize
	r := &Round{
		trumpRank: cfg.trumpRank,
		trump:     trump.New(cfg.defaultSuit, cfg.trumpRank),
		phase:     Dealing,
		undealt:   slices.Clone(pool[:dealt]),
		kitty:     slices.Clone(pool[dealt:]),
		declarer:  cfg.declarer,
	}
	for i := range r.hands {
		r.hands[i] = make([]deck.Card, 0, CardsPerPlayer+KittySize)
	}
	r.checkConservation()
	return r
}

// Phase returns the current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// TrumpRank returns the round's trump rank.
func (r *Round) TrumpRank() deck.Rank {
	return r.trumpRank
}

// Trump returns the working trump system. It may change during dealing and
// is fixed from the Kitty phase on.
func (r *Round) Trump() trump.System {
	return r.trump
}

// Declarer returns the seat that holds (or, while dealing, would hold) the
// kitty: the strongest bidder so far, or the configured seat.
func (r *Round) Declarer() int {
	if r.phase == Dealing && r.declaration != nil {
		return r.declaration.Seat
	}
	return r.declarer
}

// DefendingTeam is the declarer's team.
func (r *Round) DefendingTeam() int {
	return TeamOf(r.Declarer())
}

// AttackingTeam is the team opposing the declarer.
func (r *Round) AttackingTeam() int {
	return 1 - r.DefendingTeam()
}

// Declaration returns the strongest accepted bid so far.
func (r *Round) Declaration() (Declaration, bool) {
	if r.declaration == nil {
		return Declaration{}, false
	}
	return r.declaration.clone(), true
}

// Hand returns a copy of seat's hand.
func (r *Round) Hand(seat int) []deck.Card {
	checkSeat(seat)
	return slices.Clone(r.hands[seat])
}

// Kitty returns a copy of the kitty. Before burial it holds the cards set
// aside at the deal, during the Kitty phase it is empty, and afterwards it
// holds the buried cards.
func (r *Round) Kitty() []deck.Card {
	return slices.Clone(r.kitty)
}

// Scores returns the points taken by each team, including any kitty bonus.
func (r *Round) Scores() [2]int {
	return r.scores
}

// AttackerPoints is the attacking team's score.
func (r *Round) AttackerPoints() int {
	return r.scores[r.AttackingTeam()]
}

// KittyPoints is the kitty bonus awarded with the last trick.
func (r *Round) KittyPoints() int {
	return r.kittyPoints
}

// CurrentPlayer returns the seat due to play.
func (r *Round) CurrentPlayer() int {
	return r.current
}

// CurrentTrick returns the trick in progress, or nil outside Playing.
func (r *Round) CurrentTrick() *trick.Trick {
	return r.trick
}

// Tricks returns the completed tricks in order.
func (r *Round) Tricks() []*trick.Trick {
	return slices.Clone(r.tricks)
}

// CardsDealt returns how many cards have been dealt to hands.
func (r *Round) CardsDealt() int {
	return deck.DoubleDeckSize - KittySize - len(r.undealt)
}

// IsDealingDone reports whether every non-kitty card has been dealt.
func (r *Round) IsDealingDone() bool {
	return len(r.undealt) == 0
}

// Conservation counts every card the round accounts for: hands, kitty,
// undealt and played. It is always DoubleDeckSize.
func (r *Round) Conservation() int {
	n := len(r.undealt) + len(r.kitty) + r.played
	for _, h := range r.hands {
		n += len(h)
	}
	return n
}

func (r *Round) checkConservation() {
	if n := r.Conservation(); n != deck.DoubleDeckSize {
		panic(fmt.Sprintf("card conservation violated: %d cards accounted for, want %d", n, deck.DoubleDeckSize))
	}
}

// DealNext deals one card to the next seat in rotation. ok is false once
// dealing is done. Dealing the last card finalizes the declaration and
// moves the round to the Kitty phase.
func (r *Round) DealNext() (seat int, card deck.Card, ok bool) {
	if r.phase != Dealing || r.IsDealingDone() {
		return 0, deck.Card{}, false
	}

	seat = r.CardsDealt() % Players
	card = r.undealt[0]
	r.undealt = r.undealt[1:]
	r.hands[seat] = append(r.hands[seat], card)

	if r.IsDealingDone() {
		r.finalizeDeclaration()
	}
	r.checkConservation()
	return seat, card, true
}

// Declare attempts a trump declaration for seat with cards from its hand.
// It is only allowed while dealing and must strictly beat the current
// declaration. An accepted non-joker bid sets the working trump suit and
// every hand is re-sorted.
func (r *Round) Declare(seat int, cards []deck.Card) error {
	checkSeat(seat)
	if r.phase != Dealing {
		return ruleErrorf(ErrWrongPhase, "can only declare while dealing, round is %s", r.phase)
	}
	if !holds(r.hands[seat], cards) {
		return ruleErrorf(ErrNotInHand, "seat %d does not hold %s", seat, deck.Format(cards))
	}

	strength := BidStrength(cards, r.trumpRank)
	if strength == BidNone {
		return ruleErrorf(ErrInvalidBid, "a declaration must be one or two trump-rank cards of one suit, or one or two matching jokers")
	}
	current := BidNone
	if r.declaration != nil {
		current = r.declaration.Strength
	}
	if strength <= current {
		return ruleErrorf(ErrWeakBid, "%s (strength %d) does not beat %s (strength %d)", BidName(strength), strength, BidName(current), current)
	}

	r.declaration = &Declaration{Seat: seat, Cards: slices.Clone(cards), Strength: strength}
	if suit, ok := r.declaration.Suit(); ok {
		r.trump = trump.New(suit, r.trumpRank)
	}
	r.sortHands()
	return nil
}

func (r *Round) finalizeDeclaration() {
	if r.declaration != nil {
		r.declarer = r.declaration.Seat
	}
	r.sortHands()

	r.hands[r.declarer] = r.trump.SortHand(append(r.hands[r.declarer], r.kitty...))
	r.kitty = nil
	r.current = r.declarer
	r.phase = Kitty
}

// BuryKitty returns exactly KittySize cards from the declarer's hand to
// the kitty and starts play with the declarer leading.
func (r *Round) BuryKitty(cards []deck.Card) error {
	if r.phase != Kitty {
		panic(fmt.Sprintf("bury kitty called in %s phase", r.phase))
	}
	if len(cards) != KittySize {
		return ruleErrorf(ErrBurySize, "must bury exactly %d cards, got %d", KittySize, len(cards))
	}
	rest, ok := deck.Remove(r.hands[r.declarer], cards)
	if !ok {
		return ruleErrorf(ErrNotInHand, "declarer does not hold %s", deck.Format(cards))
	}

	r.hands[r.declarer] = rest
	r.kitty = slices.Clone(cards)
	r.phase = Playing
	r.current = r.declarer
	r.trick = trick.New(r.trump, r.declarer, Players)
	r.checkConservation()
	return nil
}

// CheckPlay reports whether cards are a legal lead or follow for seat in
// the current trick. It does not change the round.
func (r *Round) CheckPlay(seat int, cards []deck.Card) error {
	checkSeat(seat)
	if r.phase != Playing {
		return ruleErrorf(ErrWrongPhase, "can only play cards while playing, round is %s", r.phase)
	}
	if seat != r.current {
		return ruleErrorf(ErrWrongPhase, "seat %d is not due to play", seat)
	}
	if !holds(r.hands[seat], cards) {
		return ruleErrorf(ErrNotInHand, "seat %d does not hold %s", seat, deck.Format(cards))
	}
	if r.trick.IsEmpty() {
		return combo.ValidateLead(r.trump, cards)
	}
	return combo.ValidateFollow(r.trump, cards, r.trick.Led(), r.hands[seat])
}

// Play records cards for seat in the current trick. It returns the
// winner once the trick is complete. Play does not check lead or follow
// legality; see CheckPlay.
func (r *Round) Play(seat int, cards []deck.Card) (winner int, complete bool) {
	if r.phase != Playing {
		panic(fmt.Sprintf("play called in %s phase", r.phase))
	}
	if seat != r.current {
		panic(fmt.Sprintf("seat %d played out of turn, expected seat %d", seat, r.current))
	}
	if len(cards) == 0 {
		panic("play with no cards")
	}
	rest, ok := deck.Remove(r.hands[seat], cards)
	if !ok {
		panic(fmt.Sprintf("seat %d does not hold %s", seat, deck.Format(cards)))
	}

	r.hands[seat] = rest
	r.played += len(cards)
	r.trick.Play(seat, cards)
	defer r.checkConservation()

	if !r.trick.IsComplete() {
		r.current = r.trick.NextSeat()
		return 0, false
	}

	winner = r.trick.Winner()
	r.scores[TeamOf(winner)] += r.trick.Points()
	r.tricks = append(r.tricks, r.trick)
	r.lastWinner = winner

	if r.allHandsEmpty() {
		r.kittyPoints = deck.Points(r.kitty)
		r.scores[TeamOf(winner)] += r.kittyPoints
		r.trick = nil
		r.phase = Scoring
		return winner, true
	}

	r.trick = trick.New(r.trump, winner, Players)
	r.current = winner
	return winner, true
}

// LastTrickWinner returns the seat that won the most recent trick.
func (r *Round) LastTrickWinner() (int, bool) {
	if len(r.tricks) == 0 {
		return 0, false
	}
	return r.lastWinner, true
}

// Outcome scores the round from the attackers' current points.
func (r *Round) Outcome() Outcome {
	return ComputeOutcome(r.AttackerPoints(), r.DefendingTeam())
}

func (r *Round) allHandsEmpty() bool {
	for _, h := range r.hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}

func (r *Round) sortHands() {
	for i := range r.hands {
		r.hands[i] = r.trump.SortHand(r.hands[i])
	}
}

func holds(hand, cards []deck.Card) bool {
	_, ok := deck.Remove(hand, cards)
	return ok
}

func checkSeat(seat int) {
	if seat < 0 || seat >= Players {
		panic(fmt.Sprintf("seat %d out of range", seat))
	}
}
