// Package trick records the plays of one trick and resolves its winner.
//
// The first play fixes the led combination. Its component sizes, largest
// first, form the template every later play is judged against: each play is
// split into slots of those sizes by taking its strongest remaining cards,
// and a challenger must win every slot to take the trick. Legality of each
// play is assumed to have been checked by the caller.
package trick

import (
	"fmt"
	"slices"

	"github.com/lox/tuolaji/internal/combo"
	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trump"
)

// Play is one seat's contribution to a trick.
type Play struct {
	Seat  int
	Cards []deck.Card
}

// Trick tracks up to one play per seat.
type Trick struct {
	trump   trump.System
	leader  int
	players int
	plays   []Play
	led     combo.Combo
}

// New starts a trick led by leader among players seats.
func New(ts trump.System, leader, players int) *Trick {
	if players <= 0 {
		panic("trick needs at least one player")
	}
	if leader < 0 || leader >= players {
		panic(fmt.Sprintf("leader %d out of range for %d players", leader, players))
	}
	return &Trick{trump: ts, leader: leader, players: players}
}

// Play records cards for seat. The first play becomes the lead. Seats must
// play in rotation from the leader; anything else is a driver bug.
func (t *Trick) Play(seat int, cards []deck.Card) {
	if t.IsComplete() {
		panic("play on a complete trick")
	}
	if want := t.NextSeat(); seat != want {
		panic(fmt.Sprintf("seat %d played out of turn, expected seat %d", seat, want))
	}
	if len(cards) == 0 {
		panic("empty play")
	}

	cards = slices.Clone(cards)
	if len(t.plays) == 0 {
		t.led = combo.Detect(t.trump, cards)
	}
	t.plays = append(t.plays, Play{Seat: seat, Cards: cards})
}

// Clone returns an independent copy of the trick.
func (t *Trick) Clone() *Trick {
	c := *t
	c.plays = make([]Play, len(t.plays))
	for i, p := range t.plays {
		c.plays[i] = Play{Seat: p.Seat, Cards: slices.Clone(p.Cards)}
	}
	return &c
}

// NextSeat returns the seat due to play next.
func (t *Trick) NextSeat() int {
	return (t.leader + len(t.plays)) % t.players
}

// Leader returns the seat that led.
func (t *Trick) Leader() int {
	return t.leader
}

// Trump returns the trump system the trick is played under.
func (t *Trick) Trump() trump.System {
	return t.trump
}

// IsComplete reports whether every seat has played.
func (t *Trick) IsComplete() bool {
	return len(t.plays) == t.players
}

// IsEmpty reports whether nobody has played yet.
func (t *Trick) IsEmpty() bool {
	return len(t.plays) == 0
}

// Plays returns the plays so far in order.
func (t *Trick) Plays() []Play {
	return slices.Clone(t.plays)
}

// Led returns the led combination. It is only meaningful once the trick has
// a play.
func (t *Trick) Led() combo.Combo {
	return t.led
}

// Template returns the led component sizes, largest first.
func (t *Trick) Template() []int {
	if t.IsEmpty() {
		return nil
	}
	return t.led.Template()
}

// Winner returns the seat that won the completed trick. It panics if the
// trick is not complete.
func (t *Trick) Winner() int {
	if !t.IsComplete() {
		panic("winner of an incomplete trick")
	}
	seat, _ := t.CurrentWinner()
	return seat
}

// CurrentWinner evaluates the plays made so far and returns the seat and
// play currently winning. It is the same comparison Winner uses, so
// strategies may rely on it mid-trick. ok is false before the first play.
func (t *Trick) CurrentWinner() (seat int, ok bool) {
	best, ok := t.currentBest()
	if !ok {
		return 0, false
	}
	return best.Seat, true
}

// CurrentWinningPlay is CurrentWinner returning the whole winning play.
func (t *Trick) CurrentWinningPlay() (Play, bool) {
	return t.currentBest()
}

func (t *Trick) currentBest() (Play, bool) {
	if len(t.plays) == 0 {
		return Play{}, false
	}

	best := t.plays[0]
	for _, p := range t.plays[1:] {
		if t.Beats(p.Cards, best.Cards) {
			best = p
		}
	}
	return best, true
}

// Beats reports whether challenger beats incumbent under the led template.
func (t *Trick) Beats(challenger, incumbent []deck.Card) bool {
	if t.IsEmpty() {
		panic("comparison before the lead")
	}
	led := t.led.Group()

	groups := t.trump.Groups(challenger)
	if !slices.Contains(groups, led) && !slices.Contains(groups, trump.Trump) {
		return false
	}

	template := t.led.Template()
	cs := t.slots(challenger, template)
	is := t.slots(incumbent, template)

	for i := range template {
		if !t.slotBeats(cs[i], is[i], led) {
			return false
		}
	}
	return true
}

// slots splits cards to the template by taking the strongest remaining
// cards for each slot in turn.
func (t *Trick) slots(cards []deck.Card, template []int) [][]deck.Card {
	remaining := t.trump.SortHand(cards)
	out := make([][]deck.Card, len(template))
	for i, size := range template {
		n := min(size, len(remaining))
		out[i] = remaining[:n]
		remaining = remaining[n:]
	}
	return out
}

func (t *Trick) slotBeats(challenger, incumbent []deck.Card, led trump.Group) bool {
	if len(challenger) == 0 || len(incumbent) == 0 {
		return len(incumbent) == 0 && len(challenger) > 0
	}
	if g := t.trump.Group(challenger[0]); g != led && g != trump.Trump {
		return false
	}

	size := len(challenger)
	if size == 1 {
		return t.trump.Beats(challenger[0], incumbent[0], led)
	}

	want := combo.Pair
	if size >= 4 {
		want = combo.Tractor
	}

	c := combo.Detect(t.trump, challenger)
	if c.Type != want {
		return false
	}
	i := combo.Detect(t.trump, incumbent)
	if i.Type != want {
		return true
	}
	return t.trump.Beats(c.Top(), i.Top(), led)
}

// Points returns the point value of every card played so far.
func (t *Trick) Points() int {
	total := 0
	for _, p := range t.plays {
		total += deck.Points(p.Cards)
	}
	return total
}

// Cards returns every card played so far.
func (t *Trick) Cards() []deck.Card {
	var out []deck.Card
	for _, p := range t.plays {
		out = append(out, p.Cards...)
	}
	return out
}

func (t *Trick) String() string {
	return fmt.Sprintf("Trick(leader=%d, plays=%d/%d)", t.leader, len(t.plays), t.players)
}
