// Package game implements the round and match logic of Tuo La Ji
// (Tractor / Sheng Ji) for four players in two fixed partnerships.
//
// The main type is Round, a strictly forward state machine:
//
//	Dealing -> Kitty -> Playing -> Scoring
//
// A Round never blocks and never decides anything on a player's behalf. It
// accepts or rejects declarations, burials and plays and keeps the 108-card
// pool conserved across hands, kitty, undealt and played cards.
//
// # Basic Usage
//
//	r := game.NewRound(randutil.New(42), game.WithTrumpRank(deck.Five))
//	for !r.IsDealingDone() {
//	    seat, card, _ := r.DealNext()
//	    // offer seat a chance to declare with card...
//	}
//	_ = r.BuryKitty(cards)
//	winner, complete := r.Play(r.CurrentPlayer(), cards)
//
// Drivers are expected to check plays with CheckPlay (or the combo package)
// before calling Play. Out-of-turn plays, cards that are not held and calls
// in the wrong phase are programmer errors and panic; declarations and
// burials report rule violations as errors and leave the round unchanged.
//
// # Architecture
//
// Round delegates to specialized packages:
//   - trump.System: immutable classification and ordering of cards
//   - combo: lead and follow legality
//   - trick.Trick: trick winner resolution
//
// Match carries team levels and seat roles across rounds, and Engine drives
// rounds through Agents, publishing events to an EventBus.
package game
