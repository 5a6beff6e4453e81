package game

import (
	"fmt"
	"strings"

	"github.com/lox/tuolaji/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	SeatNames   []string // Names indexed by seat; defaults to "Seat N"
	ShowReasons bool     // Include fallback reasons on plays
	ShowKitty   bool     // Reveal the buried kitty at round end
}

// EventFormatter provides centralized formatting for all round events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// SeatName returns the display name of seat.
func (ef *EventFormatter) SeatName(seat int) string {
	if seat >= 0 && seat < len(ef.opts.SeatNames) && ef.opts.SeatNames[seat] != "" {
		return ef.opts.SeatNames[seat]
	}
	return fmt.Sprintf("Seat %d", seat)
}

// Format renders any round event as one line. Unknown events format as
// their type.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case TrumpDeclaredEvent:
		return ef.FormatTrumpDeclared(e)
	case DealingDoneEvent:
		return ef.FormatDealingDone(e)
	case KittyBuriedEvent:
		return ef.FormatKittyBuried(e)
	case CardsPlayedEvent:
		return ef.FormatCardsPlayed(e)
	case TrickCompleteEvent:
		return ef.FormatTrickComplete(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	default:
		return event.EventType().String()
	}
}

// FormatRoundStart formats a round start event
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	return fmt.Sprintf("*** ROUND %s *** trump rank %s, levels %s/%s, %s holds the kitty unless someone declares",
		event.RoundID, event.TrumpRank, event.Levels[0], event.Levels[1], ef.SeatName(event.Declarer))
}

// FormatTrumpDeclared formats an accepted declaration
func (ef *EventFormatter) FormatTrumpDeclared(event TrumpDeclaredEvent) string {
	d := event.Declaration
	return fmt.Sprintf("%s: declares %s (%s) after %d cards, trump is %s",
		ef.SeatName(d.Seat), ef.formatCards(d.Cards), d.Name(), event.CardsDealt, event.Trump)
}

// FormatDealingDone formats the end of dealing
func (ef *EventFormatter) FormatDealingDone(event DealingDoneEvent) string {
	if !event.Declared {
		return fmt.Sprintf("*** DEALT *** nobody declared, %s takes the kitty with trump %s",
			ef.SeatName(event.Declarer), event.Trump)
	}
	return fmt.Sprintf("*** DEALT *** %s takes the kitty with trump %s", ef.SeatName(event.Declarer), event.Trump)
}

// FormatKittyBuried formats a kitty burial
func (ef *EventFormatter) FormatKittyBuried(event KittyBuriedEvent) string {
	if event.Fallback {
		return fmt.Sprintf("%s: kitty buried automatically", ef.SeatName(event.Declarer))
	}
	return fmt.Sprintf("%s: buries the kitty", ef.SeatName(event.Declarer))
}

// FormatCardsPlayed formats a play into a trick
func (ef *EventFormatter) FormatCardsPlayed(event CardsPlayedEvent) string {
	verb := "follows"
	if event.Lead {
		verb = "leads"
	}
	line := fmt.Sprintf("%s: %s %s", ef.SeatName(event.Seat), verb, ef.formatCards(event.Cards))
	if event.Fallback && ef.opts.ShowReasons && event.Reason != "" {
		line += fmt.Sprintf(" [replaced: %s]", event.Reason)
	}
	return line
}

// FormatTrickComplete formats a trick result
func (ef *EventFormatter) FormatTrickComplete(event TrickCompleteEvent) string {
	return fmt.Sprintf("Trick %d: %s wins %d points (team 0: %d, team 1: %d)",
		event.Number, ef.SeatName(event.Winner), event.Points, event.Scores[0], event.Scores[1])
}

// FormatRoundEnd formats the round summary
func (ef *EventFormatter) FormatRoundEnd(event RoundEndEvent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*** ROUND %s OVER *** %s", event.RoundID, event.Outcome.Summary())
	if event.KittyPoints > 0 {
		fmt.Fprintf(&sb, ", kitty worth %d", event.KittyPoints)
	}
	if ef.opts.ShowKitty && len(event.Kitty) > 0 {
		fmt.Fprintf(&sb, " [%s]", ef.formatCards(event.Kitty))
	}
	return sb.String()
}

func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	return deck.Format(cards)
}
