package game

import (
	"slices"
	"time"

	"github.com/lox/tuolaji/internal/deck"
	"github.com/lox/tuolaji/internal/trump"
)

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published before the first card is dealt
type RoundStartEvent struct {
	RoundID   string
	TrumpRank deck.Rank
	Declarer  int // seat burying the kitty if nobody declares
	Levels    [2]deck.Rank
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, trumpRank deck.Rank, declarer int, levels [2]deck.Rank) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   roundID,
		TrumpRank: trumpRank,
		Declarer:  declarer,
		Levels:    levels,
		timestamp: time.Now(),
	}
}

// TrumpDeclaredEvent is published when a declaration is accepted
type TrumpDeclaredEvent struct {
	Declaration Declaration
	Trump       trump.System
	CardsDealt  int
	timestamp   time.Time
}

func (e TrumpDeclaredEvent) EventType() EventType { return EventTypeTrumpDeclared }
func (e TrumpDeclaredEvent) Timestamp() time.Time { return e.timestamp }

// NewTrumpDeclaredEvent creates a new trump declared event
func NewTrumpDeclaredEvent(d Declaration, ts trump.System, cardsDealt int) TrumpDeclaredEvent {
	return TrumpDeclaredEvent{
		Declaration: d.clone(),
		Trump:       ts,
		CardsDealt:  cardsDealt,
		timestamp:   time.Now(),
	}
}

// DealingDoneEvent is published once the declaration is final
type DealingDoneEvent struct {
	Trump     trump.System
	Declarer  int
	Declared  bool // false if nobody declared and defaults applied
	timestamp time.Time
}

func (e DealingDoneEvent) EventType() EventType { return EventTypeDealingDone }
func (e DealingDoneEvent) Timestamp() time.Time { return e.timestamp }

// NewDealingDoneEvent creates a new dealing done event
func NewDealingDoneEvent(ts trump.System, declarer int, declared bool) DealingDoneEvent {
	return DealingDoneEvent{
		Trump:     ts,
		Declarer:  declarer,
		Declared:  declared,
		timestamp: time.Now(),
	}
}

// KittyBuriedEvent is published when the declarer has buried the kitty.
// The buried cards stay hidden until the round ends.
type KittyBuriedEvent struct {
	Declarer  int
	Fallback  bool // true if the engine buried on the declarer's behalf
	timestamp time.Time
}

func (e KittyBuriedEvent) EventType() EventType { return EventTypeKittyBuried }
func (e KittyBuriedEvent) Timestamp() time.Time { return e.timestamp }

// NewKittyBuriedEvent creates a new kitty buried event
func NewKittyBuriedEvent(declarer int, fallback bool) KittyBuriedEvent {
	return KittyBuriedEvent{
		Declarer:  declarer,
		Fallback:  fallback,
		timestamp: time.Now(),
	}
}

// CardsPlayedEvent is published for every play into a trick
type CardsPlayedEvent struct {
	Seat      int
	Cards     []deck.Card
	Lead      bool
	Fallback  bool // true if the engine replaced an illegal play
	Reason    string
	timestamp time.Time
}

func (e CardsPlayedEvent) EventType() EventType { return EventTypeCardsPlayed }
func (e CardsPlayedEvent) Timestamp() time.Time { return e.timestamp }

// NewCardsPlayedEvent creates a new cards played event
func NewCardsPlayedEvent(seat int, cards []deck.Card, lead, fallback bool, reason string) CardsPlayedEvent {
	return CardsPlayedEvent{
		Seat:      seat,
		Cards:     slices.Clone(cards),
		Lead:      lead,
		Fallback:  fallback,
		Reason:    reason,
		timestamp: time.Now(),
	}
}

// TrickCompleteEvent is published when a trick fills
type TrickCompleteEvent struct {
	Number    int // 1-based
	Winner    int
	Points    int
	Scores    [2]int
	timestamp time.Time
}

func (e TrickCompleteEvent) EventType() EventType { return EventTypeTrickComplete }
func (e TrickCompleteEvent) Timestamp() time.Time { return e.timestamp }

// NewTrickCompleteEvent creates a new trick complete event
func NewTrickCompleteEvent(number, winner, points int, scores [2]int) TrickCompleteEvent {
	return TrickCompleteEvent{
		Number:    number,
		Winner:    winner,
		Points:    points,
		Scores:    scores,
		timestamp: time.Now(),
	}
}

// RoundEndEvent is published when the round reaches Scoring
type RoundEndEvent struct {
	RoundID     string
	Outcome     Outcome
	Scores      [2]int
	Kitty       []deck.Card
	KittyPoints int
	timestamp   time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(roundID string, outcome Outcome, scores [2]int, kitty []deck.Card, kittyPoints int) RoundEndEvent {
	return RoundEndEvent{
		RoundID:     roundID,
		Outcome:     outcome,
		Scores:      scores,
		Kitty:       slices.Clone(kitty),
		KittyPoints: kittyPoints,
		timestamp:   time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) {
	f(event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory, synchronous event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
