package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
// These represent events that occur within a round
const (
	EventTypeRoundStart    EventType = "round_start"
	EventTypeTrumpDeclared EventType = "trump_declared"
	EventTypeDealingDone   EventType = "dealing_done"
	EventTypeKittyBuried   EventType = "kitty_buried"
	EventTypeCardsPlayed   EventType = "cards_played"
	EventTypeTrickComplete EventType = "trick_complete"
	EventTypeRoundEnd      EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
