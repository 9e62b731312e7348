package game

import (
	"time"

	"github.com/lox/lotto/internal/bag"
	"github.com/lox/lotto/internal/card"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeGameStart  EventType = "game_start"
	EventTypeTokenDrawn EventType = "token_drawn"
	EventTypeTurn       EventType = "turn"
	EventTypeMove       EventType = "move"
	EventTypeGameEnd    EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a lotto game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the playable bag has been refilled.
type GameStartEvent struct {
	GameID    string
	Players   []*Player
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(gameID string, players []*Player, at time.Time) GameStartEvent {
	return GameStartEvent{
		GameID:    gameID,
		Players:   players,
		timestamp: at,
	}
}

// TokenDrawnEvent is published for every token taken out of the bag.
type TokenDrawnEvent struct {
	Token     bag.Token
	Remaining int
	Draw      int // 1-based draw number
	timestamp time.Time
}

func (e TokenDrawnEvent) EventType() EventType { return EventTypeTokenDrawn }
func (e TokenDrawnEvent) Timestamp() time.Time { return e.timestamp }

// NewTokenDrawnEvent creates a new token drawn event
func NewTokenDrawnEvent(token bag.Token, remaining, draw int, at time.Time) TokenDrawnEvent {
	return TokenDrawnEvent{
		Token:     token,
		Remaining: remaining,
		Draw:      draw,
		timestamp: at,
	}
}

// TurnEvent is published right before a player moves. Card is a snapshot of
// the player's card at that moment.
type TurnEvent struct {
	Player    *Player
	Card      *card.Card
	Token     bag.Token
	timestamp time.Time
}

func (e TurnEvent) EventType() EventType { return EventTypeTurn }
func (e TurnEvent) Timestamp() time.Time { return e.timestamp }

// NewTurnEvent creates a new turn event
func NewTurnEvent(player *Player, token bag.Token, at time.Time) TurnEvent {
	return TurnEvent{
		Player:    player,
		Card:      player.Card.Clone(),
		Token:     token,
		timestamp: at,
	}
}

// MoveEvent is published after a player's move has been applied.
type MoveEvent struct {
	Player    *Player
	Token     bag.Token
	Marked    bool
	Lost      bool
	Won       bool
	timestamp time.Time
}

func (e MoveEvent) EventType() EventType { return EventTypeMove }
func (e MoveEvent) Timestamp() time.Time { return e.timestamp }

// NewMoveEvent creates a new move event
func NewMoveEvent(player *Player, token bag.Token, marked bool, at time.Time) MoveEvent {
	return MoveEvent{
		Player:    player,
		Token:     token,
		Marked:    marked,
		Lost:      player.Lost(),
		Won:       player.Won(),
		timestamp: at,
	}
}

// GameEndEvent is published once when the game reaches a terminal result.
type GameEndEvent struct {
	Result    Result
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(result Result, at time.Time) GameEndEvent {
	return GameEndEvent{
		Result:    result,
		timestamp: at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
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

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
