package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotto/internal/bag"
	"github.com/lox/lotto/internal/card"
)

func TestEventBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string
	first := &orderSubscriber{name: "first", order: &order}
	second := &orderSubscriber{name: "second", order: &order}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewTokenDrawnEvent(7, 89, 1, time.Unix(0, 0)))
	assert.Equal(t, []string{"first", "second"}, order)

	bus.Unsubscribe(first)
	bus.Publish(NewTokenDrawnEvent(8, 88, 2, time.Unix(0, 0)))
	assert.Equal(t, []string{"first", "second", "second"}, order)

	// unknown subscribers are ignored
	bus.Unsubscribe(&EventRecorder{})
	bus.Publish(NewTokenDrawnEvent(9, 87, 3, time.Unix(0, 0)))
	assert.Len(t, order, 4)
}

func TestTurnEventSnapshotsCard(t *testing.T) {
	c, err := card.FromRows(testRows)
	require.NoError(t, err)
	p := &Player{Name: "Alice", Card: c}

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := NewTurnEvent(p, 3, at)
	require.NoError(t, p.Card.Mark(3))

	assert.Equal(t, EventTypeTurn, ev.EventType())
	assert.Equal(t, at, ev.Timestamp())
	assert.True(t, ev.Card.Contains(3), "snapshot must not see later marks")
	assert.False(t, p.Card.Contains(3))
}

func TestMoveEventCopiesFlags(t *testing.T) {
	p := &Player{Name: "Bob", lost: true}
	ev := NewMoveEvent(p, bag.Token(12), false, time.Time{})

	assert.Equal(t, "move", ev.EventType().String())
	assert.True(t, ev.Lost)
	assert.False(t, ev.Won)
	assert.False(t, ev.Marked)
}

type orderSubscriber struct {
	name  string
	order *[]string
}

func (s *orderSubscriber) OnEvent(GameEvent) {
	*s.order = append(*s.order, s.name)
}
