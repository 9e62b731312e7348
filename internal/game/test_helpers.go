package game

import (
	"context"
	"errors"
	"slices"

	"github.com/lox/lotto/internal/bag"
)

// ErrScriptExhausted is returned by ScriptedConfirmer when it runs out of
// answers.
var ErrScriptExhausted = errors.New("scripted confirmer has no answers left")

// ScriptedConfirmer answers questions from a fixed list and records what it
// was asked.
type ScriptedConfirmer struct {
	answers   []bool
	Questions []string
}

// NewScriptedConfirmer creates a confirmer that replays answers in order.
func NewScriptedConfirmer(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{answers: answers}
}

func (s *ScriptedConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.Questions = append(s.Questions, question)
	if len(s.answers) == 0 {
		return false, ErrScriptExhausted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// SequenceSource draws tokens in a fixed order.
type SequenceSource struct {
	tokens []bag.Token
}

// NewSequenceSource returns a source that yields tokens in the given order.
func NewSequenceSource(tokens ...bag.Token) *SequenceSource {
	return &SequenceSource{tokens: slices.Clone(tokens)}
}

func (s *SequenceSource) IsEmpty() bool  { return len(s.tokens) == 0 }
func (s *SequenceSource) Remaining() int { return len(s.tokens) }

func (s *SequenceSource) Draw() (bag.Token, error) {
	if s.IsEmpty() {
		return 0, bag.ErrEmptyBag
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	return t, nil
}

// EventRecorder keeps every event it receives.
type EventRecorder struct {
	Events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []EventType {
	out := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.EventType()
	}
	return out
}
