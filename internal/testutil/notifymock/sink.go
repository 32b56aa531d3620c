package notifymock

import (
	"context"
	"sync"

	"credit-conveyor/internal/notification"
)

var _ notification.Sink = (*Sink)(nil)

// Emitted is one recorded Emit call.
type Emitted struct {
	Topic string
	Msg   notification.Message
}

// Sink records every Emit call. Set EmitFn to override the default
// record-and-succeed behavior.
type Sink struct {
	mu     sync.Mutex
	events []Emitted

	EmitFn func(ctx context.Context, topic string, msg notification.Message) error
}

func (s *Sink) Emit(ctx context.Context, topic string, msg notification.Message) error {
	if s.EmitFn != nil {
		return s.EmitFn(ctx, topic, msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Emitted{Topic: topic, Msg: msg})
	return nil
}

// Events returns a copy of everything emitted so far.
func (s *Sink) Events() []Emitted {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Emitted, len(s.events))
	copy(out, s.events)
	return out
}

// Topics returns just the topic names, in emit order.
func (s *Sink) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Topic)
	}
	return out
}
