package events

import (
	"context"
	"sync"
)

// Consumer receives events for one flow invocation.
type Consumer func(Event)

// Sink delivers events to exactly one consumer, synchronously and in
// emission order. It is not a pub/sub bus: one flow, one consumer. Once
// the sink is closed or its context cancelled, further emissions are
// dropped; in-flight work that loses a race with cancellation must not
// reach the renderer.
type Sink struct {
	mu       sync.Mutex
	ctx      context.Context
	consumer Consumer
	closed   bool
}

func NewSink(ctx context.Context, consumer Consumer) *Sink {
	if consumer == nil {
		consumer = func(Event) {}
	}
	return &Sink{ctx: ctx, consumer: consumer}
}

// Emit delivers the event to the consumer unless the sink is closed or
// the owning context is done. The consumer runs outside the lock, so it
// may emit further events from inside its callback; flows emit
// sequentially, which keeps delivery ordered.
func (s *Sink) Emit(event Event) {
	s.mu.Lock()
	if s.closed || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	consumer := s.consumer
	s.mu.Unlock()

	consumer(event)
}

// Close stops delivery. Idempotent.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
