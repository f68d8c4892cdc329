package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSinkDeliversInOrder(t *testing.T) {
	var collected []Event
	sink := NewSink(context.Background(), func(e Event) {
		collected = append(collected, e)
	})

	sink.Emit(TextClicked{})
	sink.Emit(ScreenNameChanged{Name: "a"})
	sink.Emit(PopupClosed{})

	assert.Equal(t, []Event{TextClicked{}, ScreenNameChanged{Name: "a"}, PopupClosed{}}, collected)
}

func TestSinkConsumerMayEmit(t *testing.T) {
	var collected []Event
	var sink *Sink
	sink = NewSink(context.Background(), func(e Event) {
		collected = append(collected, e)
		if _, ok := e.(TextClicked); ok {
			sink.Emit(PopupClosed{})
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		sink.Emit(TextClicked{})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emitting from inside the consumer callback blocked")
	}
	assert.Equal(t, []Event{TextClicked{}, PopupClosed{}}, collected)
}

func TestSinkDropsAfterClose(t *testing.T) {
	count := 0
	sink := NewSink(context.Background(), func(Event) { count++ })

	sink.Emit(TextClicked{})
	sink.Close()
	sink.Emit(TextClicked{})
	sink.Close()

	assert.Equal(t, 1, count)
}

func TestSinkDropsAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	sink := NewSink(ctx, func(Event) { count++ })

	sink.Emit(TextClicked{})
	cancel()
	sink.Emit(TextClicked{})

	assert.Equal(t, 1, count)
}

func TestSinkNilConsumer(t *testing.T) {
	sink := NewSink(context.Background(), nil)

	assert.NotPanics(t, func() {
		sink.Emit(SDKError{})
		sink.Close()
	})
}
