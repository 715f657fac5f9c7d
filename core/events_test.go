package core

import (
	"testing"
	"time"
)

func receive(t *testing.T, events <-chan string) string {
	t.Helper()
	select {
	case evt := <-events:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	t.Run("publish reaches all subscribers", func(t *testing.T) {
		events1, cancel1 := bus.Subscribe()
		defer cancel1()
		events2, cancel2 := bus.Subscribe()
		defer cancel2()

		bus.Publish(EventLectures)

		if got := receive(t, events1); got != EventLectures {
			t.Errorf("event = %q, want %q", got, EventLectures)
		}
		if got := receive(t, events2); got != EventLectures {
			t.Errorf("event = %q, want %q", got, EventLectures)
		}
	})

	t.Run("canceled subscriber is dropped", func(t *testing.T) {
		events, cancel := bus.Subscribe()
		cancel()

		bus.Publish(EventTasks)
		select {
		case evt, ok := <-events:
			if ok {
				t.Errorf("got event %q after cancel", evt)
			}
		default:
		}
	})

	t.Run("slow subscriber does not block publish", func(t *testing.T) {
		_, cancel := bus.Subscribe() // never drained
		defer cancel()

		done := make(chan struct{})
		go func() {
			for i := 0; i < 100; i++ {
				bus.Publish(EventSubjects)
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Publish() blocked on a slow subscriber")
		}
	})
}
