package core

import "sync"

// Entity change event types, one per store collection.
const (
	EventSubjects        = "subjects"
	EventLectures        = "lectures"
	EventWeeklySchedules = "weekly-schedules"
	EventTasks           = "tasks"
)

type (
	// EventBus is a one-way change-notification channel: the entity store
	// publishes an event after every successful mutation so that consumers
	// (the SSE endpoint, cached views) can refresh the affected collection.
	EventBus interface {
		Publish(eventType string)
		Subscribe() (events <-chan string, cancel func())
	}

	eventBus struct {
		mutex sync.Mutex
		subs  map[chan string]struct{}
	}
)

func NewEventBus() EventBus {
	return &eventBus{subs: make(map[chan string]struct{})}
}

func (bus *eventBus) Publish(eventType string) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	for ch := range bus.subs {
		select {
		case ch <- eventType:
		default: // slow subscriber: drop rather than block the store
		}
	}
}

func (bus *eventBus) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 8)
	bus.mutex.Lock()
	bus.subs[ch] = struct{}{}
	bus.mutex.Unlock()

	cancel := func() {
		bus.mutex.Lock()
		delete(bus.subs, ch)
		bus.mutex.Unlock()
	}
	return ch, cancel
}
