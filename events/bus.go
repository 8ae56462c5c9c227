// Package events carries storefront change notifications to whoever renders
// the session. A presentation layer subscribes once and recomputes its view
// whenever an event arrives; the core never depends on anyone listening.
package events

import "sync"

// Event is a generic type placeholder for any event type
type Event any

// Subscriber is a channel that transports events of type T
type Subscriber[T Event] chan T

// subscriberBuffer is how many undelivered events a subscriber may lag
// behind before further events are dropped for it.
const subscriberBuffer = 64

type Bus[T Event] struct {
	subscribers map[Subscriber[T]]struct{}
	mutex       sync.RWMutex
	closed      bool
}

func NewBus[T Event]() *Bus[T] {
	return &Bus[T]{
		subscribers: make(map[Subscriber[T]]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel. Subscribing
// to a closed bus returns a closed channel.
func (bus *Bus[T]) Subscribe() Subscriber[T] {
	ch := make(Subscriber[T], subscriberBuffer)

	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if bus.closed {
		close(ch)
		return ch
	}

	bus.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Unsubscribing an
// unknown channel is a no-op.
func (bus *Bus[T]) Unsubscribe(ch Subscriber[T]) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if _, ok := bus.subscribers[ch]; !ok {
		return
	}

	delete(bus.subscribers, ch)
	close(ch)
}

// Publish broadcasts an event to all registered subscribers without
// blocking. A subscriber whose buffer is full misses the event.
func (bus *Bus[T]) Publish(event T) {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()

	for subscriber := range bus.subscribers {
		select {
		case subscriber <- event:
		default:
			// subscriber is lagging, drop the event for it
		}
	}
}

// Close removes and closes every subscriber. Further publishes go nowhere.
func (bus *Bus[T]) Close() {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if bus.closed {
		return
	}
	bus.closed = true

	for subscriber := range bus.subscribers {
		close(subscriber)
	}
	bus.subscribers = make(map[Subscriber[T]]struct{})
}
