// Package eventbus provides the publish/subscribe hook points around
// the navigation lifecycle. Delivery is synchronous, in subscription
// order, and best-effort: a panicking handler is recovered and logged,
// never surfaced to the publisher or allowed to starve later handlers.
package eventbus

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
)

// Canonical navigation lifecycle events. Applications may publish and
// subscribe to arbitrary additional event names.
const (
	EventBeforeNavigate   = "before_navigate"
	EventAfterNavigate    = "after_navigate"
	EventNavigationFailed = "navigation_failed"
	EventBeforeClose      = "before_close"
	EventAfterClose       = "after_close"
)

// Fields carries the payload of an event.
type Fields map[string]any

// Handler receives a published event's payload.
type Handler func(fields Fields)

// Subscription identifies one registered handler. Go functions are not
// comparable, so unsubscription goes through this token rather than the
// handler value.
type Subscription struct {
	Event string
	id    string
}

type subscriber struct {
	id      string
	handler Handler
}

// Bus is a synchronous publish/subscribe bus. Like the rest of the
// navigation core it is confined to the GUI thread and does no locking.
type Bus struct {
	subscribers map[string][]subscriber
	log         *slog.Logger
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string][]subscriber),
		log:         internal.GetFrameworkLogger(),
	}
}

// Subscribe registers a handler for an event and returns the token used
// to unsubscribe it.
func (b *Bus) Subscribe(event string, handler Handler) *Subscription {
	id := uuid.NewString()
	b.subscribers[event] = append(b.subscribers[event], subscriber{id: id, handler: handler})
	return &Subscription{Event: event, id: id}
}

// Unsubscribe removes a previously registered handler. Unknown tokens
// are a no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	subs := b.subscribers[sub.Event]
	for i, s := range subs {
		if s.id == sub.id {
			b.subscribers[sub.Event] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every subscriber in registration order.
// A panicking handler does not prevent delivery to the rest.
func (b *Bus) Publish(event string, fields Fields) {
	for _, s := range b.subscribers[event] {
		b.deliver(event, s, fields)
	}
}

func (b *Bus) deliver(event string, s subscriber, fields Fields) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked", "event", event, "panic", r)
		}
	}()
	s.handler(fields)
}

// SubscriberCount returns the number of handlers for an event.
func (b *Bus) SubscriberCount(event string) int {
	return len(b.subscribers[event])
}

// Reset drops every subscription. Intended for test isolation.
func (b *Bus) Reset() {
	b.subscribers = make(map[string][]subscriber)
}
