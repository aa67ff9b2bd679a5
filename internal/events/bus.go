package events

import "sync"

// Handler receives published events.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	kind Kind
	id   uint64
}

type listener struct {
	id uint64
	fn Handler
}

// Bus is a synchronous publish/subscribe hub with one listener list per kind.
// Publish invokes handlers on the caller's goroutine, in registration order,
// before returning. Handlers may subscribe, unsubscribe or publish.
type Bus struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners [kindCount][]listener
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// On registers fn for events of kind k. Unknown kinds are accepted and never delivered.
func (b *Bus) On(k Kind, fn Handler) Subscription {
	if b == nil || fn == nil || k < 0 || k >= kindCount {
		return Subscription{kind: -1}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[k] = append(b.listeners[k], listener{id: b.nextID, fn: fn})
	return Subscription{kind: k, id: b.nextID}
}

// OnAll registers fn for every kind.
func (b *Bus) OnAll(fn Handler) []Subscription {
	subs := make([]Subscription, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		subs = append(subs, b.On(k, fn))
	}
	return subs
}

// Off removes a subscription. It reports whether the handler was registered.
func (b *Bus) Off(sub Subscription) bool {
	if b == nil || sub.kind < 0 || sub.kind >= kindCount {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.listeners[sub.kind]
	for i, l := range list {
		if l.id == sub.id {
			next := make([]listener, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			b.listeners[sub.kind] = next
			return true
		}
	}
	return false
}

// Publish delivers ev to the handlers registered for its kind.
func (b *Bus) Publish(ev Event) {
	if b == nil || ev == nil {
		return
	}
	k := ev.Kind()
	if k < 0 || k >= kindCount {
		return
	}
	b.mu.RLock()
	list := b.listeners[k]
	b.mu.RUnlock()
	// list is never mutated in place, so iterating the captured slice is safe.
	for _, l := range list {
		l.fn(ev)
	}
}

// ListenerCount returns the number of handlers registered for k.
func (b *Bus) ListenerCount(k Kind) int {
	if b == nil || k < 0 || k >= kindCount {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[k])
}

// Clear removes every handler.
func (b *Bus) Clear() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.listeners {
		b.listeners[k] = nil
	}
}

// Subscribe registers a handler for the event type E. The kind is derived
// from E's zero value, so the handler receives the concrete payload.
func Subscribe[E Event](b *Bus, fn func(E)) Subscription {
	var zero E
	return b.On(zero.Kind(), func(ev Event) {
		if typed, ok := ev.(E); ok {
			fn(typed)
		}
	})
}
