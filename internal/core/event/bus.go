package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered typed event bus. Events emitted during tick N are
// dispatched at the start of tick N+1, after SwapBuffers rotates the
// buffers. Within one event type, delivery order equals emission order; that
// is what gives room events their per-room ordering guarantee.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer, readable next tick.
// Fire-and-forget: emission never fails and never blocks.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Pending reports how many events of type T sit in the back buffer, not yet
// dispatched. Used by tests and the journal flush decision.
func Pending[T any](b *Bus) int {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return len(b.back[t])
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start by EventDispatchSystem.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
func (b *Bus) DispatchAll() {
	for t, events := range b.front {
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				// Safe: Subscribe and Emit key handlers and events
				// by the same concrete type.
				callHandler(h, ev)
			}
		}
	}
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
