// Package eventbus is a typed publish/subscribe bus.
//
// Handlers run synchronously in the order they subscribed. The bus is meant
// for the editor's single update goroutine and is not safe for concurrent use.
package eventbus

import "errors"

// Handler receives an event. A non-nil error is reported back to the
// publisher; it does not stop delivery to later handlers.
type Handler[T any] func(T) error

type subscription[T any] struct {
	id      int
	handler Handler[T]
}

// Bus delivers events of type T to registered handlers.
type Bus[T any] struct {
	subs   []subscription[T]
	nextID int
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns a func that removes it.
// Calling the returned func more than once is harmless.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, handler: handler})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every handler with event and joins the errors they return.
func (b *Bus[T]) Publish(event T) error {
	// Handlers may unsubscribe while we iterate.
	snapshot := make([]subscription[T], len(b.subs))
	copy(snapshot, b.subs)

	var errs []error
	for _, s := range snapshot {
		if err := s.handler(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	return len(b.subs)
}
