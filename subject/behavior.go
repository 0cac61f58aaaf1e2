package subject

import (
	"github.com/flowrx/reactive/common/status"
	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// Behavior is a Subject that holds a current value. Every new subscription
// receives the current value synchronously before anything emitted later.
type Behavior[T any] struct {
	Subject[T]
	value T
}

func NewBehavior[T any](initial T) *Behavior[T] {
	return &Behavior[T]{value: initial}
}

// Value returns the held current value. It keeps returning the last value
// after the subject terminated.
func (b *Behavior[T]) Value() T {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.value
}

// Next updates the current value before notifying, so an observer that
// recursively subscribes from inside its callback sees the new value.
func (b *Behavior[T]) Next(value T) {
	b.mutex.Lock()
	if !status.Load(&b.state).Active() {
		b.mutex.Unlock()
		return
	}
	b.value = value
	snapshot := append([]registration[T](nil), b.observers...)
	b.mutex.Unlock()
	for _, reg := range snapshot {
		reg.sink.Next(value)
	}
}

func (b *Behavior[T]) Stream() stream.Stream[T] {
	return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
		b.mutex.Lock()
		if status.Load(&b.state).Active() {
			value := b.value
			b.mutex.Unlock()
			//replay before attaching: a recursive Next inside this callback
			//must not double-deliver to the subscriber being added
			sink.Next(value)
			return b.attach(sink)
		}
		b.mutex.Unlock()
		return b.attach(sink)
	})
}

func (b *Behavior[T]) Subscribe(destination observer.Observer[T]) *subscription.Subscription {
	return b.Stream().Subscribe(destination)
}
