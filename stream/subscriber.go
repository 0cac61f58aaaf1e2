package stream

import (
	"go.uber.org/atomic"

	"github.com/flowrx/reactive/common/safe"
	"github.com/flowrx/reactive/hook"
	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/subscription"
)

// Subscriber is the per-subscription sink handed to a Producer. It enforces
// the terminal invariant: after Error or Complete, or after the owning
// subscription was canceled, every further delivery is a no-op. Consumer
// callbacks run through safe.Run; a panicking callback is reported to the
// fallback hook and the subscription is torn down.
type Subscriber[T any] struct {
	destination observer.Observer[T]
	sub         *subscription.Subscription
	terminal    *atomic.Bool
}

func newSubscriber[T any](destination observer.Observer[T], sub *subscription.Subscription) *Subscriber[T] {
	return &Subscriber[T]{
		destination: destination,
		sub:         sub,
		terminal:    atomic.NewBool(false),
	}
}

// Subscription returns the handle owning this execution; producers use it to
// register extra teardowns or adopt inner executions.
func (s *Subscriber[T]) Subscription() *subscription.Subscription {
	return s.sub
}

// Active reports whether the sink still accepts deliveries.
func (s *Subscriber[T]) Active() bool {
	return !s.terminal.Load() && !s.sub.Canceled()
}

func (s *Subscriber[T]) Next(value T) {
	if !s.Active() {
		return
	}
	if err := safe.Run(func() error {
		s.destination.Next(value)
		return nil
	}); err != nil {
		hook.Report(&CallbackError{Channel: "next", Err: err})
		s.sub.Cancel()
	}
}

func (s *Subscriber[T]) Error(err error) {
	if s.sub.Canceled() || !s.terminal.CAS(false, true) {
		return
	}
	if cbErr := safe.Run(func() error {
		s.destination.Error(err)
		return nil
	}); cbErr != nil {
		hook.Report(&CallbackError{Channel: "error", Err: cbErr})
	}
	s.sub.Cancel()
}

func (s *Subscriber[T]) Complete() {
	if s.sub.Canceled() || !s.terminal.CAS(false, true) {
		return
	}
	if cbErr := safe.Run(func() error {
		s.destination.Complete()
		return nil
	}); cbErr != nil {
		hook.Report(&CallbackError{Channel: "complete", Err: cbErr})
	}
	s.sub.Cancel()
}
