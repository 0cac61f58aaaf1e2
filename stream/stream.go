// Package stream implements the lazy, cancellable push stream core. A
// Stream is an immutable descriptor around a Producer; every Subscribe call
// runs the producer again with a fresh Subscriber and Subscription.
package stream

import (
	"github.com/flowrx/reactive/common/safe"
	"github.com/flowrx/reactive/hook"
	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/subscription"
)

// Producer generates the values of one stream execution. It receives the
// per-subscription Subscriber and may return a teardown that releases
// whatever the execution holds open.
type Producer[T any] func(sink *Subscriber[T]) subscription.Teardown

// Operator is a pure stream transformation. Any state it needs lives inside
// the stream it returns, scoped to a single subscription.
type Operator[T, R any] func(source Stream[T]) Stream[R]

type Stream[T any] struct {
	producer Producer[T]
}

func New[T any](producer Producer[T]) Stream[T] {
	return Stream[T]{producer: producer}
}

// Subscribe runs the producer synchronously and returns the handle that
// cancels the execution.
func (s Stream[T]) Subscribe(destination observer.Observer[T]) *subscription.Subscription {
	sub := subscription.New()
	s.subscribeWith(sub, destination)
	return sub
}

// SubscribeIn is Subscribe with the new execution adopted as a child of
// parent before the producer runs, so canceling parent reaches this
// execution even while it is still emitting synchronously.
func (s Stream[T]) SubscribeIn(parent *subscription.Subscription, destination observer.Observer[T]) *subscription.Subscription {
	child := subscription.New()
	parent.Adopt(child)
	s.subscribeWith(child, destination)
	return child
}

// On wraps the three callbacks into an Observer. A nil onError routes
// uncaught stream errors to the fallback hook.
func (s Stream[T]) On(next func(value T), onError func(err error), complete func()) *subscription.Subscription {
	if onError == nil {
		onError = func(err error) {
			hook.Report(err)
		}
	}
	return s.Subscribe(observer.Funcs[T]{OnNext: next, OnError: onError, OnComplete: complete})
}

// Pipe composes same-typed operators left to right. Type-changing operators
// compose by plain application, Operator being an ordinary function.
func (s Stream[T]) Pipe(operators ...Operator[T, T]) Stream[T] {
	out := s
	for _, apply := range operators {
		out = apply(out)
	}
	return out
}

func (s Stream[T]) subscribeWith(sub *subscription.Subscription, destination observer.Observer[T]) {
	sink := newSubscriber(destination, sub)
	var teardown subscription.Teardown
	if err := safe.Run(func() error {
		teardown = s.producer(sink)
		return nil
	}); err != nil {
		//a panicking producer errors the stream it was producing
		sink.Error(err)
	}
	if teardown != nil {
		sub.Add(teardown)
	}
}
