// Package operator holds the stream transformations: the mapping/filtering
// utilities, the time-based operators and the flattening/combination
// families. Every operator is a pure func from stream to stream; all state
// is created inside the produced stream, once per subscription.
package operator

import (
	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

func Map[T, R any](fn func(value T) R) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					sink.Next(fn(value))
				},
				OnError:    sink.Error,
				OnComplete: sink.Complete,
			})
			return nil
		})
	}
}

func Filter[T any](fn func(value T) bool) stream.Operator[T, T] {
	return func(source stream.Stream[T]) stream.Stream[T] {
		return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					if fn(value) {
						sink.Next(value)
					}
				},
				OnError:    sink.Error,
				OnComplete: sink.Complete,
			})
			return nil
		})
	}
}

// Tap runs fn for every value without altering the stream.
func Tap[T any](fn func(value T)) stream.Operator[T, T] {
	return func(source stream.Stream[T]) stream.Stream[T] {
		return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					fn(value)
					sink.Next(value)
				},
				OnError:    sink.Error,
				OnComplete: sink.Complete,
			})
			return nil
		})
	}
}

// Scan emits the running accumulation for every upstream value.
func Scan[T, R any](seed R, fn func(acc R, value T) R) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			acc := seed
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					acc = fn(acc, value)
					sink.Next(acc)
				},
				OnError:    sink.Error,
				OnComplete: sink.Complete,
			})
			return nil
		})
	}
}

// Reduce emits only the final accumulation, on upstream completion.
func Reduce[T, R any](seed R, fn func(acc R, value T) R) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			acc := seed
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					acc = fn(acc, value)
				},
				OnError: sink.Error,
				OnComplete: func() {
					sink.Next(acc)
					sink.Complete()
				},
			})
			return nil
		})
	}
}
