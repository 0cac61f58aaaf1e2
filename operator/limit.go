package operator

import (
	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// Take forwards the first n values then completes, canceling upstream
// before it can produce more. n <= 0 completes without subscribing upstream.
func Take[T any](n int) stream.Operator[T, T] {
	return func(source stream.Stream[T]) stream.Stream[T] {
		return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
			if n <= 0 {
				sink.Complete()
				return nil
			}
			seen := 0
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					seen++
					if seen < n {
						sink.Next(value)
						return
					}
					if seen == n {
						sink.Next(value)
						sink.Complete()
					}
				},
				OnError:    sink.Error,
				OnComplete: sink.Complete,
			})
			return nil
		})
	}
}

// First is Take(1).
func First[T any]() stream.Operator[T, T] {
	return Take[T](1)
}

// DistinctUntilChanged drops values equal to the immediately preceding
// forwarded value. The first value is always forwarded.
func DistinctUntilChanged[T comparable]() stream.Operator[T, T] {
	return DistinctUntilChangedFunc(func(previous, current T) bool {
		return previous == current
	})
}

// DistinctUntilChangedFunc is DistinctUntilChanged with a caller-supplied
// equality policy.
func DistinctUntilChangedFunc[T any](equal func(previous, current T) bool) stream.Operator[T, T] {
	return func(source stream.Stream[T]) stream.Stream[T] {
		return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
			var previous T
			first := true
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					if !first && equal(previous, value) {
						return
					}
					first = false
					previous = value
					sink.Next(value)
				},
				OnError:    sink.Error,
				OnComplete: sink.Complete,
			})
			return nil
		})
	}
}
