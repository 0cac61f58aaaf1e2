package operator

import (
	"sync"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// ExhaustMap ignores outer values entirely while an inner stream is
// running; they are dropped, not queued. Once the inner completes the next
// outer value is accepted again.
func ExhaustMap[T, R any](project func(value T) stream.Stream[R]) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			var (
				mutex     sync.Mutex
				busy      bool
				outerDone bool
			)
			parent := sink.Subscription()
			source.SubscribeIn(parent, observer.Funcs[T]{
				OnNext: func(value T) {
					mutex.Lock()
					if busy {
						mutex.Unlock()
						return
					}
					busy = true
					mutex.Unlock()
					inner, err := projectSafe(project, value)
					if err != nil {
						sink.Error(err)
						return
					}
					inner.SubscribeIn(parent, observer.Funcs[R]{
						OnNext:  sink.Next,
						OnError: sink.Error,
						OnComplete: func() {
							mutex.Lock()
							busy = false
							done := outerDone
							mutex.Unlock()
							if done {
								sink.Complete()
							}
						},
					})
				},
				OnError: sink.Error,
				OnComplete: func() {
					mutex.Lock()
					outerDone = true
					done := !busy
					mutex.Unlock()
					if done {
						sink.Complete()
					}
				},
			})
			return nil
		})
	}
}
