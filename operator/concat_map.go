package operator

import (
	"sync"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// ConcatMap runs at most one inner stream at a time. Outer values arriving
// while an inner is active are queued and subscribed in FIFO order, so the
// output preserves strict input order.
func ConcatMap[T, R any](project func(value T) stream.Stream[R]) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			var (
				mutex     sync.Mutex
				queue     []T
				active    bool
				outerDone bool
			)
			parent := sink.Subscription()

			var subscribeInner func(value T)
			subscribeInner = func(value T) {
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
						if len(queue) > 0 {
							next := queue[0]
							queue = queue[1:]
							mutex.Unlock()
							subscribeInner(next)
							return
						}
						active = false
						done := outerDone
						mutex.Unlock()
						if done {
							sink.Complete()
						}
					},
				})
			}

			source.SubscribeIn(parent, observer.Funcs[T]{
				OnNext: func(value T) {
					mutex.Lock()
					if active {
						queue = append(queue, value)
						mutex.Unlock()
						return
					}
					active = true
					mutex.Unlock()
					subscribeInner(value)
				},
				OnError: sink.Error,
				OnComplete: func() {
					mutex.Lock()
					outerDone = true
					done := !active
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
