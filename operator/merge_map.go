package operator

import (
	"sync"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// MergeMap subscribes every projected inner stream immediately and
// interleaves their values in arrival order. The composite completes once
// the outer stream has completed and no inner is left running.
func MergeMap[T, R any](project func(value T) stream.Stream[R]) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			var (
				mutex     sync.Mutex
				active    int
				outerDone bool
			)
			parent := sink.Subscription()
			source.SubscribeIn(parent, observer.Funcs[T]{
				OnNext: func(value T) {
					inner, err := projectSafe(project, value)
					if err != nil {
						sink.Error(err)
						return
					}
					mutex.Lock()
					active++
					mutex.Unlock()
					inner.SubscribeIn(parent, observer.Funcs[R]{
						OnNext:  sink.Next,
						OnError: sink.Error,
						OnComplete: func() {
							mutex.Lock()
							active--
							done := outerDone && active == 0
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
					done := active == 0
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
