package operator

import (
	"sync"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// SwitchMap cancels the running inner stream whenever a new outer value
// arrives, so only values of the most recent inner are ever forwarded.
// Superseded inners are canceled, never completed downstream.
func SwitchMap[T, R any](project func(value T) stream.Stream[R]) stream.Operator[T, R] {
	return func(source stream.Stream[T]) stream.Stream[R] {
		return stream.New(func(sink *stream.Subscriber[R]) subscription.Teardown {
			var (
				mutex       sync.Mutex
				generation  int
				current     *subscription.Subscription
				innerActive bool
				outerDone   bool
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
					generation++
					mine := generation
					superseded := current
					current = nil
					innerActive = true
					mutex.Unlock()
					if superseded != nil {
						superseded.Cancel()
					}
					innerSub := inner.SubscribeIn(parent, observer.Funcs[R]{
						OnNext:  sink.Next,
						OnError: sink.Error,
						OnComplete: func() {
							mutex.Lock()
							if mine != generation {
								mutex.Unlock()
								return
							}
							innerActive = false
							current = nil
							done := outerDone
							mutex.Unlock()
							if done {
								sink.Complete()
							}
						},
					})
					mutex.Lock()
					//the inner may have terminated synchronously; only a
					//still-current, still-running inner is retained
					if mine == generation && innerActive {
						current = innerSub
					}
					mutex.Unlock()
				},
				OnError: sink.Error,
				OnComplete: func() {
					mutex.Lock()
					outerDone = true
					done := !innerActive
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
