package operator

import (
	"sync"
	"time"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/scheduler"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// Debounce forwards a value only after duration has passed without a newer
// one arriving. Upstream completion flushes the pending value before the
// completion is forwarded.
func Debounce[T any](duration time.Duration, sched scheduler.Scheduler) stream.Operator[T, T] {
	return func(source stream.Stream[T]) stream.Stream[T] {
		return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
			var (
				mutex   sync.Mutex
				job     *scheduler.Job
				pending T
				has     bool
			)
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					mutex.Lock()
					if job != nil {
						job.Cancel()
					}
					pending = value
					has = true
					job = sched.Schedule(duration, func() {
						mutex.Lock()
						if !has {
							mutex.Unlock()
							return
						}
						flush := pending
						has = false
						mutex.Unlock()
						sink.Next(flush)
					})
					mutex.Unlock()
				},
				OnError: func(err error) {
					mutex.Lock()
					if job != nil {
						job.Cancel()
					}
					has = false
					mutex.Unlock()
					sink.Error(err)
				},
				OnComplete: func() {
					mutex.Lock()
					if job != nil {
						job.Cancel()
					}
					flush := pending
					doFlush := has
					has = false
					mutex.Unlock()
					if doFlush {
						sink.Next(flush)
					}
					sink.Complete()
				},
			})
			return func() error {
				mutex.Lock()
				defer mutex.Unlock()
				if job != nil {
					job.Cancel()
				}
				return nil
			}
		})
	}
}
