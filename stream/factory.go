package stream

import (
	"sync"
	"time"

	"github.com/flowrx/reactive/scheduler"
	"github.com/flowrx/reactive/subscription"
)

// Of emits the given values synchronously and completes.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromSlice emits every element of the slice in order, then completes. The
// emission loop stops as soon as the sink turns inactive, so a consumer
// canceling mid-way sees no further values.
func FromSlice[T any](values []T) Stream[T] {
	return New(func(sink *Subscriber[T]) subscription.Teardown {
		for _, value := range values {
			if !sink.Active() {
				return nil
			}
			sink.Next(value)
		}
		sink.Complete()
		return nil
	})
}

// FromChannel forwards everything received on ch until it closes, then
// completes. Reading happens on a dedicated goroutine; canceling the
// subscription stops forwarding but does not drain the channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return New(func(sink *Subscriber[T]) subscription.Teardown {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case value, ok := <-ch:
					if !ok {
						sink.Complete()
						return
					}
					sink.Next(value)
				}
			}
		}()
		var once sync.Once
		return func() error {
			once.Do(func() {
				close(done)
			})
			return nil
		}
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Stream[T] {
	return New(func(sink *Subscriber[T]) subscription.Teardown {
		sink.Complete()
		return nil
	})
}

// Never emits nothing and never terminates.
func Never[T any]() Stream[T] {
	return New(func(_ *Subscriber[T]) subscription.Teardown {
		return nil
	})
}

// Throw errors immediately with err.
func Throw[T any](err error) Stream[T] {
	return New(func(sink *Subscriber[T]) subscription.Teardown {
		sink.Error(err)
		return nil
	})
}

// Interval emits 0,1,2,... every period on the given scheduler. It never
// completes on its own.
func Interval(period time.Duration, sched scheduler.Scheduler) Stream[int] {
	return New(func(sink *Subscriber[int]) subscription.Teardown {
		var (
			mutex sync.Mutex
			job   *scheduler.Job
			count int
		)
		var tick func()
		tick = func() {
			mutex.Lock()
			i := count
			count++
			mutex.Unlock()
			sink.Next(i)
			mutex.Lock()
			defer mutex.Unlock()
			if sink.Active() {
				job = sched.Schedule(period, tick)
			}
		}
		mutex.Lock()
		job = sched.Schedule(period, tick)
		mutex.Unlock()
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

// Timer emits a single 0 after delay, then completes.
func Timer(delay time.Duration, sched scheduler.Scheduler) Stream[int] {
	return New(func(sink *Subscriber[int]) subscription.Teardown {
		job := sched.Schedule(delay, func() {
			sink.Next(0)
			sink.Complete()
		})
		return func() error {
			job.Cancel()
			return nil
		}
	})
}
