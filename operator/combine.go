package operator

import (
	"sync"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// CombineLatest emits a tuple of the latest values of all sources each time
// any source emits, starting once every source has emitted at least once.
// A source completing without ever emitting completes the composite with no
// values; any source error errors the composite and cancels the rest.
func CombineLatest[T any](sources ...stream.Stream[T]) stream.Stream[[]T] {
	return stream.New(func(sink *stream.Subscriber[[]T]) subscription.Teardown {
		n := len(sources)
		if n == 0 {
			sink.Complete()
			return nil
		}
		var (
			mutex     sync.Mutex
			latest    = make([]T, n)
			has       = make([]bool, n)
			filled    int
			completed int
			emitted   bool
		)
		for i, source := range sources {
			i := i
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					mutex.Lock()
					if !has[i] {
						has[i] = true
						filled++
					}
					latest[i] = value
					var tuple []T
					if filled == n {
						tuple = append([]T(nil), latest...)
						emitted = true
					}
					mutex.Unlock()
					if tuple != nil {
						sink.Next(tuple)
					}
				},
				OnError: sink.Error,
				OnComplete: func() {
					mutex.Lock()
					neverEmitted := !has[i]
					completed++
					allDone := completed == n && emitted
					mutex.Unlock()
					if neverEmitted || allDone {
						sink.Complete()
					}
				},
			})
		}
		return nil
	})
}

// JoinAll subscribes to all sources concurrently and emits exactly one
// tuple of their final values once every source has completed. A source
// erroring or completing empty means no tuple is ever emitted.
func JoinAll[T any](sources ...stream.Stream[T]) stream.Stream[[]T] {
	return stream.New(func(sink *stream.Subscriber[[]T]) subscription.Teardown {
		n := len(sources)
		if n == 0 {
			sink.Complete()
			return nil
		}
		var (
			mutex     sync.Mutex
			latest    = make([]T, n)
			has       = make([]bool, n)
			completed int
		)
		for i, source := range sources {
			i := i
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					mutex.Lock()
					latest[i] = value
					has[i] = true
					mutex.Unlock()
				},
				OnError: sink.Error,
				OnComplete: func() {
					mutex.Lock()
					if !has[i] {
						mutex.Unlock()
						//joined on a source that never emitted: no tuple
						sink.Complete()
						return
					}
					completed++
					allDone := completed == n
					var tuple []T
					if allDone {
						tuple = append([]T(nil), latest...)
					}
					mutex.Unlock()
					if allDone {
						sink.Next(tuple)
						sink.Complete()
					}
				},
			})
		}
		return nil
	})
}

// Merge interleaves all sources concurrently, completing after every source
// has completed.
func Merge[T any](sources ...stream.Stream[T]) stream.Stream[T] {
	return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
		n := len(sources)
		if n == 0 {
			sink.Complete()
			return nil
		}
		var (
			mutex     sync.Mutex
			completed int
		)
		for _, source := range sources {
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext:  sink.Next,
				OnError: sink.Error,
				OnComplete: func() {
					mutex.Lock()
					completed++
					done := completed == n
					mutex.Unlock()
					if done {
						sink.Complete()
					}
				},
			})
		}
		return nil
	})
}

// Concat subscribes the sources one after another, each waiting for the
// previous one to complete.
func Concat[T any](sources ...stream.Stream[T]) stream.Stream[T] {
	return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
		var subscribeFrom func(index int)
		subscribeFrom = func(index int) {
			if index >= len(sources) {
				sink.Complete()
				return
			}
			sources[index].SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext:  sink.Next,
				OnError: sink.Error,
				OnComplete: func() {
					subscribeFrom(index + 1)
				},
			})
		}
		subscribeFrom(0)
		return nil
	})
}
