// Package metrics instruments streams with tally. It is plain operator
// glue: counters for the three channels, a gauge for concurrently active
// subscriptions and a timer for subscription lifetime.
package metrics

import (
	"time"

	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

// Instrument reports the traffic of the stream it wraps into scope, tagged
// with the given stream name. All subscriptions of the returned stream
// share one set of metrics.
func Instrument[T any](scope tally.Scope, name string) stream.Operator[T, T] {
	tagged := scope.Tagged(map[string]string{"stream": name})
	var (
		emitted   = tagged.Counter("emitted")
		errored   = tagged.Counter("errored")
		completed = tagged.Counter("completed")
		active    = tagged.Gauge("active_subscriptions")
		lifetime  = tagged.Timer("subscription_lifetime")

		activeCount = atomic.NewInt64(0)
	)
	return func(source stream.Stream[T]) stream.Stream[T] {
		return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
			start := time.Now()
			active.Update(float64(activeCount.Inc()))
			source.SubscribeIn(sink.Subscription(), observer.Funcs[T]{
				OnNext: func(value T) {
					emitted.Inc(1)
					sink.Next(value)
				},
				OnError: func(err error) {
					errored.Inc(1)
					sink.Error(err)
				},
				OnComplete: func() {
					completed.Inc(1)
					sink.Complete()
				},
			})
			return func() error {
				active.Update(float64(activeCount.Dec()))
				lifetime.Record(time.Since(start))
				return nil
			}
		})
	}
}
