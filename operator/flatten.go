package operator

import (
	"github.com/flowrx/reactive/common/safe"
	"github.com/flowrx/reactive/stream"
)

// The flattening operators map every outer value to an inner stream and
// differ only in how inner streams are scheduled against each other:
//
//	MergeMap    subscribe immediately, unbounded concurrency
//	ConcatMap   queue, one inner at a time, FIFO
//	SwitchMap   cancel the running inner, newest wins
//	ExhaustMap  drop outer values while an inner is running
//
// An error from the outer stream or any subscribed inner errors the
// composite and cancels everything else through the shared subscription.

func projectSafe[T, R any](project func(T) stream.Stream[R], value T) (inner stream.Stream[R], err error) {
	err = safe.Run(func() error {
		inner = project(value)
		return nil
	})
	return inner, err
}
