package metrics

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally/v4"

	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
)

func TestInstrument_CountsEmissions(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	instrumented := stream.Of(1, 2, 3).Pipe(Instrument[int](scope, "numbers"))

	var values []int
	instrumented.On(func(value int) {
		values = append(values, value)
	}, nil, nil)

	assert.Equal(t, []int{1, 2, 3}, values)
	snapshot := scope.Snapshot()
	counters := snapshot.Counters()
	assert.Equal(t, int64(3), counters["emitted+stream=numbers"].Value())
	assert.Equal(t, int64(1), counters["completed+stream=numbers"].Value())
}

func TestInstrument_CountsErrors(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	boom := errors.New("boom")
	instrumented := stream.Throw[int](boom).Pipe(Instrument[int](scope, "failing"))

	var got error
	instrumented.Subscribe(observer.Funcs[int]{OnError: func(err error) {
		got = err
	}})

	assert.Equal(t, boom, got)
	snapshot := scope.Snapshot()
	assert.Equal(t, int64(1), snapshot.Counters()["errored+stream=failing"].Value())
}

func TestInstrument_RecordsLifetime(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	instrumented := stream.Of(1).Pipe(Instrument[int](scope, "short"))
	instrumented.Subscribe(observer.Noop[int]{})

	snapshot := scope.Snapshot()
	timers := snapshot.Timers()
	assert.Equal(t, 1, len(timers["subscription_lifetime+stream=short"].Values()))
}
