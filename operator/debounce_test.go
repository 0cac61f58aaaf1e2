package operator

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/flowrx/reactive/scheduler"
	"github.com/flowrx/reactive/subject"
)

func TestDebounce_OnlySettledValuesForwarded(t *testing.T) {
	v := scheduler.NewVirtual()
	source := subject.New[string]()
	rec := &recorder[string]{}
	Debounce[string](20*time.Millisecond, v)(source.Stream()).Subscribe(rec)

	source.Next("a")
	v.Advance(10 * time.Millisecond)
	//"a" superseded before its window elapsed
	source.Next("b")
	v.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"b"}, rec.values)

	source.Next("c")
	v.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"b", "c"}, rec.values)
}

func TestDebounce_CompletionFlushesPending(t *testing.T) {
	v := scheduler.NewVirtual()
	source := subject.New[string]()
	rec := &recorder[string]{}
	Debounce[string](20*time.Millisecond, v)(source.Stream()).Subscribe(rec)

	source.Next("a")
	source.Complete()
	assert.Equal(t, []string{"a"}, rec.values)
	assert.True(t, rec.completed)
}

func TestDebounce_ErrorDropsPending(t *testing.T) {
	v := scheduler.NewVirtual()
	source := subject.New[string]()
	rec := &recorder[string]{}
	Debounce[string](20*time.Millisecond, v)(source.Stream()).Subscribe(rec)

	source.Next("a")
	boom := errors.New("boom")
	source.Error(boom)
	assert.Empty(t, rec.values)
	assert.Equal(t, boom, rec.err)

	v.Advance(time.Minute)
	assert.Empty(t, rec.values)
}

func TestDebounce_CancelStopsPendingEmission(t *testing.T) {
	v := scheduler.NewVirtual()
	source := subject.New[string]()
	rec := &recorder[string]{}
	sub := Debounce[string](20*time.Millisecond, v)(source.Stream()).Subscribe(rec)

	source.Next("a")
	sub.Cancel()
	v.Advance(time.Minute)
	assert.Empty(t, rec.values)
}
