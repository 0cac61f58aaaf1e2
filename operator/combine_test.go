package operator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subject"
)

func TestCombineLatest_WaitsForAllInputs(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	CombineLatest(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	s1.Next(2)
	assert.Empty(t, rec.values)

	s2.Next(10)
	assert.Equal(t, [][]int{{2, 10}}, rec.values)

	s1.Next(3)
	s2.Next(20)
	assert.Equal(t, [][]int{{2, 10}, {3, 10}, {3, 20}}, rec.values)
}

func TestCombineLatest_CompletesAfterAllInputs(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	CombineLatest(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	s2.Next(2)
	s1.Complete()
	assert.False(t, rec.completed)
	s2.Complete()
	assert.True(t, rec.completed)
}

func TestCombineLatest_InputCompletingEmptyCompletesComposite(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	CombineLatest(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	s2.Complete()
	assert.Empty(t, rec.values)
	assert.True(t, rec.completed)
	//the other input was unsubscribed
	assert.Equal(t, 0, s1.Observers())
}

func TestCombineLatest_ErrorCancelsOtherInputs(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	CombineLatest(s1.Stream(), s2.Stream()).Subscribe(rec)

	boom := errors.New("boom")
	s1.Error(boom)
	assert.Equal(t, boom, rec.err)
	assert.Equal(t, 0, s2.Observers())
}

func TestCombineLatest_NoInputs(t *testing.T) {
	rec := &recorder[[]int]{}
	CombineLatest[int]().Subscribe(rec)
	assert.True(t, rec.completed)
	assert.Empty(t, rec.values)
}

func TestJoinAll_EmitsOnceAfterAllComplete(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	JoinAll(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	s1.Next(2)
	s2.Next(10)
	s1.Complete()
	assert.Empty(t, rec.values)

	s2.Complete()
	assert.Equal(t, [][]int{{2, 10}}, rec.values)
	assert.True(t, rec.completed)
}

func TestJoinAll_InputCompletingEmptyMeansNoTuple(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	JoinAll(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	s2.Complete()
	assert.Empty(t, rec.values)
	assert.True(t, rec.completed)
}

func TestJoinAll_ErrorFailsJoin(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[[]int]{}
	JoinAll(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	boom := errors.New("boom")
	s2.Error(boom)
	assert.Equal(t, boom, rec.err)
	assert.Empty(t, rec.values)
	assert.Equal(t, 0, s1.Observers())
}

func TestMerge_InterleavesAndCompletesAfterAll(t *testing.T) {
	s1 := subject.New[int]()
	s2 := subject.New[int]()
	rec := &recorder[int]{}
	Merge(s1.Stream(), s2.Stream()).Subscribe(rec)

	s1.Next(1)
	s2.Next(2)
	s1.Next(3)
	s1.Complete()
	assert.False(t, rec.completed)
	s2.Next(4)
	s2.Complete()

	assert.Equal(t, []int{1, 2, 3, 4}, rec.values)
	assert.True(t, rec.completed)
}

func TestConcat_SequentialSubscription(t *testing.T) {
	rec := &recorder[int]{}
	Concat(stream.Of(1, 2), stream.Of(3), stream.Of(4, 5)).Subscribe(rec)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.values)
	assert.True(t, rec.completed)
}

func TestConcat_SecondStartsOnlyAfterFirstCompletes(t *testing.T) {
	first := subject.New[int]()
	second := subject.New[int]()
	rec := &recorder[int]{}
	Concat(first.Stream(), second.Stream()).Subscribe(rec)

	assert.Equal(t, 1, first.Observers())
	assert.Equal(t, 0, second.Observers())
	first.Next(1)
	first.Complete()
	assert.Equal(t, 1, second.Observers())
	second.Next(2)
	second.Complete()

	assert.Equal(t, []int{1, 2}, rec.values)
	assert.True(t, rec.completed)
}
