package subscription

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/flowrx/reactive/hook"
)

func TestSubscription_CancelRunsInRegistrationOrder(t *testing.T) {
	sub := New()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		sub.Add(func() error {
			order = append(order, i)
			return nil
		})
	}
	sub.Cancel()
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestSubscription_CancelIdempotent(t *testing.T) {
	sub := New()
	count := 0
	sub.Add(func() error {
		count++
		return nil
	})
	sub.Cancel()
	sub.Cancel()
	assert.Equal(t, 1, count)
	assert.True(t, sub.Canceled())
}

func TestSubscription_ReentrantCancel(t *testing.T) {
	sub := New()
	count := 0
	sub.Add(func() error {
		//cancel from inside a teardown must be a safe no-op
		sub.Cancel()
		count++
		return nil
	})
	sub.Cancel()
	assert.Equal(t, 1, count)
}

func TestSubscription_AddAfterCancelRunsImmediately(t *testing.T) {
	sub := New()
	sub.Cancel()
	ran := false
	sub.Add(func() error {
		ran = true
		return nil
	})
	assert.True(t, ran)
}

func TestSubscription_AdoptCancelsChild(t *testing.T) {
	parent := New()
	child := New()
	parent.Adopt(child)
	parent.Cancel()
	assert.True(t, child.Canceled())
}

func TestSubscription_ChildDetachesOnOwnCancel(t *testing.T) {
	parent := New()
	child := New()
	parent.Adopt(child)
	child.Cancel()
	assert.Equal(t, 0, len(parent.records))

	ran := false
	parent.Add(func() error {
		ran = true
		return nil
	})
	parent.Cancel()
	assert.True(t, ran)
}

func TestSubscription_Remove(t *testing.T) {
	sub := New()
	ran := false
	id := sub.Add(func() error {
		ran = true
		return nil
	})
	sub.Remove(id)
	sub.Cancel()
	assert.False(t, ran)
}

func TestSubscription_TeardownErrorsReported(t *testing.T) {
	var reported []error
	hook.Register(func(err error) {
		reported = append(reported, err)
	})
	defer hook.Reset()

	sub := New()
	var order []int
	sub.Add(func() error {
		order = append(order, 0)
		return errors.New("boom")
	})
	sub.Add(func() error {
		order = append(order, 1)
		panic("bang")
	})
	sub.Add(func() error {
		order = append(order, 2)
		return nil
	})
	sub.Cancel()

	//failures never stop sibling teardowns
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 1, len(reported))
	var teardownErr *TeardownError
	assert.ErrorAs(t, reported[0], &teardownErr)
}
