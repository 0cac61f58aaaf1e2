// Package subject implements the multicast stream variants: a Subject is
// simultaneously a stream (many observers share one execution) and an
// observer (values are pushed into it from outside).
package subject

import (
	"sync"

	"github.com/bwmarrin/snowflake"

	"github.com/flowrx/reactive/common/status"
	"github.com/flowrx/reactive/hook"
	"github.com/flowrx/reactive/observer"
	"github.com/flowrx/reactive/stream"
	"github.com/flowrx/reactive/subscription"
)

type registration[T any] struct {
	id   snowflake.ID
	sink observer.Observer[T]
}

// Subject multicasts every Next call to all currently subscribed observers
// in subscription order. Once terminal it stays terminal: the cached signal
// is replayed to every late subscriber and further input is dropped.
type Subject[T any] struct {
	mutex sync.Mutex
	state status.Status
	err   error
	//insertion ordered; broadcasts iterate a snapshot so observers may
	//unsubscribe themselves mid-broadcast
	observers []registration[T]
}

func New[T any]() *Subject[T] {
	return &Subject[T]{}
}

func (s *Subject[T]) Next(value T) {
	s.mutex.Lock()
	if !status.Load(&s.state).Active() {
		s.mutex.Unlock()
		return
	}
	snapshot := append([]registration[T](nil), s.observers...)
	s.mutex.Unlock()
	for _, reg := range snapshot {
		reg.sink.Next(value)
	}
}

func (s *Subject[T]) Error(err error) {
	s.mutex.Lock()
	if !status.CAP(&s.state, status.Active, status.Errored) {
		s.mutex.Unlock()
		return
	}
	s.err = err
	snapshot := s.observers
	s.observers = nil
	s.mutex.Unlock()
	if len(snapshot) == 0 {
		//nobody left to tell, don't lose the error
		hook.Report(&UnhandledError{Err: err})
		return
	}
	for _, reg := range snapshot {
		reg.sink.Error(err)
	}
}

func (s *Subject[T]) Complete() {
	s.mutex.Lock()
	if !status.CAP(&s.state, status.Active, status.Completed) {
		s.mutex.Unlock()
		return
	}
	snapshot := s.observers
	s.observers = nil
	s.mutex.Unlock()
	for _, reg := range snapshot {
		reg.sink.Complete()
	}
}

// Stream exposes the subject's hot side: subscribing attaches to the shared
// observer set instead of starting a new execution.
func (s *Subject[T]) Stream() stream.Stream[T] {
	return stream.New(func(sink *stream.Subscriber[T]) subscription.Teardown {
		return s.attach(sink)
	})
}

func (s *Subject[T]) Subscribe(destination observer.Observer[T]) *subscription.Subscription {
	return s.Stream().Subscribe(destination)
}

// Observers returns the current observer count.
func (s *Subject[T]) Observers() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.observers)
}

func (s *Subject[T]) attach(sink *stream.Subscriber[T]) subscription.Teardown {
	s.mutex.Lock()
	switch status.Load(&s.state) {
	case status.Errored:
		err := s.err
		s.mutex.Unlock()
		sink.Error(err)
		return nil
	case status.Completed:
		s.mutex.Unlock()
		sink.Complete()
		return nil
	}
	id := subscription.NextID()
	s.observers = append(s.observers, registration[T]{id: id, sink: sink})
	s.mutex.Unlock()
	return func() error {
		s.remove(id)
		return nil
	}
}

func (s *Subject[T]) remove(id snowflake.ID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, reg := range s.observers {
		if reg.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}
