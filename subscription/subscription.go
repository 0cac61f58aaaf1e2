// Package subscription tracks the cleanup side of a running stream
// execution. A Subscription is an arena record with a stable id, a one-shot
// cancel flag and an ordered set of teardowns and child subscriptions.
package subscription

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/flowrx/reactive/common/safe"
	"github.com/flowrx/reactive/common/status"
	"github.com/flowrx/reactive/hook"
)

// Teardown is a single cleanup action: closing a timer, unsubscribing
// upstream, releasing a resource.
type Teardown func() error

var node *snowflake.Node

func init() {
	var err error
	if node, err = snowflake.NewNode(1); err != nil {
		panic(errors.WithMessage(err, "failed to init subscription id node"))
	}
}

// NextID hands out a process-unique id from the shared snowflake node.
// Subjects use it to key observer registrations the same way subscriptions
// key their records.
func NextID() snowflake.ID {
	return node.Generate()
}

type record struct {
	id       snowflake.ID
	teardown Teardown
}

// Subscription owns the teardowns of one stream execution. Cancel is
// idempotent, re-entrant safe and runs teardowns in registration order,
// exactly once.
type Subscription struct {
	id    snowflake.ID
	state status.Status

	mutex   sync.Mutex
	records []record
	//detach removes this subscription from its parent after cancellation
	detach func()
}

func New() *Subscription {
	return &Subscription{id: node.Generate()}
}

func (s *Subscription) ID() snowflake.ID {
	return s.id
}

// Canceled reports whether Cancel has been called, directly or through a
// parent.
func (s *Subscription) Canceled() bool {
	return status.Load(&s.state).Canceled()
}

// Add registers a teardown and returns its id for later removal. When the
// subscription is already canceled the teardown runs immediately.
func (s *Subscription) Add(teardown Teardown) snowflake.ID {
	if teardown == nil {
		return 0
	}
	id := node.Generate()
	s.mutex.Lock()
	if s.Canceled() {
		s.mutex.Unlock()
		if err := s.run(record{id: id, teardown: teardown}); err != nil {
			hook.Report(&TeardownError{Err: err})
		}
		return id
	}
	s.records = append(s.records, record{id: id, teardown: teardown})
	s.mutex.Unlock()
	return id
}

// Adopt links child so that canceling s cancels child. The child detaches
// itself once it is canceled on its own, so drained inner subscriptions do
// not accumulate.
func (s *Subscription) Adopt(child *Subscription) {
	if child == nil || child == s {
		return
	}
	id := s.Add(func() error {
		child.Cancel()
		return nil
	})
	child.mutex.Lock()
	child.detach = func() { s.Remove(id) }
	canceled := child.Canceled()
	child.mutex.Unlock()
	if canceled {
		s.Remove(id)
	}
}

// Remove drops a registered teardown without running it.
func (s *Subscription) Remove(id snowflake.ID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, r := range s.records {
		if r.id == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}

// Cancel tears the subscription down exactly once. Repeated or re-entrant
// calls are no-ops. Teardown failures never stop sibling teardowns; they are
// collected and reported to the fallback hook.
func (s *Subscription) Cancel() {
	if !status.CAP(&s.state, status.Active, status.Canceled) {
		return
	}
	s.mutex.Lock()
	records := s.records
	s.records = nil
	detach := s.detach
	s.detach = nil
	s.mutex.Unlock()

	var err error
	for _, r := range records {
		err = multierr.Append(err, s.run(r))
	}
	if err != nil {
		hook.Report(&TeardownError{Err: err})
	}
	if detach != nil {
		detach()
	}
}

func (s *Subscription) run(r record) error {
	return safe.Run(func() error {
		return r.teardown()
	})
}
