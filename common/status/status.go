package status

import "sync/atomic"

type Status int64

func (s Status) Active() bool {
	return s == Active
}
func (s Status) Completed() bool {
	return s == Completed
}
func (s Status) Errored() bool {
	return s == Errored
}
func (s Status) Canceled() bool {
	return s == Canceled
}

// Terminal reports whether the status is absorbing: once reached it
// never transitions again.
func (s Status) Terminal() bool {
	return s != Active
}

const (
	Active Status = iota
	Completed
	Errored
	Canceled
)

func CAP(statusPointer *Status, from, to Status) bool {
	return atomic.CompareAndSwapInt64((*int64)(statusPointer), int64(from), int64(to))
}

func Load(statusPointer *Status) Status {
	return Status(atomic.LoadInt64((*int64)(statusPointer)))
}
