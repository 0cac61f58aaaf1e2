// Package scheduler is the pluggable time authority of the stream core.
// Time-based operators never touch the clock directly; they ask a Scheduler
// to run a func after a delay and get back a cancelable one-shot Job.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

type Scheduler interface {
	Now() time.Time
	//Schedule runs fn once after delay, unless the returned Job is canceled first
	Schedule(delay time.Duration, fn func()) *Job
}

// Job is a one-shot scheduled execution: it either executes or is canceled,
// never both.
type Job struct {
	fn func()
	//0:no process //1: executed //2: canceled
	status uint32
	done   chan struct{}

	mutex sync.Mutex
	stop  func()
}

func newJob(fn func()) *Job {
	return &Job{
		fn:   fn,
		done: make(chan struct{}),
	}
}

func (j *Job) Cancel() bool {
	if atomic.CompareAndSwapUint32(&j.status, 0, 2) {
		close(j.done)
		j.mutex.Lock()
		stop := j.stop
		j.mutex.Unlock()
		if stop != nil {
			stop()
		}
		return true
	}
	return false
}

func (j *Job) Canceled() bool {
	return atomic.LoadUint32(&j.status) == 2
}

func (j *Job) Executed() bool {
	return atomic.LoadUint32(&j.status) == 1
}

func (j *Job) Exec() bool {
	if atomic.CompareAndSwapUint32(&j.status, 0, 1) {
		defer close(j.done)
		j.fn()
		return true
	}
	return false
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

func (j *Job) setStop(stop func()) {
	j.mutex.Lock()
	j.stop = stop
	j.mutex.Unlock()
}

type realScheduler struct{}

func (realScheduler) Now() time.Time {
	return time.Now()
}

func (realScheduler) Schedule(delay time.Duration, fn func()) *Job {
	job := newJob(fn)
	timer := time.AfterFunc(delay, func() {
		job.Exec()
	})
	job.setStop(func() {
		timer.Stop()
	})
	return job
}

var real Scheduler = realScheduler{}

// Real returns the wall-clock scheduler backed by time.AfterFunc.
func Real() Scheduler {
	return real
}
