package scheduler

import (
	"container/heap"
	"sync"
	"time"
)

type scheduledJob struct {
	due time.Time
	seq uint64
	job *Job
}

// jobQueue is a priority queue sorted by due time, ties broken by
// scheduling order so equal-time jobs run in the order they were scheduled.
type jobQueue struct {
	items []scheduledJob
}

//---------------------------------------------------------------------------------
//Warning: Do not call directly, expose the function only for the heap package to use
//---------------------------------------------------------------------------------

func (q *jobQueue) Less(i, j int) bool {
	if q.items[i].due.Equal(q.items[j].due) {
		return q.items[i].seq < q.items[j].seq
	}
	return q.items[i].due.Before(q.items[j].due)
}

func (q *jobQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *jobQueue) Push(x any) {
	q.items = append(q.items, x.(scheduledJob))
}

func (q *jobQueue) Pop() any {
	old := q.items
	n := len(old)
	x := old[n-1]
	q.items = old[0 : n-1]
	return x
}

//---------------------------------------------------------------------------------

func (q *jobQueue) Len() int {
	return len(q.items)
}

func (q *jobQueue) PushJob(item scheduledJob) {
	heap.Push(q, item)
}

func (q *jobQueue) PopJob() scheduledJob {
	return heap.Pop(q).(scheduledJob)
}

func (q *jobQueue) PeekJob() scheduledJob {
	return q.items[0]
}

// Virtual is a manually advanced scheduler for tests and deterministic
// replay. Nothing runs until Advance moves the clock past a job's due time.
type Virtual struct {
	mutex sync.Mutex
	now   time.Time
	seq   uint64
	queue *jobQueue
}

func NewVirtual() *Virtual {
	return &Virtual{
		now:   time.Unix(0, 0),
		queue: &jobQueue{},
	}
}

func (v *Virtual) Now() time.Time {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.now
}

func (v *Virtual) Schedule(delay time.Duration, fn func()) *Job {
	job := newJob(fn)
	v.mutex.Lock()
	v.seq++
	v.queue.PushJob(scheduledJob{due: v.now.Add(delay), seq: v.seq, job: job})
	v.mutex.Unlock()
	return job
}

// Advance moves the clock forward by d, executing every due job in
// timestamp order. Jobs scheduled while advancing run too when they fall
// inside the window.
func (v *Virtual) Advance(d time.Duration) {
	v.mutex.Lock()
	target := v.now.Add(d)
	for v.queue.Len() > 0 && !v.queue.PeekJob().due.After(target) {
		item := v.queue.PopJob()
		v.now = item.due
		//execute without the lock, jobs may schedule follow-ups
		v.mutex.Unlock()
		item.job.Exec()
		v.mutex.Lock()
	}
	v.now = target
	v.mutex.Unlock()
}

// Pending returns the number of jobs still waiting, canceled ones included
// until their due time passes.
func (v *Virtual) Pending() int {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.queue.Len()
}
