package batch

import (
	"context"
	"sync"
	"time"
)

// Result tracks the status of a single submitted Job. It is created by
// Collector.Submit in StatusPending and is only ever written by the
// Collector; callers read it and wait on it.
//
// Once a Result reaches a terminal status it never changes again.
type Result struct {
	id ID

	mu      sync.RWMutex
	status  Status
	message string
	done    chan struct{} // closed once terminal
}

func newResult(id ID) *Result {
	return &Result{
		id:   id,
		done: make(chan struct{}),
	}
}

// ID returns the ID of the job this Result belongs to.
func (r *Result) ID() ID {
	return r.id
}

// Status returns the current status of the job.
func (r *Result) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// FailureMessage returns the message describing why the job failed. The
// second return value is false unless the job has failed with a non-empty
// message.
func (r *Result) FailureMessage() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.status != StatusFail || r.message == "" {
		return "", false
	}
	return r.message, true
}

// Outcome returns a snapshot of the Result as an Outcome.
func (r *Result) Outcome() Outcome {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Outcome{JobID: r.id, Status: r.status, Message: r.message}
}

// Wait blocks until the job completes or timeout elapses, whichever is first,
// and reports whether the job completed. It never changes the status of the
// job. A non-positive timeout doesn't block.
//
// Example:
//
//	res := collector.Submit(job)
//	if !res.Wait(time.Second) {
//		log.Printf("job %s still %s", res.ID(), res.Status())
//	}
func (r *Result) Wait(timeout time.Duration) bool {
	if timeout <= 0 {
		return r.isDone()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.done:
		return true
	case <-timer.C:
		return r.isDone()
	}
}

// WaitContext blocks until the job completes, or ctx is done. In the latter
// case ctx.Err() is returned and the job's status is left untouched.
func (r *Result) WaitContext(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	default:
	}

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Result) isDone() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// markRunning moves a pending result to StatusRunning. It is a no-op for any
// other status.
func (r *Result) markRunning() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == StatusPending {
		r.status = StatusRunning
	}
}

// complete applies a terminal status and wakes all waiters. It returns false
// if the result was already terminal or status isn't terminal, in which case
// nothing changes.
func (r *Result) complete(status Status, message string) bool {
	if !status.IsComplete() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.IsComplete() {
		return false
	}

	r.status = status
	if status == StatusFail {
		r.message = message
	}
	close(r.done)
	return true
}
