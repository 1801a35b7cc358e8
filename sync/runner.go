package sync

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Runner makes single submissions to a Collector look synchronous: Run
// blocks until the job's batch has been processed.
type Runner[J batch.Job] struct {
	collector *batch.Collector[J]
}

// NewRunner returns a Runner submitting to c. The caller keeps ownership of
// c and is responsible for shutting it down.
func NewRunner[J batch.Job](c *batch.Collector[J]) *Runner[J] {
	return &Runner[J]{collector: c}
}

// Run submits job and waits until it completes or ctx is done.
//
// On success the job's Outcome is returned with a nil error. If the job
// failed, the Outcome is returned along with an *batch.OutcomeError. If ctx
// is done first, the current snapshot (PENDING or RUNNING) is returned with
// ctx.Err(); the job itself stays queued and is still processed.
func (r *Runner[J]) Run(ctx context.Context, job J) (batch.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	res := r.collector.Submit(job)
	if err := res.WaitContext(ctx); err != nil {
		return res.Outcome(), err
	}

	outcome := res.Outcome()
	if outcome.Status == batch.StatusFail {
		return outcome, &batch.OutcomeError{JobID: outcome.JobID, Message: outcome.Message}
	}
	return outcome, nil
}
