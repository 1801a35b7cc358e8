package processor

import (
	"context"
	"time"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Nil is a Processor that reports every job as successful after waiting for
// Duration. It can be used as a mock Processor.
type Nil[J batch.Job] struct {
	// Duration is how long Process waits before returning. If the context
	// is done first, Process returns its error instead.
	Duration time.Duration

	next batch.Processor[J]
}

// Succeed returns a Processor that immediately reports every job as
// successful.
func Succeed[J batch.Job]() *Nil[J] {
	return &Nil[J]{}
}

// Delay returns a Processor that waits for d, then hands the batch to next.
// If next is nil every job succeeds.
func Delay[J batch.Job](d time.Duration, next batch.Processor[J]) *Nil[J] {
	return &Nil[J]{Duration: d, next: next}
}

// Process implements the Processor interface.
func (p *Nil[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	if p.Duration > 0 {
		timer := time.NewTimer(p.Duration)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if p.next != nil {
		return p.next.Process(ctx, jobs)
	}

	outcomes := make([]batch.Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i] = batch.Succeeded(job.ID())
	}
	return outcomes, nil
}
