package processor

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Channel is a Processor that sends each job to an output channel, and
// reports it as successful once sent. It hands jobs over to another part of
// the program that does the actual work.
//
// Ownership of the output channel remains with the caller. Because the
// processor is unaware of when the Collector has shut down, it does not
// close the channel. The caller who created the channel should close it once
// processing is complete.
type Channel[J batch.Job] struct {
	// Output is the channel that receives each job.
	// If nil, every job succeeds without being sent anywhere.
	Output chan<- J
}

// Process implements the Processor interface by forwarding jobs to the
// Output channel until the context is canceled. Jobs that couldn't be sent
// get no outcome.
//
// The method does not close the Output channel; callers must close it when
// batch processing is finished.
func (p *Channel[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	outcomes := make([]batch.Outcome, 0, len(jobs))

	for _, job := range jobs {
		if p.Output != nil {
			select {
			case <-ctx.Done():
				return outcomes, ctx.Err()
			case p.Output <- job:
			}
		}
		outcomes = append(outcomes, batch.Succeeded(job.ID()))
	}

	return outcomes, nil
}
