package processor

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Error is a Processor that fails a fraction of incoming jobs with the given
// message. The rest succeed.
type Error[J batch.Job] struct {
	// Message is the failure message of each failed job.
	Message string

	// FailFraction controls what fraction of jobs fail, from 0.0 (none) to
	// 1.0 (all). Failures are spread evenly over the batch, so the outcome
	// for a given batch is deterministic.
	FailFraction float64
}

// Fail returns a Processor that fails every job with message.
func Fail[J batch.Job](message string) *Error[J] {
	return &Error[J]{Message: message, FailFraction: 1}
}

// Process implements the Processor interface.
func (p *Error[J]) Process(_ context.Context, jobs []J) ([]batch.Outcome, error) {
	fraction := p.FailFraction
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	outcomes := make([]batch.Outcome, len(jobs))
	for i, job := range jobs {
		// fail whenever the running quota goes up by one
		if int(float64(i+1)*fraction) > int(float64(i)*fraction) {
			outcomes[i] = batch.Failed(job.ID(), p.Message)
			continue
		}
		outcomes[i] = batch.Succeeded(job.ID())
	}
	return outcomes, nil
}
