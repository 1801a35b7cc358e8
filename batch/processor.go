package batch

import "context"

// Processor processes batches of jobs. It is supplied by the application and
// is called by the Collector on a goroutine of its own, outside of any
// Collector lock. Calls may overlap unless ResourceLimits bound them.
type Processor[J Job] interface {
	// Process handles a batch of jobs, in submission order, and returns one
	// Outcome per job. Outcomes may be returned in any order; they are
	// matched to jobs by ID. Jobs without an outcome are left RUNNING,
	// unless Options.FailMissingOutcomes is set.
	//
	// A non-nil error fails the whole batch. See ProcessorErrorPolicy.
	//
	// Process should respect context cancellation, which is used to enforce
	// ResourceLimits.MaxProcessingTime.
	//
	// Example:
	//
	//	func (p *MyProcessor) Process(ctx context.Context, jobs []*EmailJob) ([]batch.Outcome, error) {
	//		sent, err := p.client.SendAll(ctx, jobs)
	//		if err != nil {
	//			return nil, err
	//		}
	//		outcomes := make([]batch.Outcome, 0, len(jobs))
	//		for _, job := range jobs {
	//			if reason, failed := sent.Rejected[job.ID()]; failed {
	//				outcomes = append(outcomes, batch.Failed(job.ID(), reason))
	//				continue
	//			}
	//			outcomes = append(outcomes, batch.Succeeded(job.ID()))
	//		}
	//		return outcomes, nil
	//	}
	Process(ctx context.Context, jobs []J) ([]Outcome, error)
}

// ProcessorFunc adapts an ordinary function to the Processor interface.
type ProcessorFunc[J Job] func(ctx context.Context, jobs []J) ([]Outcome, error)

// Process implements the Processor interface by calling f.
func (f ProcessorFunc[J]) Process(ctx context.Context, jobs []J) ([]Outcome, error) {
	return f(ctx, jobs)
}
