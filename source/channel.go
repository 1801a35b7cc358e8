package source

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Channel feeds jobs read from a channel into a Collector.
type Channel[J batch.Job] struct {
	// Input is read until it is closed.
	Input <-chan J

	// Buffer is the capacity of the Result channel returned by Feed.
	Buffer int
}

// Slice returns a Channel whose Input yields jobs in order and is then
// closed.
func Slice[J batch.Job](jobs []J) *Channel[J] {
	input := make(chan J, len(jobs))
	for _, job := range jobs {
		input <- job
	}
	close(input)
	return &Channel[J]{Input: input, Buffer: len(jobs)}
}

// Feed submits every job received from Input to c, in order, until Input is
// closed or ctx is done. The Result of each submitted job is sent on the
// returned channel, which is closed when Feed stops.
//
// Jobs already submitted when ctx is done are not withdrawn; the Collector
// still processes them.
func (s *Channel[J]) Feed(ctx context.Context, c *batch.Collector[J]) <-chan *batch.Result {
	buf := s.Buffer
	if buf < 0 {
		buf = 0
	}
	out := make(chan *batch.Result, buf)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-s.Input:
				if !ok {
					return
				}
				select {
				case out <- c.Submit(job):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Wait blocks until every Result received from results is complete, or ctx
// is done. It returns the Results in the order they were received.
func Wait(ctx context.Context, results <-chan *batch.Result) ([]*batch.Result, error) {
	var all []*batch.Result
	for res := range results {
		all = append(all, res)
	}
	for _, res := range all {
		if err := res.WaitContext(ctx); err != nil {
			return all, err
		}
	}
	return all, nil
}
