// Package source connects job producers to a batch.Collector.
//
// Channel reads jobs from a channel and submits them one by one, handing
// back each job's Result on an output channel:
//
//	src := &source.Channel[*EmailJob]{Input: jobs, Buffer: 100}
//	results := src.Feed(ctx, collector)
//	for res := range results {
//		go report(res)
//	}
//
// Slice builds a Channel from a fixed set of jobs, and Wait collects the
// Results of a Feed and blocks until they are all complete.
package source
