// Package jobbatch is the root of a micro-batching library. Jobs are
// submitted one at a time and handed to a Processor in batches, either when
// enough of them are pending or when MaxDelay has passed since the previous
// dispatch.
//
// The packages are:
//
//   - batch: the Collector, its configuration, Results, and statistics
//   - processor: ready-made and wrapping Processor implementations
//   - source: feeding a Collector from a channel
//   - sync: blocking Run, Get, and Set calls on top of a Collector
//
// Batch size and max delay interact as follows. A batch is dispatched as
// soon as BatchSize jobs are pending, or once MaxDelay has passed since the
// previous dispatch with at least one job pending. A MaxDelay of zero
// dispatches every job as soon as it is submitted.
//
// For example, with BatchSize 10 and MaxDelay 2s, submitting 25 jobs at once
// dispatches two batches of 10 right away. The remaining 5 are dispatched
// 2s later.
package jobbatch
