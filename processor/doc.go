// Package processor contains several implementations of the batch.Processor
// interface for common scenarios, including:
//
// - LoggingProcessor, StatsProcessor, MetricsProcessor: decorators that log, count, or
// record OpenTelemetry metrics for each call of a wrapped Processor
// - Strict: For checking that a Processor returns exactly one outcome per job
// - Filter: For rejecting jobs based on custom predicates
// - Channel: For handing jobs over to an output channel
// - Collect: For recording the batches a Collector dispatched
// - Nil, Error: For testing, succeeding or failing jobs after an optional delay
//
// Decorators wrap any Processor and can be stacked:
//
//	p := processor.WrapWithLogging(
//		processor.WrapWithMetricsDefault(&processor.Strict[*EmailJob]{Processor: sender}),
//		logger, "sender")
//
//	c, err := batch.New[*EmailJob](config, p)
package processor
