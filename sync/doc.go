// Package sync provides synchronous, blocking APIs built on top of the
// jobbatch Collector. Callers make what looks like a single call, and the
// calls are batched together behind the scenes.
//
// Runner wraps an existing Collector: Run submits one job and blocks until
// its batch has been processed, returning the job's Outcome.
//
//	c, err := batch.New(config, processor)
//	if err != nil {
//		return err
//	}
//	defer c.Shutdown()
//
//	runner := sync.NewRunner(c)
//	outcome, err := runner.Run(ctx, job)
//
// BatchReader and BatchWriter go one step further and own their Collector.
// They provide Get and Set methods on top of a user-supplied batched read or
// write function:
//
//	readFunc := func(ctx context.Context, keys []string) (map[string]string, error) {
//		return db.BatchGet(ctx, keys)
//	}
//
//	config := batch.NewConstantConfig(&batch.ConfigValues{
//		BatchSize: 10,
//		MaxDelay:  50 * time.Millisecond,
//	})
//	reader, err := sync.NewBatchReader(config, readFunc)
//	if err != nil {
//		return err
//	}
//	defer reader.Close()
//
//	value, err := reader.Get(ctx, "key1")
//
// The sync package handles:
//   - Per-request context cancellation
//   - Error propagation (both whole-batch errors and per-job failures)
//   - Graceful shutdown
package sync
