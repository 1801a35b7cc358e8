package sync

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// BatchWriter provides synchronous write operations that are batched behind the scenes.
// It uses generics to provide type safety for keys and values.
type BatchWriter[K comparable, V any] struct {
	collector *batch.Collector[*writeRequest[K, V]]
	runner    *Runner[*writeRequest[K, V]]
}

// NewBatchWriter creates a new BatchWriter with the specified configuration and write function.
// The writeFunc will be called with batches of key-value pairs to write.
func NewBatchWriter[K comparable, V any](config batch.Config, writeFunc WriteFunc[K, V]) (*BatchWriter[K, V], error) {
	proc := &writeProcessor[K, V]{writeFunc: writeFunc}

	c, err := batch.New[*writeRequest[K, V]](config, proc)
	if err != nil {
		return nil, err
	}

	return &BatchWriter[K, V]{
		collector: c,
		runner:    NewRunner(c),
	}, nil
}

// Set writes a key-value pair. It blocks until the batched operation completes
// or the context is cancelled. Multiple concurrent Set calls will be batched
// together according to the batch configuration.
func (w *BatchWriter[K, V]) Set(ctx context.Context, key K, value V) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req := &writeRequest[K, V]{
		id:    batch.NewID(),
		ctx:   ctx,
		key:   key,
		value: value,
	}

	_, err := w.runner.Run(ctx, req)
	return requestError(err, &req.err)
}

// Close gracefully shuts down the BatchWriter and waits for pending operations to complete.
// Calling Set after Close fails immediately.
func (w *BatchWriter[K, V]) Close() error {
	return w.collector.Shutdown()
}

// writeProcessor implements batch.Processor for write requests.
type writeProcessor[K comparable, V any] struct {
	writeFunc WriteFunc[K, V]
}

func (p *writeProcessor[K, V]) Process(ctx context.Context, reqs []*writeRequest[K, V]) ([]batch.Outcome, error) {
	outcomes := make([]batch.Outcome, 0, len(reqs))

	// Collect active requests and build write map
	active := make([]*writeRequest[K, V], 0, len(reqs))
	data := make(map[K]V, len(reqs))

	for _, req := range reqs {
		// Check if request context is already cancelled
		if err := req.ctx.Err(); err != nil {
			req.err = err
			outcomes = append(outcomes, batch.Failed(req.id, err.Error()))
			continue
		}
		active = append(active, req)
		// Last write wins for duplicate keys
		data[req.key] = req.value
	}

	if len(data) == 0 {
		return outcomes, nil
	}

	// Execute batched write. Same result for all requests in the batch.
	if err := p.writeFunc(ctx, data); err != nil {
		for _, req := range active {
			req.err = err
			outcomes = append(outcomes, batch.Failed(req.id, err.Error()))
		}
		return outcomes, nil
	}

	for _, req := range active {
		outcomes = append(outcomes, batch.Succeeded(req.id))
	}
	return outcomes, nil
}
