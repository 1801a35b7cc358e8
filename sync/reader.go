package sync

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// BatchReader provides synchronous read operations that are batched behind the scenes.
// It uses generics to provide type safety for keys and values.
type BatchReader[K comparable, V any] struct {
	collector *batch.Collector[*readRequest[K, V]]
	runner    *Runner[*readRequest[K, V]]
}

// NewBatchReader creates a new BatchReader with the specified configuration and read function.
// The readFunc will be called with batches of keys to fetch.
func NewBatchReader[K comparable, V any](config batch.Config, readFunc ReadFunc[K, V]) (*BatchReader[K, V], error) {
	proc := &readProcessor[K, V]{readFunc: readFunc}

	c, err := batch.New[*readRequest[K, V]](config, proc)
	if err != nil {
		return nil, err
	}

	return &BatchReader[K, V]{
		collector: c,
		runner:    NewRunner(c),
	}, nil
}

// Get retrieves a value by key. It blocks until the batched operation completes
// or the context is cancelled. Multiple concurrent Get calls will be batched
// together according to the batch configuration.
//
// ErrKeyNotFound is returned if the read function didn't return the key.
func (r *BatchReader[K, V]) Get(ctx context.Context, key K) (V, error) {
	var zero V

	if ctx == nil {
		ctx = context.Background()
	}

	req := &readRequest[K, V]{
		id:  batch.NewID(),
		ctx: ctx,
		key: key,
	}

	if _, err := r.runner.Run(ctx, req); err != nil {
		return zero, requestError(err, &req.err)
	}
	return req.value, nil
}

// Close gracefully shuts down the BatchReader and waits for pending operations to complete.
// Calling Get after Close fails immediately.
func (r *BatchReader[K, V]) Close() error {
	return r.collector.Shutdown()
}

// readProcessor implements batch.Processor for read requests.
type readProcessor[K comparable, V any] struct {
	readFunc ReadFunc[K, V]
}

func (p *readProcessor[K, V]) Process(ctx context.Context, reqs []*readRequest[K, V]) ([]batch.Outcome, error) {
	outcomes := make([]batch.Outcome, 0, len(reqs))

	// Collect active requests
	active := make([]*readRequest[K, V], 0, len(reqs))
	keys := make([]K, 0, len(reqs))

	for _, req := range reqs {
		// Check if request context is already cancelled
		if err := req.ctx.Err(); err != nil {
			req.err = err
			outcomes = append(outcomes, batch.Failed(req.id, err.Error()))
			continue
		}
		active = append(active, req)
		keys = append(keys, req.key)
	}

	if len(keys) == 0 {
		return outcomes, nil
	}

	// Execute batched read
	values, err := p.readFunc(ctx, keys)
	if err != nil {
		// Global error affects all requests
		for _, req := range active {
			req.err = err
			outcomes = append(outcomes, batch.Failed(req.id, err.Error()))
		}
		return outcomes, nil
	}

	for _, req := range active {
		value, found := values[req.key]
		if !found {
			req.err = ErrKeyNotFound
			outcomes = append(outcomes, batch.Failed(req.id, ErrKeyNotFound.Error()))
			continue
		}
		req.value = value
		outcomes = append(outcomes, batch.Succeeded(req.id))
	}

	return outcomes, nil
}
