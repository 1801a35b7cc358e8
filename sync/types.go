package sync

import (
	"context"
	"errors"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// ErrKeyNotFound is returned by BatchReader.Get when the ReadFunc didn't
// return a value for the key.
var ErrKeyNotFound = errors.New("key not found")

// ReadFunc is a user-provided function that performs a batched read operation.
// It receives a slice of keys to fetch and returns a map of results.
// Missing keys can be omitted from the result map.
type ReadFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

// WriteFunc is a user-provided function that performs a batched write operation.
// It receives a map of key-value pairs to write and returns an error if the
// entire batch fails. For partial failures, implementations should still return
// nil and handle failures internally.
type WriteFunc[K comparable, V any] func(ctx context.Context, data map[K]V) error

// readRequest is the Job submitted for a single read. The processor fills
// in value and err before reporting the outcome, so the caller may read them
// once the job's Result is complete.
type readRequest[K comparable, V any] struct {
	id    batch.ID
	ctx   context.Context
	key   K
	value V
	err   error
}

func (r *readRequest[K, V]) ID() batch.ID {
	return r.id
}

// writeRequest is the Job submitted for a single write.
type writeRequest[K comparable, V any] struct {
	id    batch.ID
	ctx   context.Context
	key   K
	value V
	err   error
}

func (w *writeRequest[K, V]) ID() batch.ID {
	return w.id
}

// requestError picks the error to return to a caller whose request got err
// from Runner.Run. If the request completed, the error the processor stored in
// reqErr takes precedence. reqErr is only read once the request is complete.
func requestError(err error, reqErr *error) error {
	if err == nil {
		return nil
	}
	var outcomeErr *batch.OutcomeError
	if errors.As(err, &outcomeErr) && *reqErr != nil {
		return *reqErr
	}
	return err
}
