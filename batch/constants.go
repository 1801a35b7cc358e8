package batch

import "time"

// Defaults used when a value isn't configured.
const (
	// DefaultBatchSize is the batch size used by DefaultConfigValues.
	DefaultBatchSize = 16

	// DefaultMaxDelay is the time-based trigger window used by
	// DefaultConfigValues.
	DefaultMaxDelay = 50 * time.Millisecond
)

