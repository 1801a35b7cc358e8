package batch

import (
	"fmt"
	"sync"
	"time"
)

// Config retrieves the config values used by Collector. If these values are
// constant, NewConstantConfig can be used to create an implementation
// of the interface.
//
// Collector calls Get every time it evaluates whether to dispatch. An
// implementation that changes its values should also implement
// ChangeNotifier, as DynamicConfig does, so a change takes effect before the
// next submission.
type Config interface {
	// Get returns the values for configuration.
	//
	// If the config values may be modified while the Collector is running,
	// Get must properly handle concurrency issues.
	Get() ConfigValues
}

// ConfigValues is a struct that contains the Collector config values.
type ConfigValues struct {
	// BatchSize is the maximum number of jobs handed to the Processor at
	// once. As soon as BatchSize jobs are pending they are dispatched,
	// whether or not MaxDelay has elapsed. Must be at least 1.
	BatchSize int `json:"batchSize" yaml:"batch_size"`

	// MaxDelay is the longest time pending jobs wait, measured from the
	// previous dispatch, before they are dispatched as an incomplete batch.
	// Zero disables waiting: pending jobs are dispatched right away.
	MaxDelay time.Duration `json:"maxDelay" yaml:"max_delay"`

	// TickInterval caps how long the background timer sleeps while jobs are
	// pending before it reads the Config again. If zero, the timer sleeps
	// until the next MaxDelay deadline. Set it only for Config
	// implementations that change without notifying (see ChangeNotifier).
	TickInterval time.Duration `json:"tickInterval" yaml:"tick_interval"`
}

// Validate checks that the values can be used to create a Collector.
func (v ConfigValues) Validate() error {
	if v.BatchSize < 1 {
		return fmt.Errorf("%w: batch size must be at least 1, got %d", ErrInvalidConfig, v.BatchSize)
	}
	if v.MaxDelay < 0 {
		return fmt.Errorf("%w: max delay cannot be negative, got %v", ErrInvalidConfig, v.MaxDelay)
	}
	if v.TickInterval < 0 {
		return fmt.Errorf("%w: tick interval cannot be negative, got %v", ErrInvalidConfig, v.TickInterval)
	}
	return nil
}

// NewConstantConfig returns a Config with constant values. If values
// is nil, DefaultConfigValues is used.
func NewConstantConfig(values *ConfigValues) *ConstantConfig {
	if values == nil {
		return &ConstantConfig{values: DefaultConfigValues()}
	}

	return &ConstantConfig{
		values: *values,
	}
}

// ConstantConfig is a Config with constant values. Create one with
// NewConstantConfig.
type ConstantConfig struct {
	values ConfigValues
}

// Get implements the Config interface.
func (b *ConstantConfig) Get() ConfigValues {
	return b.values
}

// ChangeNotifier is implemented by Configs whose values change at runtime.
// Changed returns a channel that is closed on the next change. Collector
// re-arms its timer as soon as it is closed, so a shorter MaxDelay takes
// effect right away.
type ChangeNotifier interface {
	Changed() <-chan struct{}
}

// NewDynamicConfig creates a configuration that can be adjusted at runtime.
// It is thread-safe and suitable for use in environments where batching
// parameters need to change dynamically in response to system conditions.
//
// If values is nil, DefaultConfigValues is used.
func NewDynamicConfig(values *ConfigValues) *DynamicConfig {
	if values == nil {
		v := DefaultConfigValues()
		values = &v
	}

	return &DynamicConfig{
		batchSize:    values.BatchSize,
		maxDelay:     values.MaxDelay,
		tickInterval: values.TickInterval,
	}
}

// DynamicConfig implements the Config interface with values that can be
// modified at runtime.
//
// Invalid values set at runtime are corrected rather than rejected: a batch
// size below 1 is treated as 1, and a negative delay as zero.
type DynamicConfig struct {
	mu           sync.RWMutex
	batchSize    int
	maxDelay     time.Duration
	tickInterval time.Duration
	changed      chan struct{}
}

// Get implements the Config interface by returning the current configuration values.
func (c *DynamicConfig) Get() ConfigValues {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ConfigValues{
		BatchSize:    c.batchSize,
		MaxDelay:     c.maxDelay,
		TickInterval: c.tickInterval,
	}
}

// Changed implements the ChangeNotifier interface.
func (c *DynamicConfig) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.changed == nil {
		c.changed = make(chan struct{})
	}
	return c.changed
}

// notifyLocked wakes everyone waiting on Changed. c.mu must be held.
func (c *DynamicConfig) notifyLocked() {
	if c.changed != nil {
		close(c.changed)
		c.changed = nil
	}
}

// UpdateBatchSize updates the batch size.
// This method is thread-safe and can be called while the Collector is running.
func (c *DynamicConfig) UpdateBatchSize(batchSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batchSize = batchSize
	c.notifyLocked()
}

// UpdateMaxDelay updates the time-based trigger window.
// This method is thread-safe and can be called while the Collector is running.
func (c *DynamicConfig) UpdateMaxDelay(maxDelay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxDelay = maxDelay
	c.notifyLocked()
}

// Update replaces all configuration values at once.
// This method is thread-safe and can be called while the Collector is running.
func (c *DynamicConfig) Update(config ConfigValues) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batchSize = config.BatchSize
	c.maxDelay = config.MaxDelay
	c.tickInterval = config.TickInterval
	c.notifyLocked()
}

// DefaultConfigValues returns the values used when no config is provided.
func DefaultConfigValues() ConfigValues {
	return ConfigValues{
		BatchSize: DefaultBatchSize,
		MaxDelay:  DefaultMaxDelay,
	}
}

// fixConfig corrects invalid ConfigValues read at runtime:
//   - If BatchSize is below 1, it is set to 1.
//   - If MaxDelay is negative, it is set to zero.
func fixConfig(c ConfigValues) ConfigValues {
	if c.BatchSize < 1 {
		c.BatchSize = 1
	}
	if c.MaxDelay < 0 {
		c.MaxDelay = 0
	}
	return c
}
