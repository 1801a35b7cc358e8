package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML schema read by ParseConfig.
//
//	collector:
//	  batch_size: 100
//	  max_delay: 250ms
//	  tick_interval: 50ms
//	limits:
//	  max_concurrent_batches: 4
//	  max_processing_time: 30s
type fileConfig struct {
	Collector ConfigValues   `yaml:"collector"`
	Limits    ResourceLimits `yaml:"limits"`
}

// FileConfig holds everything that can be read from a YAML config file.
type FileConfig struct {
	Values         ConfigValues
	ResourceLimits ResourceLimits
}

// Options converts the file config into Options for NewWithOptions.
func (f *FileConfig) Options() *Options {
	limits := f.ResourceLimits
	return &Options{
		Config:         NewConstantConfig(&f.Values),
		ResourceLimits: &limits,
	}
}

// ParseConfig reads a YAML document into a FileConfig. Missing collector
// values are taken from DefaultConfigValues. The result is validated.
func ParseConfig(data []byte) (*FileConfig, error) {
	fc := fileConfig{Collector: DefaultConfigValues()}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := fc.Collector.Validate(); err != nil {
		return nil, err
	}
	if err := fc.Limits.Validate(); err != nil {
		return nil, err
	}
	return &FileConfig{
		Values:         fc.Collector,
		ResourceLimits: fc.Limits,
	}, nil
}

// LoadConfigFile reads and parses the YAML config file at path.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}
