package batch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MasterOfBinary/jobbatch/batch"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
collector:
  batch_size: 100
  max_delay: 250ms
  tick_interval: 50ms
limits:
  max_concurrent_batches: 4
  max_processing_time: 30s
`)

	fc, err := batch.ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	wantValues := batch.ConfigValues{
		BatchSize:    100,
		MaxDelay:     250 * time.Millisecond,
		TickInterval: 50 * time.Millisecond,
	}
	if fc.Values != wantValues {
		t.Errorf("Values = %+v, want %+v", fc.Values, wantValues)
	}

	wantLimits := batch.ResourceLimits{
		MaxConcurrentBatches: 4,
		MaxProcessingTime:    30 * time.Second,
	}
	if fc.ResourceLimits != wantLimits {
		t.Errorf("ResourceLimits = %+v, want %+v", fc.ResourceLimits, wantLimits)
	}

	opts := fc.Options()
	if got := opts.Config.Get(); got != wantValues {
		t.Errorf("Options().Config.Get() = %+v, want %+v", got, wantValues)
	}
	if opts.ResourceLimits == nil || *opts.ResourceLimits != wantLimits {
		t.Errorf("Options().ResourceLimits = %+v, want %+v", opts.ResourceLimits, wantLimits)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	fc, err := batch.ParseConfig([]byte("collector:\n  batch_size: 8\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if fc.Values.BatchSize != 8 {
		t.Errorf("BatchSize = %d, want 8", fc.Values.BatchSize)
	}
	if fc.Values.MaxDelay != batch.DefaultMaxDelay {
		t.Errorf("MaxDelay = %v, want default %v", fc.Values.MaxDelay, batch.DefaultMaxDelay)
	}
	if fc.ResourceLimits != (batch.ResourceLimits{}) {
		t.Errorf("ResourceLimits = %+v, want no limits", fc.ResourceLimits)
	}

	empty, err := batch.ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) error = %v", err)
	}
	if empty.Values != batch.DefaultConfigValues() {
		t.Errorf("ParseConfig(nil).Values = %+v, want defaults", empty.Values)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "collector: [oops"},
		{"bad duration", "collector:\n  max_delay: soon\n"},
		{"zero batch size", "collector:\n  batch_size: 0\n"},
		{"negative delay", "collector:\n  max_delay: -1s\n"},
		{"negative limit", "limits:\n  max_concurrent_batches: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := batch.ParseConfig([]byte(tt.data))
			if !errors.Is(err, batch.ErrInvalidConfig) {
				t.Errorf("ParseConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobbatch.yaml")
	if err := os.WriteFile(path, []byte("collector:\n  batch_size: 3\n  max_delay: 1s\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := batch.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if fc.Values.BatchSize != 3 || fc.Values.MaxDelay != time.Second {
		t.Errorf("unexpected values: %+v", fc.Values)
	}

	if _, err := batch.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfigFile() on missing file error = %v, want os.ErrNotExist", err)
	}
}
