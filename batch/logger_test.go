package batch_test

import (
	"bytes"
	"log"
	"log/slog"
	"strings"
	"testing"

	"github.com/MasterOfBinary/jobbatch/batch"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    batch.LogLevel
		expected string
	}{
		{batch.LogLevelDebug, "DEBUG"},
		{batch.LogLevelInfo, "INFO"},
		{batch.LogLevelWarn, "WARN"},
		{batch.LogLevelError, "ERROR"},
		{batch.LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    batch.LogLevel
		wantErr bool
	}{
		{"debug", batch.LogLevelDebug, false},
		{"INFO", batch.LogLevelInfo, false},
		{"", batch.LogLevelInfo, false},
		{"Warn", batch.LogLevelWarn, false},
		{"warning", batch.LogLevelWarn, false},
		{"error", batch.LogLevelError, false},
		{"loud", batch.LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := batch.ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := &batch.NoOpLogger{}

	// These should not panic
	logger.Log(batch.LogLevelInfo, "test")
	logger.Debug("debug %d", 1)
	logger.Info("info %s", "test")
	logger.Warn("warn %v", true)
	logger.Error("error %f", 3.14)
}

func TestSimpleLogger(t *testing.T) {
	tests := []struct {
		name        string
		minLevel    batch.LogLevel
		logFunc     func(logger batch.Logger)
		contains    []string
		notContains []string
	}{
		{
			name:     "debug level allows all",
			minLevel: batch.LogLevelDebug,
			logFunc: func(logger batch.Logger) {
				logger.Debug("debug message")
				logger.Info("info message")
				logger.Warn("warn message")
				logger.Error("error message")
			},
			contains: []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"},
		},
		{
			name:     "info level filters debug",
			minLevel: batch.LogLevelInfo,
			logFunc: func(logger batch.Logger) {
				logger.Debug("debug message")
				logger.Info("info message")
			},
			contains:    []string{"[INFO] info message"},
			notContains: []string{"[DEBUG]"},
		},
		{
			name:     "error level only shows errors",
			minLevel: batch.LogLevelError,
			logFunc: func(logger batch.Logger) {
				logger.Debug("debug")
				logger.Info("info")
				logger.Warn("warn")
				logger.Error("error message")
			},
			contains:    []string{"[ERROR] error message"},
			notContains: []string{"[DEBUG]", "[INFO]", "[WARN]"},
		},
		{
			name:     "formatting works",
			minLevel: batch.LogLevelInfo,
			logFunc: func(logger batch.Logger) {
				logger.Info("batch %d with %d jobs", 42, 3)
			},
			contains: []string{"[INFO] batch 42 with 3 jobs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			logger := &batch.SimpleLogger{
				MinLevel:     tt.minLevel,
				StdoutLogger: log.New(&stdout, "", 0),
				StderrLogger: log.New(&stderr, "", 0),
			}

			tt.logFunc(logger)

			output := stdout.String() + stderr.String()

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing expected string %q\nGot: %s", want, output)
				}
			}

			for _, notWant := range tt.notContains {
				if strings.Contains(output, notWant) {
					t.Errorf("output contains unexpected string %q\nGot: %s", notWant, output)
				}
			}
		})
	}
}

func TestSimpleLogger_OutputDestination(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := &batch.SimpleLogger{
		MinLevel:     batch.LogLevelDebug,
		StdoutLogger: log.New(&stdout, "", 0),
		StderrLogger: log.New(&stderr, "", 0),
	}

	logger.Debug("debug to stdout")
	logger.Info("info to stdout")
	logger.Warn("warn to stderr")
	logger.Error("error to stderr")

	stdoutStr := stdout.String()
	stderrStr := stderr.String()

	if !strings.Contains(stdoutStr, "debug to stdout") || !strings.Contains(stdoutStr, "info to stdout") {
		t.Errorf("stdout missing debug or info message: %s", stdoutStr)
	}
	if !strings.Contains(stderrStr, "warn to stderr") || !strings.Contains(stderrStr, "error to stderr") {
		t.Errorf("stderr missing warn or error message: %s", stderrStr)
	}

	// Check no cross-contamination
	if strings.Contains(stdoutStr, "stderr") {
		t.Error("stdout contains stderr message")
	}
	if strings.Contains(stderrStr, "stdout") {
		t.Error("stderr contains stdout message")
	}
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := batch.NewSlogLogger(slog.New(handler))

	logger.Debug("hidden %d", 1)
	logger.Info("batch %d complete", 7)
	logger.Warn("no outcome for job %s", "abc")
	logger.Error("processor failed")

	out := buf.String()

	for _, want := range []string{
		`level=INFO msg="batch 7 complete" component=jobbatch`,
		`level=WARN msg="no outcome for job abc" component=jobbatch`,
		`level=ERROR msg="processor failed" component=jobbatch`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nGot: %s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged below the handler level\nGot: %s", out)
	}
}

func TestNewSlogLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	batch.NewSlogLogger(nil).Info("hello")

	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected default logger to be used, got %q", buf.String())
	}
}
