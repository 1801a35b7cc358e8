// Command jobbatch runs synthetic jobs through a Collector and prints what
// happened. It is a small harness for trying out batch settings.
//
// Usage:
//
//	jobbatch -jobs 1000 -workers 50 -fail-every 10 -latency 20ms
//	jobbatch -config jobbatch.yaml -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"golang.org/x/sync/errgroup"

	"github.com/MasterOfBinary/jobbatch/batch"
	"github.com/MasterOfBinary/jobbatch/processor"
	jobsync "github.com/MasterOfBinary/jobbatch/sync"
)

type syntheticJob struct {
	id batch.ID
	n  int
}

func (j syntheticJob) ID() batch.ID {
	return j.id
}

type flags struct {
	config    string
	jobs      int
	workers   int
	failEvery int
	latency   time.Duration
	batchSize int
	maxDelay  time.Duration
	logLevel  string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("jobbatch", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "YAML config file (overrides -batch-size and -max-delay)")
	fs.IntVar(&f.jobs, "jobs", 1000, "number of jobs to submit")
	fs.IntVar(&f.workers, "workers", 50, "number of concurrent submitters")
	fs.IntVar(&f.failEvery, "fail-every", 0, "fail one job in N (0 disables failures)")
	fs.DurationVar(&f.latency, "latency", 10*time.Millisecond, "simulated processor latency per batch")
	fs.IntVar(&f.batchSize, "batch-size", batch.DefaultBatchSize, "jobs per batch")
	fs.DurationVar(&f.maxDelay, "max-delay", batch.DefaultMaxDelay, "longest time a job waits before dispatch")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.jobs < 0 {
		return nil, fmt.Errorf("-jobs cannot be negative, got %d", f.jobs)
	}
	if f.workers < 1 {
		return nil, fmt.Errorf("-workers must be at least 1, got %d", f.workers)
	}
	if f.failEvery < 0 {
		return nil, fmt.Errorf("-fail-every cannot be negative, got %d", f.failEvery)
	}
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f *flags) error {
	level, err := batch.ParseLogLevel(f.logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: handlerLevel(level)}))
	slog.SetDefault(logger)

	opts, err := collectorOptions(f)
	if err != nil {
		return err
	}
	stats := batch.NewBasicStatsCollector()
	opts.Logger = batch.NewSlogLogger(logger)
	opts.Stats = stats
	opts.ProcessorErrorPolicy = batch.FailBatch
	opts.FailMissingOutcomes = true
	opts.ErrorHandler = func(err error) {
		logger.Warn("batch failed", "error", err)
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())
	otel.SetMeterProvider(provider)

	proc, err := syntheticProcessor(f, opts.Logger)
	if err != nil {
		return err
	}

	c, err := batch.NewWithOptions[syntheticJob](proc, opts)
	if err != nil {
		return err
	}

	logger.Info("starting",
		"jobs", f.jobs,
		"workers", f.workers,
		"batch_size", opts.Config.Get().BatchSize,
		"max_delay", opts.Config.Get().MaxDelay,
	)

	failed, err := submitAll(ctx, c, f.jobs, f.workers)
	shutdownErr := c.Shutdown()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if shutdownErr != nil {
		logger.Warn("errors while draining", "error", shutdownErr)
	}

	printSummary(os.Stdout, stats.GetStats(), failed)
	return printMetrics(context.Background(), os.Stdout, reader)
}

func collectorOptions(f *flags) (*batch.Options, error) {
	if f.config != "" {
		fc, err := batch.LoadConfigFile(f.config)
		if err != nil {
			return nil, err
		}
		return fc.Options(), nil
	}

	values := batch.ConfigValues{BatchSize: f.batchSize, MaxDelay: f.maxDelay}
	if err := values.Validate(); err != nil {
		return nil, err
	}
	return &batch.Options{Config: batch.NewConstantConfig(&values)}, nil
}

func syntheticProcessor(f *flags, logger batch.Logger) (batch.Processor[syntheticJob], error) {
	var fraction float64
	if f.failEvery > 0 {
		fraction = 1 / float64(f.failEvery)
	}
	failing, err := processor.NewError[syntheticJob](processor.ErrorConfig{
		Message:      "synthetic failure",
		FailFraction: fraction,
	})
	if err != nil {
		return nil, err
	}

	var proc batch.Processor[syntheticJob] = processor.Delay[syntheticJob](f.latency, failing)
	proc = &processor.Strict[syntheticJob]{Processor: proc}
	proc = processor.WrapWithLogging(proc, logger, "synthetic")
	return processor.WrapWithMetricsDefault(proc), nil
}

// submitAll runs workers goroutines that share jobs submissions between
// them, each blocking on its own job. It returns the number of failed jobs.
func submitAll(ctx context.Context, c *batch.Collector[syntheticJob], jobs, workers int) (int64, error) {
	runner := jobsync.NewRunner(c)
	g, ctx := errgroup.WithContext(ctx)

	next := make(chan int)
	g.Go(func() error {
		defer close(next)
		for i := 0; i < jobs; i++ {
			select {
			case next <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var failed atomic.Int64
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for n := range next {
				_, err := runner.Run(ctx, syntheticJob{id: batch.NewID(), n: n})
				var outcomeErr *batch.OutcomeError
				switch {
				case err == nil:
				case errors.As(err, &outcomeErr):
					failed.Add(1)
				default:
					return err
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return failed.Load(), err
}

func handlerLevel(l batch.LogLevel) slog.Level {
	switch l {
	case batch.LogLevelDebug:
		return slog.LevelDebug
	case batch.LogLevelWarn:
		return slog.LevelWarn
	case batch.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
