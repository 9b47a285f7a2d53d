package runekit

import (
	"log/slog"
	"runtime"
)

// Default sizing for the asynchronous worker pool.
const (
	// DefaultQueueDepth is the default number of accepted asynchronous
	// executions that may wait for a worker before submission blocks.
	DefaultQueueDepth = 64
)

// Option configures an Engine using the functional options pattern.
type Option func(*engineOptions)

type engineOptions struct {
	logger     *slog.Logger
	workers    int
	queueDepth int
}

// applyOptions applies functional options over the defaults.
func applyOptions(opts []Option) *engineOptions {
	options := &engineOptions{
		workers:    runtime.GOMAXPROCS(0),
		queueDepth: DefaultQueueDepth,
	}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithWorkers sets the number of goroutines serving asynchronous
// executions. Defaults to GOMAXPROCS. Values below 1 are raised to 1.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithQueueDepth sets how many accepted asynchronous executions may wait
// for a worker before ExecuteAsync blocks. Defaults to DefaultQueueDepth.
func WithQueueDepth(n int) Option {
	return func(o *engineOptions) {
		o.queueDepth = n
	}
}
