package hierembed

import (
	"log/slog"

	"github.com/hupe1980/hierembed/numeric"
)

type options struct {
	backend     numeric.Backend
	logger      *Logger
	observer    Observer
	parallelism int
}

// Option configures an Embedder.
type Option func(*options)

// WithBackend configures the linear-algebra backend used to solve the
// hyperplane systems and to compute plane bases.
//
// If nil is passed, numeric.Gonum is used.
func WithBackend(b numeric.Backend) Option {
	return func(o *options) {
		if b == nil {
			b = numeric.Gonum{}
		}
		o.backend = b
	}
}

// WithLogger configures structured logging for embedding runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hierembed.NewJSONLogger(slog.LevelInfo)
//	e := hierembed.New(hierembed.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithObserver configures an observer receiving per-step timings.
// Pass nil to disable observation.
//
// Example with CollectingObserver:
//
//	obs := &hierembed.CollectingObserver{}
//	e := hierembed.New(hierembed.WithObserver(obs))
//	// ... run Embed ...
//	for _, step := range obs.Steps() {
//	    fmt.Printf("item %d placed in %v\n", step.Item, step.Total())
//	}
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = NoopObserver{}
		}
		o.observer = obs
	}
}

// WithParallelism bounds the number of goroutines used for the
// per-step sphere intersections against the anchor item.
//
// Values below 2 keep the computation fully sequential (the default).
// The result is identical either way; parallelism only changes the
// schedule of independent read-only intersections.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		backend:     numeric.Gonum{},
		logger:      NoopLogger(),
		observer:    NoopObserver{},
		parallelism: 1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
