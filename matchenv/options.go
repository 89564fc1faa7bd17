package matchenv

import (
	"runtime"

	"github.com/katalvlaran/envmatch/neighbor"
)

// MaxNeighbors caps the configured neighbor count k. It mirrors the largest
// neighbor shell the collaborating order-parameter tables are sized for.
const MaxNeighbors = 12

// MaxThreshold is the exclusive upper bound of the unitless threshold. Two
// vectors bounded by rmax never differ by more than 2·rmax.
const MaxThreshold = 2.0

const (
	panicNilLogger     = "matchenv: WithLogger: logger must not be nil"
	panicWorkers       = "matchenv: WithWorkers: n must be >= 1"
	panicNilNeighbours = "matchenv: WithNeighborSource: factory must not be nil"
)

// Options configures a MatchEnv.
//
// Fields:
//   - Logger: structured logger; NoopLogger() by default.
//   - Workers: goroutines used for environment construction and the
//     pairwise scan; GOMAXPROCS by default. Results never depend on it.
//   - Source: custom neighbor source factory. nil selects the built-in
//     brute-force k-nearest-neighbor search over the box.
type Options struct {
	Logger  *Logger
	Workers int
	Source  neighbor.Factory
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogger sets the logger used for run summaries.
func WithLogger(l *Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) {
		o.Logger = l
	}
}

// WithWorkers bounds the goroutines used per run.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithNeighborSource replaces the built-in neighbor search. The factory must
// return wrapped displacement vectors, at most k per particle.
func WithNeighborSource(f neighbor.Factory) Option {
	if f == nil {
		panic(panicNilNeighbours)
	}
	return func(o *Options) {
		o.Source = f
	}
}

// DefaultOptions returns the defaults: no-op logger, GOMAXPROCS workers,
// built-in neighbor search.
func DefaultOptions() Options {
	return Options{
		Logger:  NoopLogger(),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// runOptions configures one Cluster or MatchMotif call.
type runOptions struct {
	hardRadius bool
}

// RunOption is a functional option for Cluster and MatchMotif.
type RunOption func(*runOptions)

// WithHardRadius keeps only neighbors with |d|² <= rmax² in each particle
// environment. Particles may then carry fewer than k vectors.
func WithHardRadius() RunOption {
	return func(o *runOptions) {
		o.hardRadius = true
	}
}
