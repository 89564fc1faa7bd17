package neighbor

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/envmatch/geom"
)

// Sentinel errors returned by the neighbor package.
var (
	// ErrInvalidK indicates a neighbor count below one.
	ErrInvalidK = errors.New("neighbor: k must be >= 1")

	// ErrNilWrapper indicates that no periodic wrapper was supplied.
	ErrNilWrapper = errors.New("neighbor: wrapper is nil")

	// ErrNonFinitePoint indicates a NaN or ±Inf position.
	ErrNonFinitePoint = errors.New("neighbor: point is not finite")

	// ErrIndexOutOfRange indicates a particle index outside the computed set.
	ErrIndexOutOfRange = errors.New("neighbor: particle index out of range")
)

// Wrapper applies the periodic minimum-image convention to a displacement.
// box.Box satisfies it.
type Wrapper interface {
	Wrap(d geom.Vec3) geom.Vec3
}

// Source yields, for each particle, its ordered neighbor displacement vectors,
// already wrapped. Implementations must be deterministic for a fixed
// configuration and safe for concurrent reads.
type Source interface {
	// Len returns the number of particles covered.
	Len() int

	// Neighbors returns the displacement vectors of particle i, nearest first.
	Neighbors(i int) ([]geom.Vec3, error)
}

// Factory builds a Source over a set of points.
type Factory func(points []geom.Vec3) (Source, error)

// Options configures a KNN search.
type Options struct {
	// Workers bounds the goroutines used by Compute. Values < 1 mean GOMAXPROCS.
	Workers int
}

// Option is a functional option for NewKNN.
type Option func(*Options)

// WithWorkers bounds the number of goroutines used per Compute call.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// DefaultOptions returns Options with Workers = GOMAXPROCS.
func DefaultOptions() Options {
	return Options{Workers: runtime.GOMAXPROCS(0)}
}
