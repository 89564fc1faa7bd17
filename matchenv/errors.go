package matchenv

import "errors"

// Sentinel errors returned by the matchenv package. Every message carries the
// "matchenv:" prefix; call sites wrap them with the offending parameter and
// bound, so match with errors.Is.
var (
	// ErrInvalidConfiguration indicates a non-positive rmax, a neighbor count
	// outside [1, MaxNeighbors], or a malformed box. Raised by New and SetBox.
	ErrInvalidConfiguration = errors.New("matchenv: invalid configuration")

	// ErrCapacityExceeded indicates more vectors than maxNeighbors were
	// supplied to one environment. It signals a mismatch between the
	// configured k and the neighbor source and aborts the whole call.
	ErrCapacityExceeded = errors.New("matchenv: environment capacity exceeded")

	// ErrInvalidThreshold indicates a NaN, negative, or meaningless
	// (>= MaxThreshold) similarity threshold.
	ErrInvalidThreshold = errors.New("matchenv: invalid threshold")

	// ErrInvalidCorrespondence indicates a correspondence that is not
	// one-to-one or refers to slots outside [0, maxNeighbors).
	ErrInvalidCorrespondence = errors.New("matchenv: invalid correspondence")

	// ErrIndexOutOfRange indicates a particle or node index outside the run.
	ErrIndexOutOfRange = errors.New("matchenv: index out of range")

	// ErrUnknownCluster indicates a cluster label outside [0, NumClusters).
	ErrUnknownCluster = errors.New("matchenv: unknown cluster label")

	// ErrPointCount indicates two reference point sets of different length.
	ErrPointCount = errors.New("matchenv: point set sizes differ")

	// ErrSourceMismatch indicates a neighbor source that does not cover
	// exactly the supplied points.
	ErrSourceMismatch = errors.New("matchenv: neighbor source does not match points")
)
