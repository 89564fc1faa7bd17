package matchenv

import (
	"fmt"
	"math"

	"github.com/katalvlaran/envmatch/box"
	"github.com/katalvlaran/envmatch/geom"
	"github.com/katalvlaran/envmatch/neighbor"
)

// MatchEnv groups particles by structurally equivalent local environments,
// or tests every particle against a reference motif.
//
// A MatchEnv holds configuration only. Every Cluster or MatchMotif call
// builds its own environments and forest and returns an immutable result,
// so one MatchEnv may serve concurrent calls as long as SetBox is not
// called at the same time.
type MatchEnv struct {
	box    box.Box
	rmax   float64
	k      int
	opts   Options
	source neighbor.Factory
	custom bool
}

// New returns a MatchEnv over b with cutoff radius rmax and k neighbors per
// environment.
//
// Errors (wrapping ErrInvalidConfiguration):
//   - rmax NaN, ±Inf or <= 0.
//   - k outside [1, MaxNeighbors].
//   - b malformed (also matches box.ErrInvalidBox).
func New(b box.Box, rmax float64, k int, opts ...Option) (*MatchEnv, error) {
	if math.IsNaN(rmax) || math.IsInf(rmax, 0) || rmax <= 0 {
		return nil, fmt.Errorf("rmax=%g must be finite and > 0: %w", rmax, ErrInvalidConfiguration)
	}
	if k < 1 || k > MaxNeighbors {
		return nil, fmt.Errorf("k=%d must be in [1,%d]: %w", k, MaxNeighbors, ErrInvalidConfiguration)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &MatchEnv{rmax: rmax, k: k, opts: o}
	if o.Source != nil {
		m.source = o.Source
		m.custom = true
	}
	if err := m.SetBox(b); err != nil {
		return nil, err
	}

	return m, nil
}

// SetBox replaces the simulation box. The built-in neighbor search is rebuilt
// for the new box; a custom source from WithNeighborSource is kept.
func (m *MatchEnv) SetBox(b box.Box) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if !m.custom {
		knn, err := neighbor.NewKNN(b, m.k, neighbor.WithWorkers(m.opts.Workers))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		m.source = knn.Factory()
	}
	m.box = b

	return nil
}

// Box returns the current simulation box.
func (m *MatchEnv) Box() box.Box { return m.box }

// RMax returns the cutoff radius.
func (m *MatchEnv) RMax() float64 { return m.rmax }

// NumNeighbors returns k.
func (m *MatchEnv) NumNeighbors() int { return m.k }

// ThresholdSq converts a unitless threshold into the absolute squared
// distance bound (threshold·rmax)².
//
// Valid thresholds satisfy 0 <= threshold < MaxThreshold; anything else
// fails with ErrInvalidThreshold.
func (m *MatchEnv) ThresholdSq(threshold float64) (float64, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold >= MaxThreshold {
		return 0, fmt.Errorf("threshold=%g must be in [0,%g): %w", threshold, MaxThreshold, ErrInvalidThreshold)
	}
	t := threshold * m.rmax

	return t * t, nil
}

// IsSimilarPoints reports whether two raw vector sets of equal length are
// similar within threshold. The result maps indices of ref1 to indices of
// ref2 and is empty when they are not similar.
func (m *MatchEnv) IsSimilarPoints(ref1, ref2 []geom.Vec3, threshold float64) (map[int]int, error) {
	if len(ref1) != len(ref2) {
		return nil, fmt.Errorf("%d vs %d points: %w", len(ref1), len(ref2), ErrPointCount)
	}
	thrSq, err := m.ThresholdSq(threshold)
	if err != nil {
		return nil, err
	}
	e1, err := BuildEnvironment(0, m.k, ref1)
	if err != nil {
		return nil, err
	}
	e2, err := BuildEnvironment(1, m.k, ref2)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int)
	if c, ok := IsSimilar(e1, e2, thrSq); ok {
		for k, v := range c {
			out[k] = v
		}
	}

	return out, nil
}

// buildEnvironments queries the neighbor source and builds one environment
// per point. On failure the error of the lowest particle index is returned.
func (m *MatchEnv) buildEnvironments(points []geom.Vec3, ro runOptions) ([]*Environment, error) {
	src, err := m.source(points)
	if err != nil {
		return nil, err
	}
	if src.Len() != len(points) {
		return nil, fmt.Errorf("source covers %d particles, %d points given: %w", src.Len(), len(points), ErrSourceMismatch)
	}

	var build []BuildOption
	if ro.hardRadius {
		build = append(build, Within(m.rmax))
	}
	envs := make([]*Environment, len(points))
	errs := make([]error, len(points))
	parallelRange(m.opts.Workers, len(points), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			vecs, err := src.Neighbors(i)
			if err != nil {
				errs[i] = err
				continue
			}
			envs[i], errs[i] = BuildEnvironment(i, m.k, vecs, build...)
		}
	})
	if err = firstError(errs); err != nil {
		return nil, err
	}

	return envs, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func resolveRun(opts []RunOption) runOptions {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}
