package matchenv

import (
	"fmt"
	"math"

	"github.com/katalvlaran/envmatch/geom"
)

// Environment is the ordered set of neighbor vectors describing one
// particle's local geometry, plus the slot labels that tie each vector to a
// canonical neighbor direction of its cluster.
//
// Invariants:
//   - len(vectors) == len(slots) <= maxNeighbors.
//   - slot labels are distinct and lie in [0, maxNeighbors).
//   - vectors never change after construction; only slots are rewritten,
//     and only by DisjointSet.Merge.
type Environment struct {
	index        int
	vectors      []geom.Vec3
	slots        []int
	maxNeighbors int
	ghost        bool
}

// buildOptions configures BuildEnvironment.
type buildOptions struct {
	cutoffSq float64
	ghost    bool
}

// BuildOption is a functional option for BuildEnvironment.
type BuildOption func(*buildOptions)

// Within drops vectors whose squared length exceeds r².
func Within(r float64) BuildOption {
	return func(o *buildOptions) {
		o.cutoffSq = r * r
	}
}

// AsGhost marks the environment as a ghost: it takes part in matching and
// merging but never contributes to averaged environments.
func AsGhost() BuildOption {
	return func(o *buildOptions) {
		o.ghost = true
	}
}

// NewEnvironment returns an empty environment with room for maxNeighbors vectors.
func NewEnvironment(index, maxNeighbors int) (*Environment, error) {
	if maxNeighbors < 1 {
		return nil, fmt.Errorf("maxNeighbors=%d must be >= 1: %w", maxNeighbors, ErrInvalidConfiguration)
	}

	return &Environment{
		index:        index,
		vectors:      make([]geom.Vec3, 0, maxNeighbors),
		slots:        make([]int, 0, maxNeighbors),
		maxNeighbors: maxNeighbors,
	}, nil
}

// BuildEnvironment returns the environment of one particle from its ordered
// neighbor vectors. Slots are 0..n-1 in input order.
//
// Supplying more than maxNeighbors vectors fails with ErrCapacityExceeded,
// even when Within would have filtered some of them out.
func BuildEnvironment(index, maxNeighbors int, vectors []geom.Vec3, opts ...BuildOption) (*Environment, error) {
	if len(vectors) > maxNeighbors {
		return nil, fmt.Errorf("environment %d: %d vectors supplied, capacity %d: %w",
			index, len(vectors), maxNeighbors, ErrCapacityExceeded)
	}
	o := buildOptions{cutoffSq: math.Inf(1)}
	for _, opt := range opts {
		opt(&o)
	}
	e, err := NewEnvironment(index, maxNeighbors)
	if err != nil {
		return nil, err
	}
	e.ghost = o.ghost
	for _, v := range vectors {
		if v.NormSq() > o.cutoffSq {
			continue
		}
		if err = e.AddVector(v); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// AddVector appends v with the next free slot label.
func (e *Environment) AddVector(v geom.Vec3) error {
	if len(e.vectors) >= e.maxNeighbors {
		return fmt.Errorf("environment %d: capacity %d: %w", e.index, e.maxNeighbors, ErrCapacityExceeded)
	}
	e.slots = append(e.slots, len(e.vectors))
	e.vectors = append(e.vectors, v)

	return nil
}

// Index returns the forest position of the environment.
func (e *Environment) Index() int { return e.index }

// Len returns the number of vectors.
func (e *Environment) Len() int { return len(e.vectors) }

// MaxNeighbors returns the capacity.
func (e *Environment) MaxNeighbors() int { return e.maxNeighbors }

// IsGhost reports whether the environment is excluded from averages.
func (e *Environment) IsGhost() bool { return e.ghost }

// Vectors returns a copy of the vectors in input order.
func (e *Environment) Vectors() []geom.Vec3 {
	return append([]geom.Vec3(nil), e.vectors...)
}

// Slots returns a copy of the slot labels, parallel to Vectors.
func (e *Environment) Slots() []int {
	return append([]int(nil), e.slots...)
}

// Slotted returns a maxNeighbors-long slice with each vector stored at its
// slot label; empty slots hold geom.NaN().
func (e *Environment) Slotted() []geom.Vec3 {
	out := make([]geom.Vec3, e.maxNeighbors)
	for s := range out {
		out[s] = geom.NaN()
	}
	for p, v := range e.vectors {
		out[e.slots[p]] = v
	}

	return out
}
