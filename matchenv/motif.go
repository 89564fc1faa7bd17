package matchenv

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/envmatch/geom"
)

// MotifMatch is the outcome of one MatchMotif run.
type MotifMatch struct {
	matched    []bool
	members    *roaring.Bitmap
	average    []geom.Vec3
	individual [][]geom.Vec3
}

// MatchMotif tests every particle environment against the reference motif
// refPoints, given as vectors around an implicit origin.
//
// The motif becomes a ghost environment at forest position len(points).
// Each particle is compared with the ghost only; a particle that matches is
// merged into the ghost's tree, re-slotted into the motif's frame. Particles
// are never compared with or merged into each other. The ghost stays the
// root of its tree and never contributes to Average.
//
// The hard radius option filters particle environments only; the motif is
// used as given. A motif with more than k vectors fails with
// ErrCapacityExceeded.
func (m *MatchEnv) MatchMotif(points, refPoints []geom.Vec3, threshold float64, opts ...RunOption) (*MotifMatch, error) {
	mm, err := m.matchMotif(points, refPoints, threshold, resolveRun(opts))
	count := 0
	if mm != nil {
		count = mm.Count()
	}
	m.opts.Logger.LogMotif(len(points), count, threshold, err)

	return mm, err
}

func (m *MatchEnv) matchMotif(points, refPoints []geom.Vec3, threshold float64, ro runOptions) (*MotifMatch, error) {
	// 1. Build particle environments, then the ghost at position n.
	thrSq, err := m.ThresholdSq(threshold)
	if err != nil {
		return nil, err
	}
	envs, err := m.buildEnvironments(points, ro)
	if err != nil {
		return nil, err
	}
	n := len(envs)
	ghost, err := BuildEnvironment(n, m.k, refPoints, AsGhost())
	if err != nil {
		return nil, err
	}
	ds, err := NewDisjointSet(append(envs, ghost))
	if err != nil {
		return nil, err
	}

	// 2. Compare every particle with the ghost only, in parallel.
	pairs := make([][]int, n)
	parallelRange(m.opts.Workers, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if p, ok := matchVectors(envs[i].vectors, ghost.vectors, thrSq); ok {
				pairs[i] = p
			}
		}
	})

	// 3. Record matches in index order and merge each one under the ghost.
	mm := &MotifMatch{
		matched:    make([]bool, n),
		members:    roaring.New(),
		individual: make([][]geom.Vec3, n),
	}
	for i := 0; i < n; i++ {
		mm.individual[i] = envs[i].Vectors()
		if pairs[i] == nil {
			continue
		}
		mm.matched[i] = true
		mm.members.Add(uint32(i))
		// Ghost first, so that it wins the rank tie and stays the root.
		corr := correspondence(envs[i], ghost, pairs[i]).Inverse()
		if err = ds.Merge(n, i, corr); err != nil {
			return nil, err
		}
	}
	if mm.average, err = ds.AverageEnvironment(n); err != nil {
		return nil, err
	}

	return mm, nil
}

// NumParticles returns the number of tested particles.
func (mm *MotifMatch) NumParticles() int { return len(mm.matched) }

// Count returns the number of particles matching the motif.
func (mm *MotifMatch) Count() int { return int(mm.members.GetCardinality()) }

// Matches reports whether particle i matches the motif.
func (mm *MotifMatch) Matches(i int) (bool, error) {
	if i < 0 || i >= len(mm.matched) {
		return false, fmt.Errorf("particle %d of %d: %w", i, len(mm.matched), ErrIndexOutOfRange)
	}
	return mm.matched[i], nil
}

// Matched returns a copy of the per-particle match flags.
func (mm *MotifMatch) Matched() []bool {
	return append([]bool(nil), mm.matched...)
}

// Members returns the indices of matching particles as a bitmap.
func (mm *MotifMatch) Members() *roaring.Bitmap {
	return mm.members.Clone()
}

// Average returns the mean environment of the matching particles in the
// motif's slot frame; every slot is geom.NaN() when nothing matched.
func (mm *MotifMatch) Average() []geom.Vec3 {
	return append([]geom.Vec3(nil), mm.average...)
}

// Individual returns the raw neighbor vectors of particle i.
func (mm *MotifMatch) Individual(i int) ([]geom.Vec3, error) {
	if i < 0 || i >= len(mm.individual) {
		return nil, fmt.Errorf("particle %d of %d: %w", i, len(mm.individual), ErrIndexOutOfRange)
	}
	return append([]geom.Vec3(nil), mm.individual[i]...), nil
}
