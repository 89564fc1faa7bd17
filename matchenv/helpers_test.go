package matchenv_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/envmatch/box"
	"github.com/katalvlaran/envmatch/geom"
	"github.com/katalvlaran/envmatch/matchenv"
	"github.com/katalvlaran/envmatch/neighbor"
	"github.com/stretchr/testify/require"
)

// staticSource hands out fixed neighbor vectors, ignoring positions.
type staticSource [][]geom.Vec3

func (s staticSource) Len() int { return len(s) }

func (s staticSource) Neighbors(i int) ([]geom.Vec3, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("static source: %d: %w", i, neighbor.ErrIndexOutOfRange)
	}
	return append([]geom.Vec3(nil), s[i]...), nil
}

// fixedNeighbors returns a factory over the given per-particle environments.
func fixedNeighbors(envs ...[]geom.Vec3) neighbor.Factory {
	return func(points []geom.Vec3) (neighbor.Source, error) {
		return staticSource(envs), nil
	}
}

// placeholders returns n dummy positions; static sources ignore them.
func placeholders(n int) []geom.Vec3 {
	return make([]geom.Vec3, n)
}

func testBox(t *testing.T) box.Box {
	t.Helper()
	b, err := box.Cube(10)
	require.NoError(t, err)
	return b
}

// newStatic returns a MatchEnv with rmax=1 reading the given environments.
func newStatic(t *testing.T, k int, envs ...[]geom.Vec3) *matchenv.MatchEnv {
	t.Helper()
	me, err := matchenv.New(testBox(t), 1, k, matchenv.WithNeighborSource(fixedNeighbors(envs...)))
	require.NoError(t, err)
	return me
}

func env(t *testing.T, index, k int, vecs ...geom.Vec3) *matchenv.Environment {
	t.Helper()
	e, err := matchenv.BuildEnvironment(index, k, vecs)
	require.NoError(t, err)
	return e
}

// samePartition reports whether two label slices induce the same grouping.
func samePartition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	ab := map[int]int{}
	ba := map[int]int{}
	for i := range a {
		if x, ok := ab[a[i]]; ok && x != b[i] {
			return false
		}
		if y, ok := ba[b[i]]; ok && y != a[i] {
			return false
		}
		ab[a[i]] = b[i]
		ba[b[i]] = a[i]
	}
	return true
}

var (
	ex = geom.V(1, 0, 0)
	ey = geom.V(0, 1, 0)
	ez = geom.V(0, 0, 1)
)
