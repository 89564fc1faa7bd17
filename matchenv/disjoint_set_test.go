package matchenv_test

import (
	"testing"

	"github.com/katalvlaran/envmatch/geom"
	"github.com/katalvlaran/envmatch/matchenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForest(t *testing.T, envs ...*matchenv.Environment) *matchenv.DisjointSet {
	t.Helper()
	ds, err := matchenv.NewDisjointSet(envs)
	require.NoError(t, err)
	return ds
}

func root(t *testing.T, ds *matchenv.DisjointSet, x int) int {
	t.Helper()
	r, err := ds.Find(x)
	require.NoError(t, err)
	return r
}

func TestNewDisjointSet_Validation(t *testing.T) {
	a := env(t, 0, 2, ex)
	_, err := matchenv.NewDisjointSet([]*matchenv.Environment{a, nil})
	assert.ErrorIs(t, err, matchenv.ErrInvalidConfiguration)

	_, err = matchenv.NewDisjointSet([]*matchenv.Environment{env(t, 1, 2, ex)})
	assert.ErrorIs(t, err, matchenv.ErrInvalidConfiguration, "index must equal position")

	_, err = matchenv.NewDisjointSet([]*matchenv.Environment{a, env(t, 1, 3, ex)})
	assert.ErrorIs(t, err, matchenv.ErrInvalidConfiguration, "capacities must agree")

	ds, err := matchenv.NewDisjointSet(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestDisjointSet_SingletonRoots(t *testing.T) {
	ds := newForest(t, env(t, 0, 2, ex), env(t, 1, 2, ey), env(t, 2, 2, ez))
	for i := 0; i < 3; i++ {
		assert.Equal(t, i, root(t, ds, i))
		set, err := ds.FindSet(i)
		require.NoError(t, err)
		assert.Equal(t, []int{i}, set)
	}
	assert.Equal(t, 2, ds.MaxNeighbors())
}

func TestDisjointSet_OutOfRange(t *testing.T) {
	ds := newForest(t, env(t, 0, 1, ex))
	_, err := ds.Find(1)
	assert.ErrorIs(t, err, matchenv.ErrIndexOutOfRange)
	_, err = ds.Find(-1)
	assert.ErrorIs(t, err, matchenv.ErrIndexOutOfRange)
	_, err = ds.FindSet(3)
	assert.ErrorIs(t, err, matchenv.ErrIndexOutOfRange)
	_, err = ds.AverageEnvironment(3)
	assert.ErrorIs(t, err, matchenv.ErrIndexOutOfRange)
	_, err = ds.IndividualEnvironment(3)
	assert.ErrorIs(t, err, matchenv.ErrIndexOutOfRange)
	_, err = ds.Node(3)
	assert.ErrorIs(t, err, matchenv.ErrIndexOutOfRange)
	assert.ErrorIs(t, ds.Merge(0, 5, nil), matchenv.ErrIndexOutOfRange)
}

func TestDisjointSet_MergeRejectsBadCorrespondence(t *testing.T) {
	ds := newForest(t, env(t, 0, 2, ex, ey), env(t, 1, 2, ex, ey))
	err := ds.Merge(0, 1, matchenv.Correspondence{0: 1, 1: 1})
	assert.ErrorIs(t, err, matchenv.ErrInvalidCorrespondence)
	err = ds.Merge(0, 1, matchenv.Correspondence{0: 2})
	assert.ErrorIs(t, err, matchenv.ErrInvalidCorrespondence)

	assert.Equal(t, 0, root(t, ds, 0))
	assert.Equal(t, 1, root(t, ds, 1), "a rejected merge leaves the forest untouched")
}

func TestDisjointSet_EqualRankAttachesBUnderA(t *testing.T) {
	a := env(t, 0, 2, ex, ey)
	b := env(t, 1, 2, ey, ex)
	ds := newForest(t, a, b)

	// a-slot 0 (ex) corresponds to b-slot 1, a-slot 1 (ey) to b-slot 0.
	require.NoError(t, ds.Merge(0, 1, matchenv.Correspondence{0: 1, 1: 0}))

	assert.Equal(t, 0, root(t, ds, 1))
	assert.Equal(t, []int{0, 1}, a.Slots(), "root keeps its slots")
	assert.Equal(t, []int{1, 0}, b.Slots(), "b re-slotted by the inverse")

	// Slot s now names the same direction in both environments.
	assert.Equal(t, a.Slotted(), b.Slotted())

	avg, err := ds.AverageEnvironment(1)
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec3{ex, ey}, avg)
}

func TestDisjointSet_LowerRankTreeIsReparented(t *testing.T) {
	a := env(t, 0, 2, ex, ey)
	b := env(t, 1, 2, ey, ex)
	c := env(t, 2, 2, ey, ex)
	ds := newForest(t, a, b, c)

	// Raise b's rank first: {1,2} rooted at 1.
	require.NoError(t, ds.Merge(1, 2, matchenv.Correspondence{0: 0, 1: 1}))
	require.Equal(t, 1, root(t, ds, 2))

	// a's singleton tree has the lower rank, so a moves and takes c directly.
	require.NoError(t, ds.Merge(0, 1, matchenv.Correspondence{0: 1, 1: 0}))
	assert.Equal(t, 1, root(t, ds, 0))
	assert.Equal(t, []int{1, 0}, a.Slots())
	assert.Equal(t, []int{0, 1}, b.Slots())
	assert.Equal(t, []int{0, 1}, c.Slots())
	assert.Equal(t, b.Slotted(), a.Slotted())

	set, err := ds.FindSet(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, set)
}

func TestDisjointSet_MergeSameTreeIsNoop(t *testing.T) {
	a := env(t, 0, 2, ex, ey)
	b := env(t, 1, 2, ex, ey)
	ds := newForest(t, a, b)
	require.NoError(t, ds.Merge(0, 1, matchenv.Correspondence{0: 0, 1: 1}))
	require.NoError(t, ds.Merge(1, 0, matchenv.Correspondence{0: 1, 1: 0}))

	assert.Equal(t, []int{0, 1}, a.Slots())
	assert.Equal(t, []int{0, 1}, b.Slots())
}

func TestDisjointSet_ReslotsWholeTree(t *testing.T) {
	// Two trees of two nodes each; merging them must rewrite both nodes of
	// the reparented tree.
	envs := []*matchenv.Environment{
		env(t, 0, 2, ex, ey),
		env(t, 1, 2, ex, ey),
		env(t, 2, 2, ey, ex),
		env(t, 3, 2, ey, ex),
	}
	ds := newForest(t, envs...)
	id := matchenv.Correspondence{0: 0, 1: 1}
	swap := matchenv.Correspondence{0: 1, 1: 0}
	require.NoError(t, ds.Merge(0, 1, id))
	require.NoError(t, ds.Merge(2, 3, id))
	require.NoError(t, ds.Merge(0, 2, swap))

	r := root(t, ds, 3)
	assert.Equal(t, 0, r)
	for i := 1; i < 4; i++ {
		assert.Equal(t, envs[0].Slotted(), envs[i].Slotted(), "node %d", i)
		assert.Equal(t, r, root(t, ds, i))
	}
	set, err := ds.FindSet(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, set)
}

func TestDisjointSet_AverageSkipsGhostsAndEmptySlots(t *testing.T) {
	ghost, err := matchenv.BuildEnvironment(0, 3, []geom.Vec3{geom.V(5, 0, 0)}, matchenv.AsGhost())
	require.NoError(t, err)
	p1 := env(t, 1, 3, geom.V(1, 0, 0))
	p2 := env(t, 2, 3, geom.V(3, 0, 0))
	ds := newForest(t, ghost, p1, p2)
	require.NoError(t, ds.Merge(0, 1, matchenv.Correspondence{0: 0}))
	require.NoError(t, ds.Merge(0, 2, matchenv.Correspondence{0: 0}))

	avg, err := ds.AverageEnvironment(0)
	require.NoError(t, err)
	require.Len(t, avg, 3)
	assert.Equal(t, geom.V(2, 0, 0), avg[0])
	assert.True(t, avg[1].IsNaN())
	assert.True(t, avg[2].IsNaN())

	raw, err := ds.IndividualEnvironment(0)
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec3{geom.V(5, 0, 0)}, raw)
}

func TestDisjointSet_ForestInvariant(t *testing.T) {
	const n = 40
	envs := make([]*matchenv.Environment, n)
	for i := range envs {
		envs[i] = env(t, i, 1, ex)
	}
	ds := newForest(t, envs...)
	id := matchenv.Correspondence{0: 0}
	for i := 0; i+1 < n; i += 2 {
		require.NoError(t, ds.Merge(i, i+1, id))
	}
	for i := 0; i+2 < n; i += 4 {
		require.NoError(t, ds.Merge(i+1, i+2, id))
	}

	for i := 0; i < n; i++ {
		r := root(t, ds, i)
		assert.Equal(t, r, root(t, ds, r), "root of root")
		set, err := ds.FindSet(i)
		require.NoError(t, err)
		assert.Contains(t, set, i)
		for _, m := range set {
			assert.Equal(t, r, root(t, ds, m))
		}
	}
}

func TestDisjointSet_PartialCorrespondenceKeepsSlotsDistinct(t *testing.T) {
	a := env(t, 0, 2, ex, ey)
	b := env(t, 1, 2, ey)
	d := env(t, 2, 2, ey)
	ds := newForest(t, a, b, d)

	// Raise b's rank so that a's tree is the one reparented.
	cbd, ok := matchenv.IsSimilar(b, d, 0)
	require.True(t, ok)
	require.NoError(t, ds.Merge(1, 2, cbd))

	// a has two vectors, b one: the correspondence only covers ey.
	cab, ok := matchenv.IsSimilar(a, b, 0)
	require.True(t, ok)
	require.Equal(t, matchenv.Correspondence{1: 0}, cab)
	require.NoError(t, ds.Merge(0, 1, cab))

	require.Equal(t, 1, root(t, ds, 0))
	assert.Equal(t, []int{1, 0}, a.Slots(), "the unmatched ex takes the free slot")
	assert.Equal(t, []geom.Vec3{ey, ex}, a.Slotted(), "no vector is lost")

	avg, err := ds.AverageEnvironment(0)
	require.NoError(t, err)
	require.Len(t, avg, 2)
	near(t, ey, avg[0])
	assert.Equal(t, ex, avg[1])
}

func TestDisjointSet_PartialCorrespondenceWhenBMoves(t *testing.T) {
	a := env(t, 0, 3, ey)
	b := env(t, 1, 3, ez, ex, ey)
	ds := newForest(t, a, b)

	// Equal ranks: b moves and receives the inverse of the completed map.
	require.NoError(t, ds.Merge(0, 1, matchenv.Correspondence{0: 2}))
	assert.Equal(t, 0, root(t, ds, 1))
	assert.Equal(t, []int{1, 2, 0}, b.Slots())
	assert.Equal(t, []geom.Vec3{ey, ez, ex}, b.Slotted())
}
