package matchenv

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/envmatch/geom"
)

// DisjointSet is an arena-indexed union-find forest of environments.
//
// Unlike a plain union-find, merging two trees first rewrites the slot labels
// of every environment in the tree being reparented, so that a slot label
// names the same neighbor direction across the whole merged tree.
//
// Storage:
//   - nodes[i]: environment at forest position i (nodes[i].Index() == i).
//   - parent[i]: forest parent; parent[root] == root.
//   - rank[i]: union-by-rank height bound, meaningful for roots only.
//   - next[i]: circular member list: following next from any node visits
//     every node of its tree exactly once. Merges splice two lists in O(1).
//
// A DisjointSet is not safe for concurrent use. Find compresses paths and
// Merge rewrites slots; callers running the pairwise scan in parallel must
// serialize every call.
type DisjointSet struct {
	nodes        []*Environment
	parent       []int
	rank         []int
	next         []int
	maxNeighbors int
}

// NewDisjointSet returns a forest of singleton trees over envs. Every
// environment must share the same capacity and carry Index() equal to its
// position in envs.
func NewDisjointSet(envs []*Environment) (*DisjointSet, error) {
	ds := &DisjointSet{
		nodes:  envs,
		parent: make([]int, len(envs)),
		rank:   make([]int, len(envs)),
		next:   make([]int, len(envs)),
	}
	for i, e := range envs {
		if e == nil {
			return nil, fmt.Errorf("node %d is nil: %w", i, ErrInvalidConfiguration)
		}
		if e.index != i {
			return nil, fmt.Errorf("node %d carries index %d: %w", i, e.index, ErrInvalidConfiguration)
		}
		if i == 0 {
			ds.maxNeighbors = e.maxNeighbors
		} else if e.maxNeighbors != ds.maxNeighbors {
			return nil, fmt.Errorf("node %d has capacity %d, want %d: %w",
				i, e.maxNeighbors, ds.maxNeighbors, ErrInvalidConfiguration)
		}
		ds.parent[i] = i
		ds.next[i] = i
	}

	return ds, nil
}

// Len returns the number of nodes.
func (ds *DisjointSet) Len() int { return len(ds.nodes) }

// MaxNeighbors returns the shared environment capacity.
func (ds *DisjointSet) MaxNeighbors() int { return ds.maxNeighbors }

// Node returns the environment at position i.
func (ds *DisjointSet) Node(i int) (*Environment, error) {
	if err := ds.check(i); err != nil {
		return nil, err
	}
	return ds.nodes[i], nil
}

// Find returns the root of the tree containing x.
func (ds *DisjointSet) Find(x int) (int, error) {
	if err := ds.check(x); err != nil {
		return 0, err
	}
	return ds.find(x), nil
}

// find walks to the root, halving the path on the way.
func (ds *DisjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

// Merge joins the trees of a and b. c maps slot labels in a's frame to slot
// labels in b's frame, as returned by IsSimilar(node a, node b). c may be
// partial; it must be one-to-one inside [0, maxNeighbors).
//
// The lower-rank root is attached under the higher-rank root; on equal
// ranks b's root goes under a's root. Before attaching, c is completed to a
// bijection over [0, maxNeighbors) (see Correspondence.Complete) and every
// environment of the reparented tree is re-slotted: if a's tree moves, the
// completed map is applied; if b's tree moves, its inverse is. Because the
// applied map is a bijection, slot labels stay distinct inside every
// environment.
//
// Merging two nodes of the same tree is a no-op.
func (ds *DisjointSet) Merge(a, b int, c Correspondence) error {
	// 1. Validate both nodes and the correspondence.
	if err := ds.check(a); err != nil {
		return err
	}
	if err := ds.check(b); err != nil {
		return err
	}
	if err := c.Validate(ds.maxNeighbors); err != nil {
		return err
	}
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return nil
	}

	// 2. Extend c so unmatched labels move to unused ones instead of colliding.
	c = c.Complete(ds.maxNeighbors)

	// 3. Re-slot the lower-rank tree, attach it, then splice the member rings.
	if ds.rank[ra] < ds.rank[rb] {
		ds.reslot(ra, c)
		ds.parent[ra] = rb
	} else {
		ds.reslot(rb, c.Inverse())
		ds.parent[rb] = ra
		if ds.rank[ra] == ds.rank[rb] {
			ds.rank[ra]++
		}
	}
	ds.next[ra], ds.next[rb] = ds.next[rb], ds.next[ra]

	return nil
}

// reslot rewrites slot labels in every environment of root's tree.
func (ds *DisjointSet) reslot(root int, m Correspondence) {
	x := root
	for {
		slots := ds.nodes[x].slots
		for p, s := range slots {
			if t, ok := m[s]; ok {
				slots[p] = t
			}
		}
		x = ds.next[x]
		if x == root {
			return
		}
	}
}

// FindSet returns every node of the tree containing m, ascending.
func (ds *DisjointSet) FindSet(m int) ([]int, error) {
	if err := ds.check(m); err != nil {
		return nil, err
	}
	return ds.members(m), nil
}

func (ds *DisjointSet) members(m int) []int {
	out := []int{m}
	for x := ds.next[m]; x != m; x = ds.next[x] {
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}

// AverageEnvironment returns, for each slot 0..maxNeighbors-1, the mean of
// the vectors carrying that slot over every non-ghost node of m's tree.
// Slots with no contributor hold geom.NaN().
func (ds *DisjointSet) AverageEnvironment(m int) ([]geom.Vec3, error) {
	if err := ds.check(m); err != nil {
		return nil, err
	}
	sum := make([]geom.Vec3, ds.maxNeighbors)
	count := make([]int, ds.maxNeighbors)
	for _, x := range ds.members(m) {
		e := ds.nodes[x]
		if e.ghost {
			continue
		}
		for p, v := range e.vectors {
			s := e.slots[p]
			sum[s] = sum[s].Add(v)
			count[s]++
		}
	}
	for s := range sum {
		if count[s] == 0 {
			sum[s] = geom.NaN()
			continue
		}
		sum[s] = sum[s].Scale(1 / float64(count[s]))
	}

	return sum, nil
}

// IndividualEnvironment returns the raw vectors of node m, unaveraged.
func (ds *DisjointSet) IndividualEnvironment(m int) ([]geom.Vec3, error) {
	if err := ds.check(m); err != nil {
		return nil, err
	}
	return ds.nodes[m].Vectors(), nil
}

func (ds *DisjointSet) check(i int) error {
	if i < 0 || i >= len(ds.nodes) {
		return fmt.Errorf("node %d of %d: %w", i, len(ds.nodes), ErrIndexOutOfRange)
	}
	return nil
}
