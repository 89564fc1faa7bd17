package neighbor

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/envmatch/geom"
	"golang.org/x/sync/errgroup"
)

// KNN is a brute-force k-nearest-neighbor search over a periodic box.
// A KNN is immutable and may be shared between goroutines.
type KNN struct {
	wrap    Wrapper
	k       int
	workers int
}

// NewKNN returns a search for the k nearest neighbors under w.
func NewKNN(w Wrapper, k int, opts ...Option) (*KNN, error) {
	if w == nil {
		return nil, ErrNilWrapper
	}
	if k < 1 {
		return nil, fmt.Errorf("k=%d: %w", k, ErrInvalidK)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers < 1 {
		o.Workers = DefaultOptions().Workers
	}

	return &KNN{wrap: w, k: k, workers: o.Workers}, nil
}

// K returns the configured neighbor count.
func (n *KNN) K() int {
	return n.k
}

// Factory adapts n to the Factory signature.
func (n *KNN) Factory() Factory {
	return func(points []geom.Vec3) (Source, error) {
		return n.Compute(points)
	}
}

// candidate is one (distance, index) pair considered for a neighbor list.
type candidate struct {
	rsq float64
	j   int
}

// Compute returns the neighbor lists of every point.
func (n *KNN) Compute(points []geom.Vec3) (*List, error) {
	// 1. Reject positions that cannot be wrapped.
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("point %d %v: %w", i, p, ErrNonFinitePoint)
		}
	}

	// 2. Size the table: every row holds min(k, N-1) neighbors.
	np := len(points)
	kk := n.k
	if np-1 < kk {
		kk = max(np-1, 0)
	}
	list := &List{
		index:   make([]int, np*kk),
		vectors: make([]geom.Vec3, np*kk),
		width:   kk,
		count:   np,
	}
	if np == 0 || kk == 0 {
		return list, nil
	}

	// 3. Fill rows in contiguous chunks. Each goroutine owns its rows and a
	//    private scratch buffer, so no locking is needed.
	var g errgroup.Group
	g.SetLimit(n.workers)
	chunk := (np + n.workers - 1) / n.workers
	for lo := 0; lo < np; lo += chunk {
		hi := min(lo+chunk, np)
		g.Go(func() error {
			scratch := make([]candidate, 0, np-1)
			for i := lo; i < hi; i++ {
				n.fill(list, points, i, scratch[:0])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return list, nil
}

// fill computes the neighbor row of particle i into list.
func (n *KNN) fill(list *List, points []geom.Vec3, i int, scratch []candidate) {
	// 1. Collect the squared minimum-image distance to every other point.
	ref := points[i]
	for j, p := range points {
		if j == i {
			continue
		}
		d := n.wrap.Wrap(p.Sub(ref))
		scratch = append(scratch, candidate{rsq: d.NormSq(), j: j})
	}
	// 2. Order by distance, then by index, so ties resolve the same way on
	//    every run and every worker count.
	sort.Slice(scratch, func(a, b int) bool {
		if scratch[a].rsq != scratch[b].rsq {
			return scratch[a].rsq < scratch[b].rsq
		}
		return scratch[a].j < scratch[b].j
	})

	// 3. Keep the first width candidates and store their wrapped vectors.
	row := i * list.width
	for c := 0; c < list.width; c++ {
		j := scratch[c].j
		list.index[row+c] = j
		list.vectors[row+c] = n.wrap.Wrap(points[j].Sub(ref))
	}
}
