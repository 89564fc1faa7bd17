package matchenv

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/envmatch/geom"
)

// Clusters is the outcome of one Cluster run.
//
// Cluster labels are dense in [0, NumClusters()), assigned in order of first
// appearance by particle index. Vectors returned by Average and
// Environments are indexed by slot in the cluster's common frame.
type Clusters struct {
	labels       []int
	averages     [][]geom.Vec3
	individual   [][]geom.Vec3
	slotted      [][]geom.Vec3
	members      []*roaring.Bitmap
	maxNeighbors int
}

// Cluster groups points into clusters of matching environments.
//
// Steps:
//  1. Build one environment per point from the neighbor source.
//  2. For every pair i < j whose trees differ, test IsSimilar on their
//     vectors and merge on success. Similarity tests of one row run in
//     parallel; merges are applied serially in ascending j, so the result is
//     the same for any worker count.
//  3. Renumber roots densely and extract averages, raw and slotted
//     environments, and member bitmaps. The forest is then discarded.
//
// threshold is unitless; see ThresholdSq.
func (m *MatchEnv) Cluster(points []geom.Vec3, threshold float64, opts ...RunOption) (*Clusters, error) {
	c, err := m.cluster(points, threshold, resolveRun(opts))
	count := 0
	if c != nil {
		count = c.NumClusters()
	}
	m.opts.Logger.LogCluster(len(points), count, threshold, err)

	return c, err
}

func (m *MatchEnv) cluster(points []geom.Vec3, threshold float64, ro runOptions) (*Clusters, error) {
	// 1. Resolve the absolute bound and build one environment per point.
	thrSq, err := m.ThresholdSq(threshold)
	if err != nil {
		return nil, err
	}
	envs, err := m.buildEnvironments(points, ro)
	if err != nil {
		return nil, err
	}
	// 2. Start from a forest of singletons.
	ds, err := NewDisjointSet(envs)
	if err != nil {
		return nil, err
	}

	n := len(envs)
	roots := make([]int, n)
	pairs := make([][]int, n)
	// 3. Scan row by row. A row compares i with every later j.
	for i := 0; i < n-1; i++ {
		// 3a. Snapshot the roots before any merge of this row, so the
		//     parallel stage reads a fixed forest.
		for j := i + 1; j < n; j++ {
			roots[j] = ds.find(j)
		}
		ri := ds.find(i)
		// 3b. Match vectors in parallel. Pairs already sharing a tree are
		//     skipped; results go to pairs[j], owned by j alone.
		parallelRange(m.opts.Workers, n-i-1, func(lo, hi int) {
			for j := i + 1 + lo; j < i+1+hi; j++ {
				pairs[j] = nil
				if roots[j] == ri {
					continue
				}
				if p, ok := matchVectors(envs[i].vectors, envs[j].vectors, thrSq); ok {
					pairs[j] = p
				}
			}
		})
		// 3c. Merge serially in ascending j. Slot labels are read now, after
		//     the earlier merges of this row have rewritten them.
		for j := i + 1; j < n; j++ {
			if pairs[j] == nil {
				continue
			}
			corr := correspondence(envs[i], envs[j], pairs[j])
			if err = ds.Merge(i, j, corr); err != nil {
				return nil, err
			}
		}
	}

	// 4. Renumber and copy out; the forest is dropped with this frame.
	return extractClusters(ds)
}

// extractClusters renumbers the forest and copies everything callers can see.
func extractClusters(ds *DisjointSet) (*Clusters, error) {
	n := ds.Len()
	c := &Clusters{
		labels:       make([]int, n),
		individual:   make([][]geom.Vec3, n),
		slotted:      make([][]geom.Vec3, n),
		maxNeighbors: ds.maxNeighbors,
	}
	labelOf := make(map[int]int)
	for i := 0; i < n; i++ {
		root := ds.find(i)
		label, ok := labelOf[root]
		if !ok {
			label = len(labelOf)
			labelOf[root] = label
			avg, err := ds.AverageEnvironment(root)
			if err != nil {
				return nil, err
			}
			c.averages = append(c.averages, avg)
			c.members = append(c.members, roaring.New())
		}
		c.labels[i] = label
		c.members[label].Add(uint32(i))
		c.individual[i] = ds.nodes[i].Vectors()
		c.slotted[i] = ds.nodes[i].Slotted()
	}

	return c, nil
}

// NumParticles returns the number of clustered particles.
func (c *Clusters) NumParticles() int { return len(c.labels) }

// NumClusters returns the number of distinct clusters.
func (c *Clusters) NumClusters() int { return len(c.averages) }

// Label returns the cluster label of particle i.
func (c *Clusters) Label(i int) (int, error) {
	if i < 0 || i >= len(c.labels) {
		return 0, fmt.Errorf("particle %d of %d: %w", i, len(c.labels), ErrIndexOutOfRange)
	}
	return c.labels[i], nil
}

// Labels returns a copy of every particle's cluster label.
func (c *Clusters) Labels() []int {
	return append([]int(nil), c.labels...)
}

// Average returns the averaged environment of a cluster, one vector per slot.
// Slots no member fills hold geom.NaN().
func (c *Clusters) Average(label int) ([]geom.Vec3, error) {
	if label < 0 || label >= len(c.averages) {
		return nil, fmt.Errorf("label %d of %d: %w", label, len(c.averages), ErrUnknownCluster)
	}
	return append([]geom.Vec3(nil), c.averages[label]...), nil
}

// Individual returns the raw neighbor vectors of particle i in input order.
func (c *Clusters) Individual(i int) ([]geom.Vec3, error) {
	if i < 0 || i >= len(c.individual) {
		return nil, fmt.Errorf("particle %d of %d: %w", i, len(c.individual), ErrIndexOutOfRange)
	}
	return append([]geom.Vec3(nil), c.individual[i]...), nil
}

// Environments returns the N×maxNeighbors matrix of every particle's vectors
// placed at their slot in the cluster frame; empty slots hold geom.NaN().
func (c *Clusters) Environments() [][]geom.Vec3 {
	out := make([][]geom.Vec3, len(c.slotted))
	for i, row := range c.slotted {
		out[i] = append([]geom.Vec3(nil), row...)
	}
	return out
}

// Members returns the particle indices of a cluster as a bitmap.
func (c *Clusters) Members(label int) (*roaring.Bitmap, error) {
	if label < 0 || label >= len(c.members) {
		return nil, fmt.Errorf("label %d of %d: %w", label, len(c.members), ErrUnknownCluster)
	}
	return c.members[label].Clone(), nil
}
