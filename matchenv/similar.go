package matchenv

import (
	"math"

	"github.com/katalvlaran/envmatch/assignment"
	"github.com/katalvlaran/envmatch/geom"
)

// IsSimilar reports whether e1 and e2 are structurally equivalent within
// thresholdSq, and if so returns the e1-slot → e2-slot correspondence.
//
// Two environments are similar when min(|e1|, |e2|) vectors of each can be
// paired one-to-one with every pair's squared distance <= thresholdSq.
// The pairing returned is the one of minimum total squared distance; exact
// ties go to the lexicographically smallest pairing of the smaller
// environment (e1 when sizes are equal). Unpaired vectors are absent from
// the correspondence.
//
// Edge cases:
//   - an empty environment is similar only to another empty one.
//   - a NaN or negative thresholdSq is never satisfied.
//
// Complexity: O(n²·m) with n = min(|e1|,|e2|), m = max(|e1|,|e2|).
func IsSimilar(e1, e2 *Environment, thresholdSq float64) (Correspondence, bool) {
	pairs, ok := matchVectors(e1.vectors, e2.vectors, thresholdSq)
	if !ok {
		return nil, false
	}

	return correspondence(e1, e2, pairs), true
}

// matchVectors pairs positions of a with positions of b. The result holds,
// for each position of a, its partner in b or -1. It depends only on the
// vectors, so it may run concurrently with merges that rewrite slots.
func matchVectors(a, b []geom.Vec3, thresholdSq float64) ([]int, bool) {
	// 1. A bound that nothing can satisfy, or one empty side.
	if math.IsNaN(thresholdSq) || thresholdSq < 0 {
		return nil, false
	}
	if len(a) == 0 || len(b) == 0 {
		if len(a) != len(b) {
			return nil, false
		}
		return []int{}, true
	}

	// 2. Pairs farther apart than the threshold are forbidden. NaN distances
	//    only arise from NaN vectors and are forbidden as well.
	cost, err := assignment.NewMatrixFunc(len(a), len(b), func(i, j int) float64 {
		d := a[i].DistSq(b[j])
		if d > thresholdSq {
			return math.Inf(1)
		}
		return d
	})
	if err != nil {
		return nil, false
	}
	// 3. Similar iff the optimum uses no forbidden pair.
	res, err := assignment.Solve(cost)
	if err != nil || !res.Feasible {
		return nil, false
	}

	return res.RowToCol, true
}

// correspondence translates position pairs into current slot labels.
func correspondence(e1, e2 *Environment, pairs []int) Correspondence {
	c := make(Correspondence, len(pairs))
	for p, q := range pairs {
		if q < 0 {
			continue
		}
		c[e1.slots[p]] = e2.slots[q]
	}
	return c
}
