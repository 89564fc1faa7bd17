package matchenv

import (
	"fmt"
	"sort"
)

// Correspondence maps slot labels of one environment to slot labels of
// another. It is one-to-one; labels without a partner are absent.
type Correspondence map[int]int

// Inverse returns the reverse mapping.
func (c Correspondence) Inverse() Correspondence {
	inv := make(Correspondence, len(c))
	for k, v := range c {
		inv[v] = k
	}
	return inv
}

// Keys returns the source labels in ascending order.
func (c Correspondence) Keys() []int {
	keys := make([]int, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Validate checks that c is one-to-one over [0, maxNeighbors).
func (c Correspondence) Validate(maxNeighbors int) error {
	seen := make(map[int]struct{}, len(c))
	for k, v := range c {
		if k < 0 || k >= maxNeighbors || v < 0 || v >= maxNeighbors {
			return fmt.Errorf("pair %d->%d outside [0,%d): %w", k, v, maxNeighbors, ErrInvalidCorrespondence)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("target slot %d mapped twice: %w", v, ErrInvalidCorrespondence)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Complete extends c to a bijection over [0, maxNeighbors): source labels
// without a partner take the unused target labels in ascending order.
// Re-slotting with a completed correspondence keeps slot labels distinct
// inside every environment of the reparented tree.
func (c Correspondence) Complete(maxNeighbors int) Correspondence {
	out := make(Correspondence, maxNeighbors)
	taken := make([]bool, maxNeighbors)
	for k, v := range c {
		out[k] = v
		taken[v] = true
	}
	t := 0
	for s := 0; s < maxNeighbors; s++ {
		if _, ok := out[s]; ok {
			continue
		}
		for taken[t] {
			t++
		}
		out[s] = t
		taken[t] = true
	}
	return out
}
