// SPDX-License-Identifier: MIT

package assignment

import "math"

// Result is the outcome of Solve.
type Result struct {
	// RowToCol[i] is the column assigned to row i, or -1.
	RowToCol []int

	// ColToRow[j] is the row assigned to column j, or -1.
	ColToRow []int

	// Cost is the summed cost of the finite assigned pairs.
	Cost float64

	// Feasible reports whether min(r, c) pairs were assigned without
	// using a forbidden pair.
	Feasible bool
}

// weight is the lexicographically ordered cost triple used by the solver.
type weight struct {
	bad  int     // forbidden pairs used
	dist float64 // summed finite cost
	lex  int64   // tie-break rank
}

// infBad is larger than any reachable forbidden count.
const infBad = math.MaxInt32

// lexLimit bounds the base-m rank so that potentials cannot overflow int64.
const lexLimit = int64(1) << 58

var infinite = weight{bad: infBad}

func (a weight) add(b weight) weight {
	return weight{bad: a.bad + b.bad, dist: a.dist + b.dist, lex: a.lex + b.lex}
}

func (a weight) sub(b weight) weight {
	return weight{bad: a.bad - b.bad, dist: a.dist - b.dist, lex: a.lex - b.lex}
}

func (a weight) less(b weight) bool {
	if a.bad != b.bad {
		return a.bad < b.bad
	}
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.lex < b.lex
}

// lexScales returns scale[i] = m^(n-1-i), or nil when the encoding
// would exceed lexLimit.
func lexScales(n, m int) []int64 {
	scale := make([]int64, n)
	s := int64(1)
	for i := n - 1; i >= 0; i-- {
		scale[i] = s
		if i > 0 {
			if s > lexLimit/int64(m*n+1) {
				return nil
			}
			s *= int64(m)
		}
	}

	return scale
}

// Solve returns the minimum-cost assignment of min(r, c) pairs.
//
// Implementation:
//   - Stage 1: orient the problem so the smaller side is the row side (n ≤ m).
//   - Stage 2: for every row, grow a shortest augmenting path over reduced
//     costs c(i,j) - u(i) - v(j), updating potentials by the minimum slack.
//   - Stage 3: map the column owners back to the caller's orientation and
//     sum the finite costs.
//
// Complexity: O(n²·m) time, O(n + m) extra space.
func Solve(m *Matrix) (Result, error) {
	// 0. Validate the input; an empty side has the empty assignment.
	if m == nil {
		return Result{}, ErrNilMatrix
	}
	res := Result{
		RowToCol: fill(m.r, -1),
		ColToRow: fill(m.c, -1),
		Feasible: true,
	}
	if m.r == 0 || m.c == 0 {
		return res, nil
	}

	// 1. Orient so that rows are the smaller side (n ≤ w). at reads the
	//    caller's matrix through the chosen orientation.
	transposed := m.r > m.c
	n, w := m.r, m.c
	if transposed {
		n, w = m.c, m.r
	}
	at := func(i, j int) float64 {
		if transposed {
			return m.data[j*m.c+i]
		}
		return m.data[i*m.c+j]
	}
	// Lift every entry into a weight triple. A forbidden pair counts one
	// bad pair instead of an infinite cost, so the search always completes
	// and Feasible can be decided afterwards.
	scale := lexScales(n, w)
	cost := func(i, j int) weight {
		var lex int64
		if scale != nil {
			lex = int64(j) * scale[i]
		}
		x := at(i, j)
		if math.IsInf(x, 1) {
			return weight{bad: 1, lex: lex}
		}
		return weight{dist: x, lex: lex}
	}

	// 1-indexed potentials; column 0 is the virtual source of each search.
	u := make([]weight, n+1)
	v := make([]weight, w+1)
	owner := make([]int, w+1)
	way := make([]int, w+1)
	minv := make([]weight, w+1)
	used := make([]bool, w+1)

	// 2. Insert rows one at a time, each with a Dijkstra-like search for
	//    the cheapest augmenting path over reduced costs.
	for i := 1; i <= n; i++ {
		// 2a. Start the search at the virtual column holding row i.
		owner[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = infinite
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := owner[j0]
			delta := infinite
			j1 := 0
			// 2b. Relax the slack of every unvisited column from row i0 and
			//     pick the column with the smallest slack.
			for j := 1; j <= w; j++ {
				if used[j] {
					continue
				}
				cur := cost(i0-1, j-1).sub(u[i0]).sub(v[j])
				if cur.less(minv[j]) {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j].less(delta) {
					delta = minv[j]
					j1 = j
				}
			}
			// 2c. Shift potentials by delta: visited columns keep zero reduced
			//     cost along the tree, unvisited slacks shrink.
			for j := 0; j <= w; j++ {
				if used[j] {
					u[owner[j]] = u[owner[j]].add(delta)
					v[j] = v[j].sub(delta)
				} else {
					minv[j] = minv[j].sub(delta)
				}
			}
			// 2d. Stop at the first free column; otherwise continue from its owner.
			j0 = j1
			if owner[j0] == 0 {
				break
			}
		}
		// Flip the augmenting path back to the virtual source.
		for j0 != 0 {
			j1 := way[j0]
			owner[j0] = owner[j1]
			j0 = j1
		}
	}

	// 3. Read the pairs back in the caller's orientation. Any forbidden
	//    pair left in the optimum means no feasible assignment exists.
	for j := 1; j <= w; j++ {
		if owner[j] == 0 {
			continue
		}
		row, col := owner[j]-1, j-1
		if transposed {
			row, col = col, row
		}
		res.RowToCol[row] = col
		res.ColToRow[col] = row
		x := m.data[row*m.c+col]
		if math.IsInf(x, 1) {
			res.Feasible = false
			continue
		}
		res.Cost += x
	}

	return res, nil
}

func fill(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
