// SPDX-License-Identifier: MIT

// Package assignment solves the rectangular linear assignment problem with
// forbidden pairs: given an r×c cost matrix, pick min(r, c) pairs (i, j),
// each row and each column used at most once, minimizing the total cost.
//
// What & Why
//
//   - Forbidden pairs are expressed as +Inf. A solution is Feasible only if it
//     uses no forbidden pair; otherwise no assignment of size min(r, c) exists
//     over the finite entries and the returned pairing is only best-effort.
//   - The solver is the Kuhn–Munkres method with row/column potentials and a
//     shortest augmenting path per row (O(n²·m) for n = min(r,c), m = max(r,c)).
//   - Costs are compared as the ordered triple
//     (forbidden pairs used, total cost, lexicographic rank), so it minimizes
//     forbidden pairs first, then cost, and breaks exact cost ties
//     toward the lexicographically smallest pairing.
//
// Tie-breaking
//
//	Pairings are ranked by the partner list of the smaller side, in index
//	order: when r <= c the sequence (col(row0), col(row1), ...), otherwise
//	(row(col0), row(col1), ...). Among equal-cost optima the smallest
//	sequence wins. The rank is encoded as a base-m integer; problems too
//	large for an int64 encoding (m^n beyond 2^58) keep a deterministic but
//	unspecified tie order.
//
// Errors
//
//   - ErrBadShape    : negative dimensions or ragged input rows.
//   - ErrOutOfRange  : At/Set outside the matrix.
//   - ErrNaN         : NaN costs are rejected (use +Inf to forbid a pair).
//   - ErrNilMatrix   : Solve(nil).
//
// Complexity quicksheet
//
//	NewMatrix O(r·c); At/Set O(1); Solve O(n²·m) time, O(m) extra space.
package assignment
