// Package neighbor finds the k nearest neighbors of every particle in a
// periodic configuration and exposes them through the Source interface
// consumed by package matchenv.
//
// What it computes:
//
//	For particle i the neighbor list holds up to k entries (j, d_ij) where
//	d_ij = Wrap(p_j - p_i) is the minimum-image displacement from i to j.
//	Entries are ordered by ascending |d_ij|², ties broken by ascending j.
//	A particle never lists itself. When the configuration holds k or fewer
//	particles, every particle lists all the others (fewer than k entries);
//	this is not an error.
//
// Determinism:
//
//	The result depends only on the points, the box and k. Work is split
//	across goroutines per particle, but every particle's list is computed
//	independently and written to its own slot, so scheduling never changes
//	the output.
//
// Complexity:
//
//	Time O(N² log N) for N particles (brute force over all pairs, sorted per
//	particle); Space O(N·k) retained plus O(N) scratch per worker.
//
// Errors:
//
//	ErrInvalidK          k < 1.
//	ErrNilWrapper        no periodic wrapper supplied.
//	ErrNonFinitePoint    a position is NaN or ±Inf.
//	ErrIndexOutOfRange   Neighbors(i) with i outside [0, Len()).
package neighbor
