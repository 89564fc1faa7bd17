// Package matchenv clusters particles of a periodic configuration by the
// geometry of their local neighbor environments, or tests every particle
// against a reference structural motif.
//
// What & Why
//
//   - An Environment is the ordered set of up to k neighbor displacement
//     vectors of one particle. Each vector carries a slot label.
//   - IsSimilar decides whether two environments are structurally
//     equivalent: min(|e1|, |e2|) vectors of each must pair one-to-one with
//     every pair's squared distance within the threshold. The pairing is the
//     minimum-cost assignment (package assignment), so vector order never
//     matters.
//   - DisjointSet is a union-find forest whose merge step re-slots one tree
//     through the correspondence found by IsSimilar. After any chain of
//     merges, slot s names the same neighbor direction in every environment
//     of a tree, which makes per-cluster averaging meaningful.
//   - MatchEnv drives it all: Cluster compares every pair of particles and
//     merges similar ones; MatchMotif compares every particle with one ghost
//     reference environment.
//
// Threshold
//
//	Callers pass a unitless threshold t with 0 <= t < 2. Two vectors match
//	when |v1 - v2|² <= (t·rmax)². The comparison is inclusive.
//
// Determinism
//
//	Neighbor lists, similarity tests and merge order are all fixed by the
//	input, so repeated runs give identical labels, averages and slots for
//	any worker count. Work is parallel in two places: environment
//	construction (per particle) and the similarity tests of one row of the
//	pair scan. Merges always run on a single goroutine.
//
// Errors
//
//   - ErrInvalidConfiguration : New/SetBox with bad rmax, k or box.
//   - ErrCapacityExceeded     : more than k vectors in one environment (aborts the call).
//   - ErrInvalidThreshold     : NaN, negative or >= MaxThreshold threshold.
//   - ErrIndexOutOfRange / ErrUnknownCluster : accessor misuse.
//
// A particle with fewer than k valid neighbors (for example after
// WithHardRadius filtering) is not an error; it takes part with fewer
// vectors.
//
// Example:
//
//	b, _ := box.Cube(10)
//	me, err := matchenv.New(b, 1.5, 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	clusters, err := me.Cluster(points, 0.2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(clusters.NumClusters())
package matchenv
