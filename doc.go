// Package envmatch groups particles of a simulation frame by the shape of
// their local neighborhoods.
//
// 🚀 What is envmatch?
//
//	A deterministic, parallel library that brings together:
//		• Geometry: Vec3 values and periodic boxes with minimum-image wrapping
//		• Neighbors: brute-force k-nearest-neighbor lists over a box
//		• Assignment: optimal rectangular matching with forbidden pairs
//		• Matching: environment similarity, frame-aligning union-find,
//		  clustering and motif search
//		• Snapshots: JSON frames and reports, plain, zstd or lz4
//
// Under the hood, everything is organized under these subpackages:
//
//	geom/       Vec3 and the NaN sentinel
//	box/        periodic simulation box, Wrap
//	neighbor/   Source interface and KNN
//	assignment/ Hungarian solver over a cost Matrix
//	matchenv/   Environment, IsSimilar, DisjointSet, MatchEnv
//	snapshot/   frame and report files
//
// Quick picture: two particles whose neighbors are listed in different
// orders still match,
//
//	A: (1,0,0) (0,1,0)
//	B: (0,1,0) (1,0,0)
//
// and after merging, slot 0 of both names the +x neighbor.
//
//	go run ./cmd/matchenv -mode cluster -rmax 1.5 -k 6 frame.json
package envmatch
