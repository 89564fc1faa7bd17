// Package snapshot reads particle frames and writes matching reports.
//
// A frame is a JSON document holding the simulation box, the particle
// positions and an optional reference motif:
//
//	{
//	  "box":    {"l": [10, 10, 10], "tilt": [0, 0, 0], "2d": false},
//	  "points": [[0, 0, 0], [1, 0, 0]],
//	  "motif":  [[1, 0, 0], [0, 1, 0]]
//	}
//
// Frames and reports may be stored compressed. The compression is chosen by
// file extension: ".zst" for Zstandard, ".lz4" for the LZ4 frame format,
// anything else is plain JSON.
package snapshot
