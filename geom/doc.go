// Package geom provides the small 3D vector type shared by every other
// package in envmatch.
//
// Vec3 is a plain value type: all operations return new values and never
// mutate the receiver, so vectors can be copied freely between goroutines.
//
// Sentinel:
//
//	NaN() returns a vector whose three components are NaN. It marks "no value"
//	in fixed-length vector slices (for example an averaged environment slot
//	that no environment contributed to). Test for it with Vec3.IsNaN.
package geom
