// Package box implements the periodic simulation box used to wrap particle
// displacements under the minimum-image convention.
//
// Geometry:
//
//	The box is spanned by the lattice vectors
//	  a1 = (Lx, 0, 0)
//	  a2 = (xy·Ly, Ly, 0)
//	  a3 = (xz·Lz, yz·Lz, Lz)
//	where xy, xz, yz are the tilt factors (all zero for an orthorhombic box).
//	A 2D box ignores the z axis entirely: Lz is not validated and z components
//	are never wrapped.
//
// Errors:
//
//	ErrInvalidBox is returned (wrapped with the offending parameter) when a
//	side length is non-positive or any parameter is NaN or ±Inf.
package box

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/envmatch/geom"
)

// ErrInvalidBox indicates a malformed box definition.
var ErrInvalidBox = errors.New("box: invalid box")

// Box is an immutable periodic simulation cell.
type Box struct {
	lx, ly, lz float64
	xy, xz, yz float64
	is2D       bool
}

// Option configures optional box parameters.
type Option func(*Box)

// WithTilt sets the xy, xz and yz tilt factors of a triclinic box.
func WithTilt(xy, xz, yz float64) Option {
	return func(b *Box) {
		b.xy, b.xz, b.yz = xy, xz, yz
	}
}

// As2D marks the box as two dimensional.
func As2D() Option {
	return func(b *Box) {
		b.is2D = true
	}
}

// New returns a box with side lengths lx, ly, lz.
func New(lx, ly, lz float64, opts ...Option) (Box, error) {
	b := Box{lx: lx, ly: ly, lz: lz}
	for _, opt := range opts {
		opt(&b)
	}
	if err := b.Validate(); err != nil {
		return Box{}, err
	}

	return b, nil
}

// Cube returns a cubic box of side l.
func Cube(l float64) (Box, error) {
	return New(l, l, l)
}

// Validate reports whether b is well formed. The zero Box is not.
func (b Box) Validate() error {
	sides := []struct {
		name string
		v    float64
	}{{"Lx", b.lx}, {"Ly", b.ly}, {"Lz", b.lz}}
	for i, s := range sides {
		if b.is2D && i == 2 {
			continue
		}
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) || s.v <= 0 {
			return fmt.Errorf("%s=%g must be finite and > 0: %w", s.name, s.v, ErrInvalidBox)
		}
	}
	tilts := []struct {
		name string
		v    float64
	}{{"xy", b.xy}, {"xz", b.xz}, {"yz", b.yz}}
	for _, s := range tilts {
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return fmt.Errorf("tilt %s=%g must be finite: %w", s.name, s.v, ErrInvalidBox)
		}
	}

	return nil
}

// L returns the side lengths (Lx, Ly, Lz).
func (b Box) L() geom.Vec3 {
	return geom.V(b.lx, b.ly, b.lz)
}

// Tilt returns the tilt factors (xy, xz, yz).
func (b Box) Tilt() (xy, xz, yz float64) {
	return b.xy, b.xz, b.yz
}

// Is2D reports whether the box is two dimensional.
func (b Box) Is2D() bool {
	return b.is2D
}

// Volume returns the box volume, or its area for a 2D box.
func (b Box) Volume() float64 {
	if b.is2D {
		return b.lx * b.ly
	}

	return b.lx * b.ly * b.lz
}

// Wrap maps the displacement d onto its minimum image.
//
// The z image is removed first (it shifts x and y through the tilt), then y,
// then x. Each component of the result lies in [-L/2, L/2) along its own
// lattice direction: an exact +L/2 maps to -L/2, and -L/2 is kept.
func (b Box) Wrap(d geom.Vec3) geom.Vec3 {
	if !b.is2D {
		n := image(d.Z, b.lz)
		d.X -= n * b.xz * b.lz
		d.Y -= n * b.yz * b.lz
		d.Z -= n * b.lz
	}
	n := image(d.Y, b.ly)
	d.X -= n * b.xy * b.ly
	d.Y -= n * b.ly
	n = image(d.X, b.lx)
	d.X -= n * b.lx

	return d
}

// image returns the number of periods l to subtract from x so that the
// remainder falls in [-l/2, l/2).
func image(x, l float64) float64 {
	return math.Floor(x/l + 0.5)
}
