package box_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/envmatch/box"
	"github.com/katalvlaran/envmatch/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name       string
		lx, ly, lz float64
		opts       []box.Option
	}{
		{"zero Lx", 0, 1, 1, nil},
		{"negative Ly", 1, -1, 1, nil},
		{"NaN Lz", 1, 1, math.NaN(), nil},
		{"Inf Lx", math.Inf(1), 1, 1, nil},
		{"NaN tilt", 1, 1, 1, []box.Option{box.WithTilt(math.NaN(), 0, 0)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := box.New(tc.lx, tc.ly, tc.lz, tc.opts...)
			assert.ErrorIs(t, err, box.ErrInvalidBox)
		})
	}
}

func TestNew_2DIgnoresLz(t *testing.T) {
	b, err := box.New(4, 4, 0, box.As2D())
	require.NoError(t, err)
	assert.True(t, b.Is2D())
	assert.Equal(t, 16.0, b.Volume())
	// z is never wrapped in 2D.
	assert.Equal(t, geom.V(1, -1, 7), b.Wrap(geom.V(1, 3, 7)))
}

func TestWrap_Cube(t *testing.T) {
	b, err := box.Cube(10)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, b.Volume())

	cases := []struct {
		in, want geom.Vec3
	}{
		{geom.V(1, 2, 3), geom.V(1, 2, 3)},
		{geom.V(9, 0, 0), geom.V(-1, 0, 0)},
		{geom.V(-9, -6, 16), geom.V(1, 4, -4)},
		{geom.V(25, 0, 0), geom.V(-5, 0, 0)},
	}
	for _, tc := range cases {
		got := b.Wrap(tc.in)
		assert.InDelta(t, tc.want.X, got.X, 1e-12)
		assert.InDelta(t, tc.want.Y, got.Y, 1e-12)
		assert.InDelta(t, tc.want.Z, got.Z, 1e-12)
	}
}

func TestWrap_Triclinic(t *testing.T) {
	b, err := box.New(10, 10, 10, box.WithTilt(0.5, 0, 0))
	require.NoError(t, err)
	xy, xz, yz := b.Tilt()
	assert.Equal(t, 0.5, xy)
	assert.Zero(t, xz)
	assert.Zero(t, yz)

	// One image up along a2 = (5, 10, 0) brings (5, 9, 0) back to (0, -1, 0).
	got := b.Wrap(geom.V(5, 9, 0))
	assert.InDelta(t, 0.0, got.X, 1e-12)
	assert.InDelta(t, -1.0, got.Y, 1e-12)
	assert.InDelta(t, 0.0, got.Z, 1e-12)
}

func TestValidate_ZeroBox(t *testing.T) {
	var b box.Box
	assert.ErrorIs(t, b.Validate(), box.ErrInvalidBox)
}

func TestWrap_HalfBoxIsHalfOpen(t *testing.T) {
	b, err := box.Cube(10)
	require.NoError(t, err)

	assert.Equal(t, geom.V(-5, -5, -5), b.Wrap(geom.V(5, 5, 5)))
	assert.Equal(t, geom.V(-5, -5, -5), b.Wrap(geom.V(-5, -5, -5)))
	assert.Equal(t, geom.V(-5, 0, 0), b.Wrap(geom.V(15, 0, 0)))
}
