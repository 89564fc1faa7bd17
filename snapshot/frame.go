package snapshot

import (
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/katalvlaran/envmatch/box"
	"github.com/katalvlaran/envmatch/geom"
)

// BoxSpec is the serialized form of a box.Box.
type BoxSpec struct {
	L    [3]float64 `json:"l"`
	Tilt [3]float64 `json:"tilt"`
	TwoD bool       `json:"2d,omitempty"`
}

// BoxSpecOf returns the serialized form of b.
func BoxSpecOf(b box.Box) BoxSpec {
	xy, xz, yz := b.Tilt()
	return BoxSpec{L: b.L().Array(), Tilt: [3]float64{xy, xz, yz}, TwoD: b.Is2D()}
}

// Box builds the box described by s.
func (s BoxSpec) Box() (box.Box, error) {
	opts := []box.Option{box.WithTilt(s.Tilt[0], s.Tilt[1], s.Tilt[2])}
	if s.TwoD {
		opts = append(opts, box.As2D())
	}
	b, err := box.New(s.L[0], s.L[1], s.L[2], opts...)
	if err != nil {
		return box.Box{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return b, nil
}

// Frame is one configuration of particles.
type Frame struct {
	Box    BoxSpec      `json:"box"`
	Points [][3]float64 `json:"points"`
	Motif  [][3]float64 `json:"motif,omitempty"`
}

// NewFrame builds a frame from typed values.
func NewFrame(b box.Box, points, motif []geom.Vec3) *Frame {
	return &Frame{Box: BoxSpecOf(b), Points: toArrays(points), Motif: toArrays(motif)}
}

// Positions returns the particle positions.
func (f *Frame) Positions() []geom.Vec3 { return fromArrays(f.Points) }

// MotifVectors returns the reference motif, or nil when the frame carries none.
func (f *Frame) MotifVectors() []geom.Vec3 { return fromArrays(f.Motif) }

// Validate checks the box and that every coordinate is finite.
func (f *Frame) Validate() error {
	if _, err := f.Box.Box(); err != nil {
		return err
	}
	for i, p := range f.Points {
		if !geom.FromArray(p).IsFinite() {
			return fmt.Errorf("point %d %v: %w", i, p, ErrFormat)
		}
	}
	for i, p := range f.Motif {
		if !geom.FromArray(p).IsFinite() {
			return fmt.Errorf("motif vector %d %v: %w", i, p, ErrFormat)
		}
	}
	return nil
}

// Decode reads one frame from r.
func Decode(r io.Reader, c Compression) (*Frame, error) {
	src, release, err := newReader(r, c)
	if err != nil {
		return nil, err
	}
	defer release()

	var f Frame
	if err = gojson.NewDecoder(src).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if err = f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Encode writes f to w.
func Encode(w io.Writer, f *Frame, c Compression) error {
	return writeJSON(w, f, c)
}

// Load reads the frame stored at path, decompressing by extension.
func Load(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, CompressionFromPath(path))
}

// Save writes f to path, compressing by extension.
func Save(path string, f *Frame) error {
	return writeFile(path, f)
}

func writeJSON(w io.Writer, v any, c Compression) error {
	dst, err := newWriter(w, c)
	if err != nil {
		return err
	}
	enc := gojson.NewEncoder(dst)
	enc.SetIndent("", "  ")
	if err = enc.Encode(v); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

func writeFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = writeJSON(file, v, CompressionFromPath(path)); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func toArrays(vs []geom.Vec3) [][3]float64 {
	if vs == nil {
		return nil
	}
	out := make([][3]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Array()
	}
	return out
}

func fromArrays(as [][3]float64) []geom.Vec3 {
	if as == nil {
		return nil
	}
	out := make([]geom.Vec3, len(as))
	for i, a := range as {
		out[i] = geom.FromArray(a)
	}
	return out
}
