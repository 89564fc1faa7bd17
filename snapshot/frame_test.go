package snapshot_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/envmatch/box"
	"github.com/katalvlaran/envmatch/geom"
	"github.com/katalvlaran/envmatch/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame(t *testing.T) *snapshot.Frame {
	t.Helper()
	b, err := box.New(10, 11, 12, box.WithTilt(0.5, 0, 0))
	require.NoError(t, err)
	points := []geom.Vec3{geom.V(0, 0, 0), geom.V(1, 0.5, -2)}
	motif := []geom.Vec3{geom.V(1, 0, 0)}
	return snapshot.NewFrame(b, points, motif)
}

func TestCompressionFromPath(t *testing.T) {
	cases := map[string]snapshot.Compression{
		"frame.json":     snapshot.None,
		"frame":          snapshot.None,
		"frame.json.zst": snapshot.Zstd,
		"FRAME.ZSTD":     snapshot.Zstd,
		"frame.json.lz4": snapshot.LZ4,
	}
	for path, want := range cases {
		assert.Equal(t, want, snapshot.CompressionFromPath(path), path)
	}
	assert.Equal(t, "zstd", snapshot.Zstd.String())
	assert.Equal(t, "compression(9)", snapshot.Compression(9).String())
}

func TestEncodeDecode_AllCompressions(t *testing.T) {
	f := sampleFrame(t)
	for _, c := range []snapshot.Compression{snapshot.None, snapshot.LZ4, snapshot.Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, snapshot.Encode(&buf, f, c))

			got, err := snapshot.Decode(&buf, c)
			require.NoError(t, err)
			assert.Equal(t, f, got)
			assert.Equal(t, f.Positions(), got.Positions())
			assert.Equal(t, []geom.Vec3{geom.V(1, 0, 0)}, got.MotifVectors())

			b, err := got.Box.Box()
			require.NoError(t, err)
			xy, _, _ := b.Tilt()
			assert.Equal(t, 0.5, xy)
		})
	}
}

func TestEncode_PlainIsReadableJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, sampleFrame(t), snapshot.None))
	assert.Contains(t, buf.String(), `"points"`)
	assert.Contains(t, buf.String(), `"motif"`)
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]string{
		"syntax":   `{"box": `,
		"zero box": `{"box": {"l": [0, 1, 1]}, "points": []}`,
		"no box":   `{"points": [[0, 0, 0]]}`,
	}
	for name, doc := range cases {
		_, err := snapshot.Decode(strings.NewReader(doc), snapshot.None)
		assert.ErrorIs(t, err, snapshot.ErrFormat, name)
	}

	_, err := snapshot.Decode(strings.NewReader(`{"box": {"l": [0, 1, 1]}}`), snapshot.None)
	assert.ErrorIs(t, err, box.ErrInvalidBox)

	_, err = snapshot.Decode(strings.NewReader(`{}`), snapshot.Compression(7))
	assert.ErrorIs(t, err, snapshot.ErrUnknownCompression)
	assert.ErrorIs(t, snapshot.Encode(&bytes.Buffer{}, sampleFrame(t), snapshot.Compression(7)), snapshot.ErrUnknownCompression)
}

func TestDecode_TwoDimensionalBox(t *testing.T) {
	doc := `{"box": {"l": [5, 5, 0], "2d": true}, "points": [[1, 1, 0]]}`
	f, err := snapshot.Decode(strings.NewReader(doc), snapshot.None)
	require.NoError(t, err)
	b, err := f.Box.Box()
	require.NoError(t, err)
	assert.True(t, b.Is2D())
	assert.Nil(t, f.MotifVectors())
}

func TestFrame_ValidateRejectsNonFinite(t *testing.T) {
	f := sampleFrame(t)
	f.Points[1][2] = posInf()
	assert.ErrorIs(t, f.Validate(), snapshot.ErrFormat)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	f := sampleFrame(t)
	for _, name := range []string{"frame.json", "frame.json.zst", "frame.json.lz4"} {
		path := filepath.Join(dir, name)
		require.NoError(t, snapshot.Save(path, f), name)
		got, err := snapshot.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, f, got, name)
	}

	_, err := snapshot.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
