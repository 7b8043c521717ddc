package asset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-jazz/jazz/codec"
	"github.com/valerio/go-jazz/jazz/resource"
	"github.com/valerio/go-jazz/jazz/stream"
	"github.com/valerio/go-jazz/jazz/video"
)

// fixture builds an in-memory asset file.
type fixture struct {
	buf bytes.Buffer
	w   *stream.Writer
}

func newFixture() *fixture {
	f := &fixture{}
	f.w = stream.NewWriter(&f.buf)
	return f
}

// rle appends data as a size-prefixed RLE block followed by padding bytes
// inside the block that the decoder never reaches.
func (f *fixture) rle(data []byte, padding int) *fixture {
	packed := append(codec.EncodeRLE(data), make([]byte, padding)...)
	f.w.WriteUint16(uint16(len(packed)))
	f.w.WriteBlock(packed)
	return f
}

func (f *fixture) raw(b ...byte) *fixture {
	f.w.WriteBlock(b)
	return f
}

func (f *fixture) file(t *testing.T, depth video.Depth) *File {
	t.Helper()
	require.NoError(t, f.w.Err())
	return NewFile(stream.New("fixture.000", f.buf.Bytes()), depth)
}

func TestLoadSurfaceUsesSharedPalette(t *testing.T) {
	pixels := []byte{0, 1, 2, 3, 250, 251, 252, 255}
	f := newFixture().rle(pixels, 0).file(t, video.Depth8)

	logical := video.LogicalPalette()
	img, err := f.LoadSurface(4, 2, &logical)
	require.NoError(t, err)

	assert.Same(t, &logical, img.Palette())
	assert.Equal(t, pixels, img.Pix())
	for i, index := range img.Pix() {
		c := img.Palette()[index]
		assert.Equal(t, video.Color{R: index, G: index, B: index}, c, "pixel %d", i)
	}
	assert.Equal(t, f.Size(), f.Tell())
}

func TestLoadRLESkipsToBlockEnd(t *testing.T) {
	first := bytes.Repeat([]byte{0x42}, 40)
	second := []byte{1, 2, 3, 4, 5}
	f := newFixture().rle(first, 7).rle(second, 0).raw(0x99).file(t, video.Depth8)

	out, err := f.LoadRLE(len(first))
	require.NoError(t, err)
	assert.Equal(t, first, out)

	out, err = f.LoadRLE(len(second))
	require.NoError(t, err)
	assert.Equal(t, second, out)

	b, err := f.LoadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), b)
}

func TestSkipRLE(t *testing.T) {
	f := newFixture().rle(bytes.Repeat([]byte{7}, 300), 3).raw(0x11).file(t, video.Depth8)

	require.NoError(t, f.SkipRLE())
	b, err := f.LoadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), b)
}

func TestLoadRLEErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		n    int
		kind string
	}{
		{
			name: "size prefix past end of file",
			data: []byte{0x10, 0x00, 0x81},
			n:    2,
			kind: "TruncatedStream",
		},
		{
			name: "missing size prefix",
			data: []byte{0x01},
			n:    1,
			kind: "TruncatedStream",
		},
		{
			name: "block ends between runs",
			data: []byte{0x02, 0x00, 0x01, 0x33},
			n:    4,
			kind: "DecodeUnderrun",
		},
		{
			name: "block ends inside a literal run",
			data: []byte{0x02, 0x00, 0x83, 0x33},
			n:    4,
			kind: "DecodeOverrun",
		},
		{
			name: "run longer than the output",
			data: []byte{0x02, 0x00, 0x05, 0x33},
			n:    4,
			kind: "DecodeOverrun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFile(stream.New("broken.000", tt.data), video.Depth8)
			_, err := f.LoadRLE(tt.n)
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, "rle", le.Op)
			assert.Equal(t, "broken.000", le.Name)
			assert.Equal(t, tt.kind, le.Kind())
			assert.Equal(t, tt.kind, ErrorKind(err))
		})
	}
}

func TestLoadCompressedBlocks(t *testing.T) {
	data := bytes.Repeat([]byte("OPENJAZZ"), 32)

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	lz := []byte{0x01, 0xAB, 0x00, 0x20}
	f := newFixture().raw(lz...).raw(zbuf.Bytes()...).file(t, video.Depth8)

	out, err := f.LoadLZ(len(lz), 6)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 6), out)

	out, err = f.LoadZlib(zbuf.Len(), len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)

	require.NoError(t, f.Seek(0, true))
	_, err = f.LoadLZ(len(lz), 7)
	assert.Equal(t, "DecodeUnderrun", ErrorKind(err))

	_, err = f.LoadZlib(f.Size(), len(data))
	assert.Equal(t, "TruncatedStream", ErrorKind(err))
}

func TestLoadPixels(t *testing.T) {
	const key = 0xFE
	f := newFixture().
		raw(0, 4, 1, 5, 2, 6, 3, 7).
		raw(0x09, 0x05, 0x10, key, 0x14, 0x16, 0x13).
		file(t, video.Depth8)

	pixels, err := f.LoadPixels(8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, pixels)

	masked, err := f.LoadMaskedPixels(8, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, key, key, 0x13, 0x14, key, 0x16, key}, masked)

	_, err = f.LoadMaskedPixels(8, key)
	assert.Equal(t, "TruncatedStream", ErrorKind(err))
}

func TestLoadPalette(t *testing.T) {
	raw := make([]byte, 3*video.PaletteSize)
	raw[0], raw[1], raw[2] = 63, 32, 0
	raw[765], raw[766], raw[767] = 1, 2, 3

	t.Run("raw 6-bit", func(t *testing.T) {
		p, err := newFixture().raw(raw...).file(t, video.Depth6).LoadPalette(false)
		require.NoError(t, err)
		assert.Equal(t, video.Color{R: 255, G: 130, B: 0}, p[0])
		assert.Equal(t, video.Color{R: 4, G: 8, B: 12}, p[255])
	})

	t.Run("rle 8-bit", func(t *testing.T) {
		f := newFixture().rle(raw, 2).raw(0x77).file(t, video.Depth8)
		p, err := f.LoadPalette(true)
		require.NoError(t, err)
		assert.Equal(t, video.Color{R: 63, G: 32, B: 0}, p[0])
		assert.Equal(t, video.Color{R: 1, G: 2, B: 3}, p[255])

		b, err := f.LoadByte()
		require.NoError(t, err)
		assert.Equal(t, byte(0x77), b)
	})

	t.Run("short data", func(t *testing.T) {
		_, err := newFixture().raw(raw[:10]...).file(t, video.Depth8).LoadPalette(false)
		assert.Equal(t, "TruncatedStream", ErrorKind(err))
	})
}

func TestReadPalette(t *testing.T) {
	src := stream.New("pal", codec.EncodeRLE([]byte{10, 20, 30, 40, 50, 60}))
	p, err := ReadPalette(src, 2, true, video.Depth8)
	require.NoError(t, err)
	assert.Equal(t, video.Color{R: 10, G: 20, B: 30}, p[0])
	assert.Equal(t, video.Color{R: 40, G: 50, B: 60}, p[1])
	assert.Equal(t, video.Color{}, p[2])

	_, err = ReadPalette(src, 300, false, video.Depth8)
	assert.ErrorIs(t, err, stream.ErrCorrupt)
}

func TestIdentityPaletteMatchesLogical(t *testing.T) {
	identity := make([]byte, 0, 3*video.PaletteSize)
	for i := 0; i < video.PaletteSize; i++ {
		identity = append(identity, byte(i), byte(i), byte(i))
	}
	logical := video.LogicalPalette()

	t.Run("raw", func(t *testing.T) {
		src := stream.New("pal", identity)
		p, err := ReadPalette(src, video.PaletteSize, false, video.Depth8)
		require.NoError(t, err)
		assert.Equal(t, logical, p)
		assert.Equal(t, 0, src.Remaining())
	})

	t.Run("rle", func(t *testing.T) {
		src := stream.New("pal", codec.EncodeRLE(identity))
		p, err := ReadPalette(src, video.PaletteSize, true, video.Depth8)
		require.NoError(t, err)
		assert.Equal(t, logical, p)
	})

	t.Run("file raw", func(t *testing.T) {
		f := newFixture().raw(identity...).file(t, video.Depth8)
		p, err := f.LoadPalette(false)
		require.NoError(t, err)
		assert.Equal(t, logical, p)
		assert.Equal(t, f.Size(), f.Tell())
	})

	t.Run("file rle block", func(t *testing.T) {
		f := newFixture().rle(identity, 3).raw(0x7F).file(t, video.Depth8)
		p, err := f.LoadPalette(true)
		require.NoError(t, err)
		assert.Equal(t, logical, p)

		b, err := f.LoadByte()
		require.NoError(t, err)
		assert.Equal(t, byte(0x7F), b, "cursor ends after the block")
	})
}

func TestLoaderOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "font.000"), []byte{0x2A}, 0644))

	l := NewLoader(resource.NewSearchPath(dir), video.Depth8)
	f, err := l.Open("FONT.000")
	require.NoError(t, err)
	b, err := f.LoadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x2A), b)

	require.NoError(t, f.Close())
	_, err = f.LoadByte()
	assert.Equal(t, "TruncatedStream", ErrorKind(err))

	_, err = l.Open("missing.000")
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.Equal(t, "ResourceNotFound", ErrorKind(err))
	assert.Contains(t, err.Error(), "missing.000")
}
