// Package asset loads sprites, palettes and pictures out of the legacy game
// data files. Every load failure is reported as a *LoadError.
package asset

import (
	"log/slog"

	"github.com/valerio/go-jazz/jazz/codec"
	"github.com/valerio/go-jazz/jazz/resource"
	"github.com/valerio/go-jazz/jazz/stream"
	"github.com/valerio/go-jazz/jazz/video"
)

// Loader opens asset files through a search path.
type Loader struct {
	paths *resource.SearchPath
	depth video.Depth
}

// NewLoader creates a loader. depth selects how palette channels are stored on disk.
func NewLoader(paths *resource.SearchPath, depth video.Depth) *Loader {
	return &Loader{
		paths: paths,
		depth: depth,
	}
}

// Open reads the named file and returns a cursor over it.
func (l *Loader) Open(name string) (*File, error) {
	s, err := l.paths.Open(name)
	if err != nil {
		return nil, &LoadError{Op: "open", Name: name, Err: err}
	}
	return NewFile(s, l.depth), nil
}

// File is one opened asset file. It is not safe for concurrent use.
type File struct {
	s     *stream.Stream
	depth video.Depth
}

// NewFile wraps an already loaded stream.
func NewFile(s *stream.Stream, depth video.Depth) *File {
	return &File{
		s:     s,
		depth: depth,
	}
}

// Close releases the file's buffer. Further loads fail with a truncated stream.
func (f *File) Close() error {
	f.s = stream.New(f.s.Name(), nil)
	return nil
}

func (f *File) fail(op string, err error) error {
	slog.Debug("Asset load failed", "op", op, "name", f.s.Name(), "offset", f.s.Position(), "error", err)
	return &LoadError{Op: op, Name: f.s.Name(), Err: err}
}

func (f *File) Name() string {
	return f.s.Name()
}

// Size returns the file size in bytes.
func (f *File) Size() int {
	return f.s.Len()
}

// Tell returns the current offset.
func (f *File) Tell() int {
	return f.s.Position()
}

// Seek moves to offset, absolute when fromStart is set and relative otherwise.
func (f *File) Seek(offset int, fromStart bool) error {
	if err := f.s.Seek(offset, fromStart); err != nil {
		return f.fail("seek", err)
	}
	return nil
}

func (f *File) LoadByte() (byte, error) {
	b, err := f.s.ReadByte()
	if err != nil {
		return 0, f.fail("byte", err)
	}
	return b, nil
}

func (f *File) LoadUint16() (uint16, error) {
	v, err := f.s.ReadUint16()
	if err != nil {
		return 0, f.fail("short", err)
	}
	return v, nil
}

// LoadUint16Max reads a size field and rejects values above max.
func (f *File) LoadUint16Max(max uint16) (uint16, error) {
	v, err := f.s.ReadUint16Max(max)
	if err != nil {
		return 0, f.fail("short", err)
	}
	return v, nil
}

func (f *File) LoadInt32() (int32, error) {
	v, err := f.s.ReadInt32()
	if err != nil {
		return 0, f.fail("int", err)
	}
	return v, nil
}

func (f *File) LoadBlock(n int) ([]byte, error) {
	b, err := f.s.ReadBlock(n)
	if err != nil {
		return nil, f.fail("block", err)
	}
	return b, nil
}

func (f *File) LoadString() (string, error) {
	str, err := f.s.ReadString()
	if err != nil {
		return "", f.fail("string", err)
	}
	return str, nil
}

// rleBlock reads the size prefix of an RLE block and returns the block as its
// own stream, leaving the file cursor at the end of the block.
func (f *File) rleBlock() (*stream.Stream, error) {
	size, err := f.s.ReadUint16()
	if err != nil {
		return nil, err
	}
	block, err := f.s.ReadBlock(int(size))
	if err != nil {
		return nil, err
	}
	return stream.New(f.s.Name(), block), nil
}

// LoadRLE decodes a size-prefixed RLE block into exactly n bytes. The cursor
// always ends up after the block, however much of it the decoder needed.
func (f *File) LoadRLE(n int) ([]byte, error) {
	block, err := f.rleBlock()
	if err != nil {
		return nil, f.fail("rle", err)
	}
	out, err := codec.DecodeRLE(block, n)
	if err != nil {
		return nil, f.fail("rle", err)
	}
	return out, nil
}

// SkipRLE moves past a size-prefixed RLE block without decoding it.
func (f *File) SkipRLE() error {
	size, err := f.s.ReadUint16()
	if err != nil {
		return f.fail("skip rle", err)
	}
	if err := f.s.Seek(int(size), false); err != nil {
		return f.fail("skip rle", err)
	}
	return nil
}

// LoadLZ decompresses compressedLength bytes of LZ data into n bytes.
func (f *File) LoadLZ(compressedLength, n int) ([]byte, error) {
	block, err := f.s.ReadBlock(compressedLength)
	if err != nil {
		return nil, f.fail("lz", err)
	}
	out, err := codec.DecodeLZ(block, n)
	if err != nil {
		return nil, f.fail("lz", err)
	}
	return out, nil
}

// LoadZlib inflates compressedLength bytes of zlib data into n bytes.
func (f *File) LoadZlib(compressedLength, n int) ([]byte, error) {
	block, err := f.s.ReadBlock(compressedLength)
	if err != nil {
		return nil, f.fail("zlib", err)
	}
	out, err := codec.InflateZlib(block, n)
	if err != nil {
		return nil, f.fail("zlib", err)
	}
	return out, nil
}

// LoadSurface decodes a width×height RLE image. The image reads its colors
// from pal, which is shared rather than copied.
func (f *File) LoadSurface(width, height int, pal *video.Palette) (*video.IndexedImage, error) {
	pixels, err := f.LoadRLE(width * height)
	if err != nil {
		return nil, err
	}
	img, err := video.NewIndexedImageFrom(pixels, width, height, pal)
	if err != nil {
		return nil, f.fail("surface", err)
	}
	slog.Debug("Loaded surface", "name", f.s.Name(), "width", width, "height", height)
	return img, nil
}

// LoadPixels reads n planar pixels and returns them in row-major order.
func (f *File) LoadPixels(n int) ([]byte, error) {
	planar, err := f.s.ReadBlock(n)
	if err != nil {
		return nil, f.fail("pixels", err)
	}
	return codec.Deinterleave(planar), nil
}

// LoadMaskedPixels reads n planar pixels behind a transparency mask. Masked
// out pixels are set to key.
func (f *File) LoadMaskedPixels(n int, key byte) ([]byte, error) {
	pixels, err := codec.DecodeMaskedPixels(f.s, n, key)
	if err != nil {
		return nil, f.fail("masked pixels", err)
	}
	return pixels, nil
}
