package asset

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/valerio/go-jazz/jazz/codec"
	"github.com/valerio/go-jazz/jazz/stream"
	"github.com/valerio/go-jazz/jazz/video"
)

// MaxPictureSide bounds both dimensions of a picture.
const MaxPictureSide = 1024

// Picture is a full-screen image stored with its own palette, such as a menu
// background or a cutscene frame.
//
// Layout: width and height as uint16, then the palette and the pixels, each
// as a size-prefixed RLE block.
type Picture struct {
	Palette video.Palette
	Image   *video.IndexedImage
}

// LoadPicture reads a picture at the current offset. The image refers to the
// picture's own palette.
func (f *File) LoadPicture() (*Picture, error) {
	width, err := f.LoadUint16Max(MaxPictureSide)
	if err != nil {
		return nil, err
	}
	height, err := f.LoadUint16Max(MaxPictureSide)
	if err != nil {
		return nil, err
	}

	pic := &Picture{}
	pic.Palette, err = f.LoadPalette(true)
	if err != nil {
		return nil, err
	}
	pic.Image, err = f.LoadSurface(int(width), int(height), &pic.Palette)
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded picture", "name", f.Name(), "width", width, "height", height)
	return pic, nil
}

// EncodePicture writes m in the layout LoadPicture reads.
func EncodePicture(w io.Writer, m *image.Paletted, depth video.Depth) error {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	if width > MaxPictureSide || height > MaxPictureSide {
		return fmt.Errorf("%w: picture of %dx%d exceeds %d", stream.ErrCorrupt, width, height, MaxPictureSide)
	}
	if len(m.Palette) > video.PaletteSize {
		return fmt.Errorf("%w: palette of %d colors", stream.ErrCorrupt, len(m.Palette))
	}

	pal := PaletteOf(m.Palette)
	pixels := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		start := y * m.Stride
		pixels = append(pixels, m.Pix[start:start+width]...)
	}

	sw := stream.NewWriter(w)
	sw.WriteUint16(uint16(width))
	sw.WriteUint16(uint16(height))
	for _, block := range [][]byte{pal.Bytes(depth), pixels} {
		if err := writeRLEBlock(sw, block); err != nil {
			return err
		}
	}
	if err := sw.Err(); err != nil {
		return fmt.Errorf("failed to write picture: %w", err)
	}
	return nil
}

func writeRLEBlock(sw *stream.Writer, data []byte) error {
	packed := codec.EncodeRLE(data)
	if len(packed) > 0xFFFF {
		return fmt.Errorf("%w: compressed block of %d bytes does not fit a size field", stream.ErrCorrupt, len(packed))
	}
	sw.WriteUint16(uint16(len(packed)))
	sw.WriteBlock(packed)
	return nil
}
