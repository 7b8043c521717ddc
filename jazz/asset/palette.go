package asset

import (
	"fmt"

	"github.com/valerio/go-jazz/jazz/codec"
	"github.com/valerio/go-jazz/jazz/stream"
	"github.com/valerio/go-jazz/jazz/video"
)

// ReadPalette reads count RGB entries from src into a palette. With rle set
// the 3×count bytes are run-length decoded first; otherwise they are read raw.
// Entries from count upwards are black.
func ReadPalette(src codec.Source, count int, rle bool, depth video.Depth) (video.Palette, error) {
	if count < 0 || count > video.PaletteSize {
		return video.Palette{}, fmt.Errorf("%w: palette of %d entries", stream.ErrCorrupt, count)
	}

	var raw []byte
	var err error
	if rle {
		raw, err = codec.DecodeRLE(src, 3*count)
	} else {
		raw, err = src.ReadBlock(3 * count)
	}
	if err != nil {
		return video.Palette{}, err
	}

	return video.PaletteFromBytes(raw, depth)
}

// LoadPalette reads a full 256 entry palette. Compressed palettes are stored
// as a size-prefixed RLE block.
func (f *File) LoadPalette(rle bool) (video.Palette, error) {
	src := codec.Source(f.s)
	if rle {
		block, err := f.rleBlock()
		if err != nil {
			return video.Palette{}, f.fail("palette", err)
		}
		src = block
	}

	p, err := ReadPalette(src, video.PaletteSize, rle, f.depth)
	if err != nil {
		return video.Palette{}, f.fail("palette", err)
	}
	return p, nil
}
