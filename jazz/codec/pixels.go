package codec

import (
	"fmt"

	"github.com/valerio/go-jazz/jazz/stream"
)

// Planar pixel data is stored as four interleaved planes: every fourth pixel
// of the image lives in the same quarter of the buffer.
func planarIndex(i, n int) int {
	return i>>2 + (i&3)*(n>>2)
}

// Deinterleave reorders planar pixel data into row-major order.
func Deinterleave(planar []byte) []byte {
	n := len(planar)
	out := make([]byte, n)
	for i := range out {
		out[i] = planar[planarIndex(i, n)]
	}
	return out
}

// DecodeMaskedPixels reads n planar pixels preceded by a transparency mask.
//
// The mask packs four one-bit entries into the low nibble of each byte. Pixels
// whose mask bit is clear become key. Pixels whose mask bit is set are read
// from src in planar order, skipping any byte equal to key since an opaque
// pixel can never be transparent.
func DecodeMaskedPixels(src Source, n int, key byte) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative pixel count %d", stream.ErrCorrupt, n)
	}

	mask := make([]byte, n)
	var bits byte
	for i := range mask {
		if i&3 == 0 {
			b, err := src.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("reading pixel mask: %w", err)
			}
			bits = b
		}
		mask[i] = (bits >> (i & 3)) & 1
	}

	// The mask is in image order but the pixels that follow are planar.
	planarMask := make([]byte, n)
	for i, m := range mask {
		planarMask[planarIndex(i, n)] = m
	}

	planar := make([]byte, n)
	for i := range planar {
		planar[i] = key
		if planarMask[i] == 0 {
			continue
		}
		for planar[i] == key {
			b, err := src.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("reading masked pixel %d: %w", i, err)
			}
			planar[i] = b
		}
	}

	return Deinterleave(planar), nil
}
