package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-jazz/jazz/stream"
)

func TestDeinterleave(t *testing.T) {
	// Plane 0 holds pixels 0 and 4, plane 1 pixels 1 and 5, and so on.
	planar := []byte{0, 4, 1, 5, 2, 6, 3, 7}
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, Deinterleave(planar))
	assert.Empty(t, Deinterleave(nil))
}

func TestDecodeMaskedPixels(t *testing.T) {
	const key = 0xFE

	// Mask bits in image order: pixels 0, 3, 4 and 6 are opaque.
	// In planar order those pixels sit at 0, 6, 1 and 5.
	src := stream.New("masked", []byte{
		0x09,      // pixels 0..3: 1001
		0x05,      // pixels 4..7: 0101
		0x10,      // planar 0 -> pixel 0
		key, 0x14, // planar 1 -> pixel 4, key byte skipped
		0x16,      // planar 5 -> pixel 6
		0x13,      // planar 6 -> pixel 3
		0xAA,      // left over
	})

	pixels, err := DecodeMaskedPixels(src, 8, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, key, key, 0x13, 0x14, key, 0x16, key}, pixels)

	next, err := src.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), next)
}

func TestDecodeMaskedPixelsTruncated(t *testing.T) {
	_, err := DecodeMaskedPixels(stream.New("short mask", []byte{0x0F}), 8, 0)
	assert.ErrorIs(t, err, stream.ErrTruncated)

	_, err = DecodeMaskedPixels(stream.New("short pixels", []byte{0x01, 0x00}), 8, 0)
	assert.ErrorIs(t, err, stream.ErrTruncated)
}
