package codec

import (
	"fmt"

	"github.com/valerio/go-jazz/jazz/stream"
)

// Back-reference word layout: low 12 bits hold distance-1, high 4 bits length-3.
const (
	lzDistanceMask = 0x0FFF
	lzLengthShift  = 12
	lzMinLength    = 3

	// LZMaxDistance is the furthest a back-reference can reach.
	LZMaxDistance = lzDistanceMask + 1
	// LZMaxLength is the longest a single back-reference can copy.
	LZMaxLength = 0x0F + lzMinLength
)

// DecodeLZ decompresses src into exactly n bytes.
//
// A control byte supplies eight flags, least significant bit first. A set
// flag means the next input byte is a literal; a clear flag means the next two
// bytes are a little-endian back-reference word. References are copied one
// byte at a time so a distance shorter than the length repeats the pattern.
//
// All of src must be consumed: input left over once n bytes are produced is
// an overrun.
func DecodeLZ(src []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative output length %d", stream.ErrCorrupt, n)
	}

	out := make([]byte, n)
	in, pos := 0, 0

	for pos < n {
		if in >= len(src) {
			return nil, fmt.Errorf("%w: input ended at output %d of %d", stream.ErrUnderrun, pos, n)
		}
		flags := src[in]
		in++

		for bit := 0; bit < 8 && pos < n; bit++ {
			if flags&(1<<bit) != 0 {
				if in >= len(src) {
					return nil, fmt.Errorf("%w: literal missing at output %d of %d", stream.ErrUnderrun, pos, n)
				}
				out[pos] = src[in]
				in++
				pos++
				continue
			}

			if in+2 > len(src) {
				return nil, fmt.Errorf("%w: back-reference cut short at output %d of %d", stream.ErrUnderrun, pos, n)
			}
			word := int(src[in]) | int(src[in+1])<<8
			in += 2

			distance := word&lzDistanceMask + 1
			length := word>>lzLengthShift + lzMinLength

			if distance > pos {
				return nil, fmt.Errorf("%w: back-reference distance %d at output %d", stream.ErrCorrupt, distance, pos)
			}
			if pos+length > n {
				return nil, fmt.Errorf("%w: back-reference of %d at %d exceeds length %d", stream.ErrOverrun, length, pos, n)
			}

			from := pos - distance
			for i := 0; i < length; i++ {
				out[pos] = out[from+i]
				pos++
			}
		}
	}

	if in != len(src) {
		return nil, fmt.Errorf("%w: %d input bytes left after %d output bytes", stream.ErrOverrun, len(src)-in, n)
	}

	return out, nil
}

// LZReference packs a back-reference word for DecodeLZ. It is the inverse of
// the decoder's field layout and is mostly useful for building fixtures.
func LZReference(distance, length int) (lo, hi byte, err error) {
	if distance < 1 || distance > LZMaxDistance || length < lzMinLength || length > LZMaxLength {
		return 0, 0, fmt.Errorf("%w: back-reference (%d, %d) not encodable", stream.ErrCorrupt, distance, length)
	}
	word := (distance - 1) | (length-lzMinLength)<<lzLengthShift
	return byte(word), byte(word >> 8), nil
}
