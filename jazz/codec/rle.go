// Package codec holds the decompressors used by the legacy asset formats.
package codec

import (
	"errors"
	"fmt"

	"github.com/valerio/go-jazz/jazz/stream"
)

// Source is the byte supply a decoder reads from. *stream.Stream implements it.
type Source interface {
	ReadByte() (byte, error)
	ReadBlock(n int) ([]byte, error)
}

const (
	rleLiteralFlag = 0x80
	rleCountMask   = 0x7F
	rleMaxRun      = rleCountMask + 1
	rleMinRepeat   = 3
)

// DecodeRLE decodes exactly n bytes from src. Each control byte with the high
// bit set is followed by (low 7 bits + 1) literal bytes; otherwise it is
// followed by one byte repeated (low 7 bits + 1) times.
func DecodeRLE(src Source, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative output length %d", stream.ErrCorrupt, n)
	}

	out := make([]byte, n)
	if err := walkRLE(src, n, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SkipRLE consumes the control structure of an RLE block that decodes to n
// bytes without keeping the output.
func SkipRLE(src Source, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative output length %d", stream.ErrCorrupt, n)
	}
	return walkRLE(src, n, nil)
}

// walkRLE runs the decoder; out may be nil to discard output.
func walkRLE(src Source, n int, out []byte) error {
	pos := 0
	for pos < n {
		code, err := src.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: control bytes ended at %d of %d: %w", stream.ErrUnderrun, pos, n, err)
		}

		amount := int(code&rleCountMask) + 1
		if pos+amount > n {
			return fmt.Errorf("%w: run of %d at %d exceeds length %d", stream.ErrOverrun, amount, pos, n)
		}

		if code&rleLiteralFlag != 0 {
			literal, err := src.ReadBlock(amount)
			if err != nil {
				return runError(err, "literal", amount, pos)
			}
			if out != nil {
				copy(out[pos:], literal)
			}
		} else {
			value, err := src.ReadByte()
			if err != nil {
				return runError(err, "repeat", amount, pos)
			}
			if out != nil {
				for i := pos; i < pos+amount; i++ {
					out[i] = value
				}
			}
		}

		pos += amount
	}
	return nil
}

func runError(err error, kind string, amount, pos int) error {
	if errors.Is(err, stream.ErrTruncated) {
		return fmt.Errorf("%w: %s run of %d at %d needs more input: %w", stream.ErrOverrun, kind, amount, pos, err)
	}
	return err
}

// EncodeRLE compresses data into the scheme DecodeRLE reads. Runs of three or
// more equal bytes become repeat runs; everything else goes out as literals.
func EncodeRLE(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/rleMaxRun+1)

	literalStart := 0
	flush := func(end int) {
		for literalStart < end {
			amount := end - literalStart
			if amount > rleMaxRun {
				amount = rleMaxRun
			}
			out = append(out, rleLiteralFlag|byte(amount-1))
			out = append(out, data[literalStart:literalStart+amount]...)
			literalStart += amount
		}
	}

	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && run < rleMaxRun && data[i+run] == data[i] {
			run++
		}

		if run < rleMinRepeat {
			i += run
			continue
		}

		flush(i)
		out = append(out, byte(run-1), data[i])
		i += run
		literalStart = i
	}
	flush(len(data))

	return out
}
