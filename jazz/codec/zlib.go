package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/valerio/go-jazz/jazz/stream"
)

// InflateZlib decompresses a zlib-wrapped deflate block into exactly n bytes.
// Later releases of the asset formats store their LZ blocks this way.
func InflateZlib(src []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative output length %d", stream.ErrCorrupt, n)
	}

	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: bad zlib header: %w", stream.ErrCorrupt, err)
	}
	defer zr.Close()

	out := make([]byte, n)
	got, err := io.ReadFull(zr, out)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: inflated %d of %d bytes", stream.ErrUnderrun, got, n)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", stream.ErrCorrupt, err)
	}

	// Reading on verifies the checksum and catches surplus output.
	var probe [1]byte
	extra, err := zr.Read(probe[:])
	if extra > 0 {
		return nil, fmt.Errorf("%w: zlib block holds more than %d bytes", stream.ErrOverrun, n)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", stream.ErrCorrupt, err)
	}

	return out, nil
}
