package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer produces data in the same layout Stream reads. The first error is
// sticky: once a write fails every later write is a no-op and Err reports it.
type Writer struct {
	w   io.Writer
	n   int
	err error
	tmp [4]byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += n
	w.err = err
}

// WriteByte writes a single byte. The error is also kept for Err.
func (w *Writer) WriteByte(b byte) error {
	w.tmp[0] = b
	w.write(w.tmp[:1])
	return w.err
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	binary.LittleEndian.PutUint16(w.tmp[:2], v)
	w.write(w.tmp[:2])
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	binary.LittleEndian.PutUint32(w.tmp[:4], uint32(v))
	w.write(w.tmp[:4])
}

// WriteBlock writes b verbatim.
func (w *Writer) WriteBlock(b []byte) {
	w.write(b)
}

// WriteString writes s with a leading length byte.
func (w *Writer) WriteString(s string) {
	if len(s) == 0 || len(s) > 0xFF {
		if w.err == nil {
			w.err = fmt.Errorf("%w: string length %d not representable", ErrCorrupt, len(s))
		}
		return
	}
	w.WriteByte(byte(len(s)))
	w.write([]byte(s))
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int {
	return w.n
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}
