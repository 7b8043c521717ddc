package stream

import "errors"

// Error kinds shared by the stream reader and every decoder built on top of it.
// Decoders wrap these with context, so callers should test with errors.Is.
var (
	// ErrTruncated is returned when fewer bytes remain than a fixed-size read needs.
	ErrTruncated = errors.New("truncated stream")
	// ErrOverrun is returned when compressed data produces more output than declared,
	// or needs more input than the block holds to finish a run.
	ErrOverrun = errors.New("decode overrun")
	// ErrUnderrun is returned when compressed data runs out before the declared output length.
	ErrUnderrun = errors.New("decode underrun")
	// ErrCorrupt is returned for structurally invalid data.
	ErrCorrupt = errors.New("corrupt data")
	// ErrOutOfRange is returned when a seek target lies outside the stream.
	ErrOutOfRange = errors.New("offset out of range")
)

// Kind returns a short name for the error kind wrapped by err, or "" if err
// does not wrap any of the stream error kinds. Decoder kinds take precedence
// over the truncation that caused them.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrOverrun):
		return "DecodeOverrun"
	case errors.Is(err, ErrUnderrun):
		return "DecodeUnderrun"
	case errors.Is(err, ErrCorrupt):
		return "CorruptData"
	case errors.Is(err, ErrOutOfRange):
		return "OutOfRange"
	case errors.Is(err, ErrTruncated):
		return "TruncatedStream"
	}
	return ""
}
