package stream

import (
	"encoding/binary"
	"fmt"
)

// shortNameLength is the longest base name of an 8.3 file name, including the dot.
const shortNameLength = 9

// Stream is a read cursor over an in-memory file. All integers are little-endian.
// The cursor never moves past the end of the data; failed reads leave it where it was.
type Stream struct {
	name string
	data []byte
	pos  int
}

// New creates a stream over data. The name is only used in error messages and logs.
func New(name string, data []byte) *Stream {
	return &Stream{
		name: name,
		data: data,
	}
}

// Name returns the name the stream was opened with.
func (s *Stream) Name() string {
	return s.name
}

// Len returns the total size of the stream in bytes.
func (s *Stream) Len() int {
	return len(s.data)
}

// Position returns the cursor offset from the start of the stream.
func (s *Stream) Position() int {
	return s.pos
}

// Remaining returns the number of bytes left after the cursor.
func (s *Stream) Remaining() int {
	return len(s.data) - s.pos
}

// Seek moves the cursor. If fromStart is set the offset is absolute, otherwise
// it is relative to the current position. Seeking to exactly Len() is allowed.
func (s *Stream) Seek(offset int, fromStart bool) error {
	target := offset
	if !fromStart {
		target = s.pos + offset
	}

	if target < 0 || target > len(s.data) {
		return fmt.Errorf("%w: seek to %d in %q (size %d)", ErrOutOfRange, target, s.name, len(s.data))
	}

	s.pos = target
	return nil
}

func (s *Stream) need(n int) error {
	if n > s.Remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d of %q, have %d", ErrTruncated, n, s.pos, s.name, s.Remaining())
	}
	return nil
}

// ReadByte reads a single byte.
func (s *Stream) ReadByte() (byte, error) {
	if err := s.need(1); err != nil {
		return 0, err
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (s *Stream) ReadUint16() (uint16, error) {
	if err := s.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(s.data[s.pos:])
	s.pos += 2
	return v, nil
}

// ReadUint16Max reads an unsigned 16-bit integer and rejects values above max.
// Size fields go through here so a damaged file cannot drive a huge allocation.
func (s *Stream) ReadUint16Max(max uint16) (uint16, error) {
	start := s.pos
	v, err := s.ReadUint16()
	if err != nil {
		return 0, err
	}
	if v > max {
		s.pos = start
		return 0, fmt.Errorf("%w: value %d at offset %d of %q exceeds %d", ErrCorrupt, v, start, s.name, max)
	}
	return v, nil
}

// ReadInt32 reads a signed 32-bit integer.
func (s *Stream) ReadInt32() (int32, error) {
	if err := s.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(s.data[s.pos:]))
	s.pos += 4
	return v, nil
}

// ReadBlock returns a copy of the next n bytes.
func (s *Stream) ReadBlock(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative block length %d", ErrCorrupt, n)
	}
	if err := s.need(n); err != nil {
		return nil, err
	}
	block := make([]byte, n)
	copy(block, s.data[s.pos:s.pos+n])
	s.pos += n
	return block, nil
}

// ReadString reads a string preceded by a length byte. A zero length means the
// string is an 8.3 file name with no explicit length: the name ends three
// characters after the first dot, which must appear within nine characters.
func (s *Stream) ReadString() (string, error) {
	start := s.pos

	length, err := s.ReadByte()
	if err != nil {
		return "", err
	}

	if length != 0 {
		b, err := s.ReadBlock(int(length))
		if err != nil {
			s.pos = start
			return "", err
		}
		return string(b), nil
	}

	for i := 0; i < shortNameLength && s.pos+i < len(s.data); i++ {
		if s.data[s.pos+i] != '.' {
			continue
		}
		b, err := s.ReadBlock(i + 4)
		if err != nil {
			s.pos = start
			return "", err
		}
		return string(b), nil
	}

	s.pos = start
	return "", fmt.Errorf("%w: unterminated file name at offset %d of %q", ErrCorrupt, start, s.name)
}
