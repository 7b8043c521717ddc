package stream

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIntegers(t *testing.T) {
	s := New("ints", []byte{0x7F, 0x34, 0x12, 0xFE, 0xFF, 0xFF, 0xFF})

	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), b)

	v, err := s.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	i, err := s.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2), i)

	assert.Equal(t, 7, s.Position())
	assert.Equal(t, 0, s.Remaining())

	_, err = s.ReadByte()
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Equal(t, 7, s.Position(), "failed read must not move the cursor")
}

func TestReadUint16Max(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		max     uint16
		want    uint16
		wantErr error
	}{
		{"below max", []byte{0x10, 0x00}, 0x20, 0x10, nil},
		{"equal to max", []byte{0x20, 0x00}, 0x20, 0x20, nil},
		{"above max", []byte{0x21, 0x00}, 0x20, 0, ErrCorrupt},
		{"short", []byte{0x21}, 0x20, 0, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.name, tt.data)
			v, err := s.ReadUint16Max(tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, s.Position())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestReadBlock(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	s := New("block", data)

	b, err := s.ReadBlock(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	b[0] = 0xFF
	assert.Equal(t, byte(1), data[0], "block must be a copy")

	_, err = s.ReadBlock(2)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = s.ReadBlock(-1)
	assert.ErrorIs(t, err, ErrCorrupt)

	b, err = s.ReadBlock(0)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestReadString(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantPos int
		wantErr error
	}{
		{"length prefixed", append([]byte{5}, "LEVEL"...), "LEVEL", 6, nil},
		{"short file name", append([]byte{0}, "MENU.000rest"...), "MENU.000", 9, nil},
		{"full length base name", append([]byte{0}, "BLOCKS12.001"...), "BLOCKS12.001", 13, nil},
		{"missing dot", append([]byte{0}, "ABCDEFGHIJKL"...), "", 0, ErrCorrupt},
		{"data ends before dot", append([]byte{0}, "ABC"...), "", 0, ErrCorrupt},
		{"extension cut short", append([]byte{0}, "A.B"...), "", 0, ErrTruncated},
		{"length past end", []byte{9, 'A'}, "", 0, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.name, tt.data)
			got, err := s.ReadString()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, s.Position())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPos, s.Position())
		})
	}
}

func TestSeekBounds(t *testing.T) {
	s := New("seek", make([]byte, 10))

	assert.ErrorIs(t, s.Seek(-1, true), ErrOutOfRange)
	assert.ErrorIs(t, s.Seek(s.Len()+1, true), ErrOutOfRange)

	require.NoError(t, s.Seek(0, true))
	assert.Equal(t, 0, s.Position())

	require.NoError(t, s.Seek(s.Len(), true))
	assert.Equal(t, 10, s.Position())

	require.NoError(t, s.Seek(-4, false))
	assert.Equal(t, 6, s.Position())

	assert.ErrorIs(t, s.Seek(5, false), ErrOutOfRange)
	assert.ErrorIs(t, s.Seek(-7, false), ErrOutOfRange)
	assert.Equal(t, 6, s.Position())
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteByte(0xAA)
	w.WriteUint16(320)
	w.WriteInt32(-100)
	w.WriteString("JAZZ")
	w.WriteBlock([]byte{9, 8, 7})
	require.NoError(t, w.Err())
	assert.Equal(t, 15, w.Written())

	s := New("written", buf.Bytes())

	b, _ := s.ReadByte()
	v, _ := s.ReadUint16()
	i, _ := s.ReadInt32()
	str, _ := s.ReadString()
	block, err := s.ReadBlock(3)
	require.NoError(t, err)

	assert.Equal(t, byte(0xAA), b)
	assert.Equal(t, uint16(320), v)
	assert.Equal(t, int32(-100), i)
	assert.Equal(t, "JAZZ", str)
	assert.Equal(t, []byte{9, 8, 7}, block)
}

func TestWriterRejectsEmptyString(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteString("")
	w.WriteByte(1)
	assert.ErrorIs(t, w.Err(), ErrCorrupt)
	assert.Zero(t, buf.Len())
}

func TestKind(t *testing.T) {
	s := New("kind", nil)
	_, err := s.ReadByte()
	assert.Equal(t, "TruncatedStream", Kind(err))
	assert.Equal(t, "OutOfRange", Kind(s.Seek(1, true)))
	assert.Equal(t, "", Kind(nil))

	wrapped := fmt.Errorf("%w: run needs more input: %w", ErrOverrun, err)
	assert.Equal(t, "DecodeOverrun", Kind(wrapped))
}
