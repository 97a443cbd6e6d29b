package packet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortRead is returned when a field extends past the end of the body.
var ErrShortRead = errors.New("not enough data")

// Reader decodes a little-endian frame body field by field.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data. data is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// next advances over n bytes and returns them.
func (r *Reader) next(op string, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative count %d", op, n)
	}
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%s: %w (pos=%d, need=%d, len=%d)", op, ErrShortRead, r.pos, n, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.next("ReadByte", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadShort reads an int16.
func (r *Reader) ReadShort() (int16, error) {
	v, err := r.ReadUShort()
	return int16(v), err
}

// ReadUShort reads a uint16.
func (r *Reader) ReadUShort() (uint16, error) {
	b, err := r.next("ReadUShort", 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt reads an int32.
func (r *Reader) ReadInt() (int32, error) {
	v, err := r.ReadUInt()
	return int32(v), err
}

// ReadUInt reads a uint32.
func (r *Reader) ReadUInt() (uint32, error) {
	b, err := r.next("ReadUInt", 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadLong reads an int64.
func (r *Reader) ReadLong() (int64, error) {
	b, err := r.next("ReadLong", 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// ReadFloat reads an IEEE 754 float32.
func (r *Reader) ReadFloat() (float32, error) {
	b, err := r.next("ReadFloat", 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadFixedString reads a NUL-padded string field of exactly size bytes.
// The value ends at the first NUL; a field without one is taken whole.
func (r *Reader) ReadFixedString(size int) (string, error) {
	raw, err := r.next("ReadFixedString", size)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

// ReadBytes reads n bytes.
// Returned slice shares its backing array with the frame.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.next("ReadBytes", n)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read position.
func (r *Reader) Position() int {
	return r.pos
}
