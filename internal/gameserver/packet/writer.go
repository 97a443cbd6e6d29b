package packet

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/protocol"
)

// Writer provides methods for writing packet data.
// Uses Little-Endian byte order for all multi-byte values.
type Writer struct {
	buf *bytes.Buffer
}

// writerPool reduces allocations by reusing Writers.
// Get() returns a Writer with Reset() called, Put() returns it to pool.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{
			buf: bytes.NewBuffer(make([]byte, 0, 512)),
		}
	},
}

// Get returns a Writer from the pool (already Reset).
func Get() *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset()
	return w
}

// Put returns a Writer to the pool for reuse.
// IMPORTANT: Do not use the Writer (or slices from Bytes) after calling Put.
func (w *Writer) Put() {
	writerPool.Put(w)
}

// NewWriter creates a new packet writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// BeginFrame writes a header with zero length for id.
func (w *Writer) BeginFrame(id protocol.MessageID) {
	var hdr [constants.PacketHeaderSize]byte
	protocol.PutHeader(hdr[:], protocol.Header{ID: id})
	w.buf.Write(hdr[:])
}

// Finish patches the header length with the total record size and returns the frame.
func (w *Writer) Finish() []byte {
	data := w.buf.Bytes()
	binary.LittleEndian.PutUint16(data[constants.PacketLengthOffset:], uint16(len(data)))
	return data
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteShort writes an int16 (2 bytes, LE).
func (w *Writer) WriteShort(val int16) {
	w.WriteUShort(uint16(val))
}

// WriteUShort writes a uint16 (2 bytes, LE).
func (w *Writer) WriteUShort(val uint16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteInt writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt(val int32) {
	w.WriteUInt(uint32(val))
}

// WriteUInt writes a uint32 (4 bytes, LE).
func (w *Writer) WriteUInt(val uint32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteLong writes an int64 (8 bytes, LE).
func (w *Writer) WriteLong(val int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(val))
	w.buf.Write(tmp[:])
}

// WriteFloat writes a float32 (4 bytes, LE, IEEE 754).
func (w *Writer) WriteFloat(val float32) {
	w.WriteUInt(math.Float32bits(val))
}

// WriteFixedString writes s into a NUL-padded field of exactly size bytes.
// s is truncated to size-1 bytes so the field always carries a terminator.
func (w *Writer) WriteFixedString(s string, size int) {
	if size <= 0 {
		return
	}
	n := len(s)
	if n > size-1 {
		n = size - 1
	}
	w.buf.WriteString(s[:n])
	for range size - n {
		w.buf.WriteByte(0)
	}
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	_, _ = w.buf.Write(data)
}

// Bytes returns the accumulated packet data.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current length of the packet.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}
