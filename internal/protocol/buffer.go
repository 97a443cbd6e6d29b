package protocol

import (
	"errors"
	"fmt"

	"github.com/udisondev/roomserver/internal/constants"
)

var (
	// ErrBufferOverflow is returned by Append when data does not fit even after compaction.
	ErrBufferOverflow = errors.New("connection buffer overflow")

	// ErrInvalidFrameLength is returned by ExtractNext when the declared length
	// can never form a frame (shorter than a header or larger than the buffer).
	ErrInvalidFrameLength = errors.New("invalid frame length")
)

// Buffer accumulates a stream of bytes and splits it into frames.
//
// Layout: data[read:write] is unconsumed. Append compacts the unread tail to the
// front when the new chunk would run past the end.
// Buffer is not safe for concurrent use; model.User guards it with a mutex.
type Buffer struct {
	data  []byte
	read  int
	write int
}

// NewBuffer creates a buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < constants.PacketHeaderSize {
		capacity = constants.DefaultConnBufferSize
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.write - b.read
}

// Append copies p into the buffer.
func (b *Buffer) Append(p []byte) error {
	if b.write+len(p) >= len(b.data) {
		b.compact()
	}
	if b.write+len(p) > len(b.data) {
		return fmt.Errorf("append %d bytes (unread=%d, cap=%d): %w", len(p), b.Len(), len(b.data), ErrBufferOverflow)
	}
	copy(b.data[b.write:], p)
	b.write += len(p)
	return nil
}

// ExtractNext returns the next complete frame, if any.
// ok is false when fewer than a header's worth of bytes or only a partial frame is buffered.
// On ErrInvalidFrameLength the buffer is reset: the stream cannot be resynchronised.
func (b *Buffer) ExtractNext() (frame Frame, ok bool, err error) {
	unread := b.write - b.read
	if unread < constants.PacketHeaderSize {
		return Frame{}, false, nil
	}

	h, err := ParseHeader(b.data[b.read:b.write])
	if err != nil {
		return Frame{}, false, err
	}

	size := int(h.Length)
	if size < constants.PacketHeaderSize || size > len(b.data) {
		b.Reset()
		return Frame{}, false, fmt.Errorf("message %d declares %d bytes: %w", h.ID, size, ErrInvalidFrameLength)
	}
	if unread < size {
		return Frame{}, false, nil
	}

	// Copy out: the network goroutine may compact the buffer after we return.
	data := make([]byte, size)
	copy(data, b.data[b.read:b.read+size])
	b.read += size
	if b.read == b.write {
		b.read, b.write = 0, 0
	}

	return Frame{ID: h.ID, Data: data}, true, nil
}

// HasFrame reports whether ExtractNext would make progress.
func (b *Buffer) HasFrame() bool {
	unread := b.write - b.read
	if unread < constants.PacketHeaderSize {
		return false
	}
	h, err := ParseHeader(b.data[b.read:b.write])
	if err != nil {
		return false
	}
	size := int(h.Length)
	if size < constants.PacketHeaderSize || size > len(b.data) {
		// ExtractNext will report and reset.
		return true
	}
	return unread >= size
}

// Reset drops all buffered data.
func (b *Buffer) Reset() {
	b.read, b.write = 0, 0
}

func (b *Buffer) compact() {
	n := copy(b.data, b.data[b.read:b.write])
	b.read = 0
	b.write = n
}
