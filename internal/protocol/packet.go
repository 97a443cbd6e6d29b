package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/udisondev/roomserver/internal/constants"
)

// Header is the fixed 5-byte prefix of every frame.
type Header struct {
	Length uint16 // total frame size, header included
	ID     MessageID
	Type   uint8 // reserved, always 0
}

// PutHeader writes h into buf[:constants.PacketHeaderSize].
func PutHeader(buf []byte, h Header) {
	binary.LittleEndian.PutUint16(buf[constants.PacketLengthOffset:], h.Length)
	binary.LittleEndian.PutUint16(buf[constants.PacketIDOffset:], uint16(h.ID))
	buf[constants.PacketTypeOffset] = h.Type
}

// ParseHeader decodes the header at the start of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < constants.PacketHeaderSize {
		return Header{}, fmt.Errorf("parse header: need %d bytes, have %d", constants.PacketHeaderSize, len(buf))
	}
	return Header{
		Length: binary.LittleEndian.Uint16(buf[constants.PacketLengthOffset:]),
		ID:     MessageID(binary.LittleEndian.Uint16(buf[constants.PacketIDOffset:])),
		Type:   buf[constants.PacketTypeOffset],
	}, nil
}

// Frame is one complete record extracted from a byte stream.
// Data holds the whole frame including the header.
type Frame struct {
	ID   MessageID
	Data []byte
}

// Body returns the bytes following the header.
func (f Frame) Body() []byte {
	if len(f.Data) < constants.PacketHeaderSize {
		return nil
	}
	return f.Data[constants.PacketHeaderSize:]
}
