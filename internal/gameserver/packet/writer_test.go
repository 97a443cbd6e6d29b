package packet

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/protocol"
)

func TestWriter_WriteByte(t *testing.T) {
	w := NewWriter(16)

	if err := w.WriteByte(0x42); err != nil {
		t.Fatalf("WriteByte failed: %v", err)
	}

	data := w.Bytes()
	if len(data) != 1 {
		t.Fatalf("expected length 1, got %d", len(data))
	}
	if data[0] != 0x42 {
		t.Errorf("expected byte 0x42, got 0x%02X", data[0])
	}
}

func TestWriter_WriteShort(t *testing.T) {
	w := NewWriter(16)

	w.WriteShort(-2)

	data := w.Bytes()
	if len(data) != 2 {
		t.Fatalf("expected length 2, got %d", len(data))
	}
	if val := binary.LittleEndian.Uint16(data); val != 0xFFFE {
		t.Errorf("expected 0xFFFE, got 0x%04X", val)
	}
}

func TestWriter_WriteLong(t *testing.T) {
	w := NewWriter(16)

	w.WriteLong(0x123456789ABCDEF0)

	data := w.Bytes()
	if len(data) != 8 {
		t.Fatalf("expected length 8, got %d", len(data))
	}
	if val := int64(binary.LittleEndian.Uint64(data)); val != 0x123456789ABCDEF0 {
		t.Errorf("expected 0x123456789ABCDEF0, got 0x%016X", val)
	}
}

func TestWriter_WriteFloat(t *testing.T) {
	w := NewWriter(16)

	w.WriteFloat(3.25)

	data := w.Bytes()
	if val := math.Float32frombits(binary.LittleEndian.Uint32(data)); val != 3.25 {
		t.Errorf("expected 3.25, got %v", val)
	}
}

func TestWriter_WriteFixedString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		size     int
		expected []byte
	}{
		{"empty", "", 4, []byte{0, 0, 0, 0}},
		{"fits", "ab", 4, []byte{'a', 'b', 0, 0}},
		{"exact capacity is truncated", "abcd", 4, []byte{'a', 'b', 'c', 0}},
		{"too long", "abcdefgh", 4, []byte{'a', 'b', 'c', 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(16)
			w.WriteFixedString(tt.input, tt.size)

			data := w.Bytes()
			if len(data) != tt.size {
				t.Fatalf("expected length %d, got %d", tt.size, len(data))
			}
			for i := range tt.expected {
				if data[i] != tt.expected[i] {
					t.Errorf("at index %d: expected 0x%02X, got 0x%02X", i, tt.expected[i], data[i])
				}
			}
		})
	}
}

func TestWriter_Frame(t *testing.T) {
	w := Get()
	defer w.Put()

	w.BeginFrame(protocol.LoginResponse)
	w.WriteUShort(3)
	data := w.Finish()

	if len(data) != constants.PacketHeaderSize+2 {
		t.Fatalf("expected length %d, got %d", constants.PacketHeaderSize+2, len(data))
	}

	h, err := protocol.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if int(h.Length) != len(data) {
		t.Errorf("expected header length %d, got %d", len(data), h.Length)
	}
	if h.ID != protocol.LoginResponse {
		t.Errorf("expected id %s, got %s", protocol.LoginResponse, h.ID)
	}
}

func TestWriter_ReaderRoundTrip(t *testing.T) {
	w := NewWriter(64)
	w.WriteInt(-7)
	w.WriteUInt(42)
	w.WriteFloat(1.5)
	w.WriteFixedString("hello", 8)

	r := NewReader(w.Bytes())
	i, _ := r.ReadInt()
	u, _ := r.ReadUInt()
	f, _ := r.ReadFloat()
	s, err := r.ReadFixedString(8)
	if err != nil {
		t.Fatalf("ReadFixedString failed: %v", err)
	}

	if i != -7 || u != 42 || f != 1.5 || s != "hello" {
		t.Errorf("round trip mismatch: %d %d %v %q", i, u, f, s)
	}
	if r.Remaining() != 0 {
		t.Errorf("expected 0 remaining bytes, got %d", r.Remaining())
	}
}
