package clientpackets

import (
	"fmt"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
)

// Body sizes of room packets.
const (
	RoomEnterRequestSize = 4
	RoomLeaveRequestSize = 0
	RoomChatRequestSize  = constants.MaxChatMsgLen
)

// RoomEnterRequest asks to join a room.
//
// Structure:
//   - int32: room number
type RoomEnterRequest struct {
	RoomNumber int32
}

// ParseRoomEnterRequest parses a RoomEnterRequest body.
func ParseRoomEnterRequest(data []byte) (*RoomEnterRequest, error) {
	r := packet.NewReader(data)
	number, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading room number: %w", err)
	}
	return &RoomEnterRequest{RoomNumber: number}, nil
}

// RoomChatRequest carries a chat line or a slash command.
//
// Structure:
//   - char[257]: message (NUL padded)
type RoomChatRequest struct {
	Message string
}

// ParseRoomChatRequest parses a RoomChatRequest body.
func ParseRoomChatRequest(data []byte) (*RoomChatRequest, error) {
	r := packet.NewReader(data)
	msg, err := r.ReadFixedString(constants.MaxChatMsgLen)
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	return &RoomChatRequest{Message: msg}, nil
}
