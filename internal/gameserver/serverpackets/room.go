package serverpackets

import (
	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// RoomEnterResponse answers RoomEnterRequest.
type RoomEnterResponse struct {
	Result protocol.ResultCode
}

// Write serializes RoomEnterResponse.
func (p RoomEnterResponse) Write() []byte {
	return frame(protocol.RoomEnterResponse, func(w *packet.Writer) {
		w.WriteShort(int16(p.Result))
	})
}

// RoomNewUserNtf announces an actor that joined the room.
type RoomNewUserNtf struct {
	UUID   int64
	UserID string
}

// Write serializes RoomNewUserNtf.
func (p RoomNewUserNtf) Write() []byte {
	return frame(protocol.RoomNewUserNtf, func(w *packet.Writer) {
		w.WriteLong(p.UUID)
		w.WriteFixedString(p.UserID, constants.MaxUserIDLen)
	})
}

// RoomUserInfoNtf describes an actor already present in the room.
type RoomUserInfoNtf struct {
	UUID     int64
	UserID   string
	Position model.Vec3
	Rotation model.Quaternion
}

// Write serializes RoomUserInfoNtf.
func (p RoomUserInfoNtf) Write() []byte {
	return frame(protocol.RoomUserInfoNtf, func(w *packet.Writer) {
		w.WriteLong(p.UUID)
		w.WriteFixedString(p.UserID, constants.MaxUserIDLen)
		writeVec3(w, p.Position)
		writeQuaternion(w, p.Rotation)
	})
}

// RoomLeaveResponse answers RoomLeaveRequest.
type RoomLeaveResponse struct {
	Result protocol.ResultCode
}

// Write serializes RoomLeaveResponse.
func (p RoomLeaveResponse) Write() []byte {
	return frame(protocol.RoomLeaveResponse, func(w *packet.Writer) {
		w.WriteShort(int16(p.Result))
	})
}

// RoomLeaveUserNtf announces an actor that left the room.
type RoomLeaveUserNtf struct {
	UUID   int64
	UserID string
}

// Write serializes RoomLeaveUserNtf.
func (p RoomLeaveUserNtf) Write() []byte {
	return frame(protocol.RoomLeaveUserNtf, func(w *packet.Writer) {
		w.WriteLong(p.UUID)
		w.WriteFixedString(p.UserID, constants.MaxUserIDLen)
	})
}

// RoomChatResponse answers RoomChatRequest.
type RoomChatResponse struct {
	Result protocol.ResultCode
}

// Write serializes RoomChatResponse.
func (p RoomChatResponse) Write() []byte {
	return frame(protocol.RoomChatResponse, func(w *packet.Writer) {
		w.WriteShort(int16(p.Result))
	})
}

// RoomChatNotify carries a chat line to room members.
type RoomChatNotify struct {
	UserID  string
	Message string
}

// Write serializes RoomChatNotify.
func (p RoomChatNotify) Write() []byte {
	return frame(protocol.RoomChatNotify, func(w *packet.Writer) {
		w.WriteFixedString(p.UserID, constants.MaxUserIDLen)
		w.WriteFixedString(p.Message, constants.MaxChatMsgLen)
	})
}
