package testutil

import (
	"bytes"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// Client-side frame builders. The server only parses these, so tests build them here.

func build(id protocol.MessageID, body func(w *packet.Writer)) []byte {
	w := packet.NewWriter(64)
	w.BeginFrame(id)
	if body != nil {
		body(w)
	}
	return bytes.Clone(w.Finish())
}

// LoginFrame builds LoginRequest.
func LoginFrame(userID, password string) []byte {
	return build(protocol.LoginRequest, func(w *packet.Writer) {
		w.WriteFixedString(userID, constants.MaxUserIDLen)
		w.WriteFixedString(password, constants.MaxUserPWLen)
	})
}

// RoomEnterFrame builds RoomEnterRequest.
func RoomEnterFrame(room int32) []byte {
	return build(protocol.RoomEnterRequest, func(w *packet.Writer) {
		w.WriteInt(room)
	})
}

// RoomLeaveFrame builds RoomLeaveRequest.
func RoomLeaveFrame() []byte {
	return build(protocol.RoomLeaveRequest, nil)
}

// ChatFrame builds RoomChatRequest.
func ChatFrame(msg string) []byte {
	return build(protocol.RoomChatRequest, func(w *packet.Writer) {
		w.WriteFixedString(msg, constants.MaxChatMsgLen)
	})
}

// HitReportFrame builds HitReport.
func HitReportFrame(enemyID int64, damage int32, hit model.Vec3, seq uint32) []byte {
	return build(protocol.HitReport, func(w *packet.Writer) {
		w.WriteLong(enemyID)
		w.WriteInt(damage)
		w.WriteFloat(hit.X)
		w.WriteFloat(hit.Y)
		w.WriteFloat(hit.Z)
		w.WriteUInt(seq)
	})
}

// MovePathFrame builds MovePathRequest.
func MovePathFrame(uuid int64, start, end model.Vec3) []byte {
	return build(protocol.MovePathRequest, func(w *packet.Writer) {
		w.WriteLong(uuid)
		for _, v := range []model.Vec3{start, end} {
			w.WriteFloat(v.X)
			w.WriteFloat(v.Y)
			w.WriteFloat(v.Z)
		}
	})
}

// QuestFrame builds QuestAcceptRequest or QuestCompleteRequest.
func QuestFrame(id protocol.MessageID, npcID, questID int32) []byte {
	return build(id, func(w *packet.Writer) {
		w.WriteInt(npcID)
		w.WriteInt(questID)
	})
}
