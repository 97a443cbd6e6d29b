package serverpackets

import (
	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/protocol"
)

// QuestTalkResponse describes the quest offered by an NPC and the caller's progress.
type QuestTalkResponse struct {
	NpcID        int32
	QuestID      int32
	State        byte
	Current      uint16
	Required     uint16
	Title        string
	Description  string
	RewardItemID uint32
	RewardQty    uint16
}

// Write serializes QuestTalkResponse.
func (p QuestTalkResponse) Write() []byte {
	return frame(protocol.QuestTalkResponse, func(w *packet.Writer) {
		w.WriteInt(p.NpcID)
		w.WriteInt(p.QuestID)
		_ = w.WriteByte(p.State)
		w.WriteUShort(p.Current)
		w.WriteUShort(p.Required)
		w.WriteFixedString(p.Title, constants.MaxQuestTitleLen)
		w.WriteFixedString(p.Description, constants.MaxQuestDescLen)
		w.WriteUInt(p.RewardItemID)
		w.WriteUShort(p.RewardQty)
	})
}

// QuestAcceptResponse answers QuestAcceptRequest.
type QuestAcceptResponse struct {
	QuestID  int32
	Result   byte
	State    byte
	Current  uint16
	Required uint16
}

// Write serializes QuestAcceptResponse.
func (p QuestAcceptResponse) Write() []byte {
	return frame(protocol.QuestAcceptResponse, func(w *packet.Writer) {
		w.WriteInt(p.QuestID)
		_ = w.WriteByte(p.Result)
		_ = w.WriteByte(p.State)
		w.WriteUShort(p.Current)
		w.WriteUShort(p.Required)
	})
}

// QuestProgressNotify reports a kill counted toward a quest.
type QuestProgressNotify struct {
	QuestID  int32
	Current  uint16
	Required uint16
	State    byte
}

// Write serializes QuestProgressNotify.
func (p QuestProgressNotify) Write() []byte {
	return frame(protocol.QuestProgressNotify, func(w *packet.Writer) {
		w.WriteInt(p.QuestID)
		w.WriteUShort(p.Current)
		w.WriteUShort(p.Required)
		_ = w.WriteByte(p.State)
	})
}

// QuestCompleteResponse answers QuestCompleteRequest.
type QuestCompleteResponse struct {
	QuestID      int32
	Result       byte
	RewardItemID uint32
	RewardQty    uint16
}

// Write serializes QuestCompleteResponse.
func (p QuestCompleteResponse) Write() []byte {
	return frame(protocol.QuestCompleteResponse, func(w *packet.Writer) {
		w.WriteInt(p.QuestID)
		_ = w.WriteByte(p.Result)
		w.WriteUInt(p.RewardItemID)
		w.WriteUShort(p.RewardQty)
	})
}
