package clientpackets

import (
	"fmt"

	"github.com/udisondev/roomserver/internal/gameserver/packet"
)

// Body sizes of quest packets.
const (
	QuestTalkRequestSize     = 4
	QuestAcceptRequestSize   = 8
	QuestCompleteRequestSize = 8
)

// QuestTalkRequest opens the quest dialog of an NPC.
type QuestTalkRequest struct {
	NpcID int32
}

// ParseQuestTalkRequest parses a QuestTalkRequest body.
func ParseQuestTalkRequest(data []byte) (*QuestTalkRequest, error) {
	r := packet.NewReader(data)
	npcID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading npc id: %w", err)
	}
	return &QuestTalkRequest{NpcID: npcID}, nil
}

// QuestRequest is the body shared by QuestAcceptRequest and QuestCompleteRequest.
//
// Structure:
//   - int32: npc id
//   - int32: quest id
type QuestRequest struct {
	NpcID   int32
	QuestID int32
}

// ParseQuestRequest parses a QuestAcceptRequest or QuestCompleteRequest body.
func ParseQuestRequest(data []byte) (*QuestRequest, error) {
	r := packet.NewReader(data)
	npcID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading npc id: %w", err)
	}
	questID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading quest id: %w", err)
	}
	return &QuestRequest{NpcID: npcID, QuestID: questID}, nil
}
