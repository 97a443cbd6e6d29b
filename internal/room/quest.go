package room

import (
	"log/slog"

	"github.com/udisondev/roomserver/internal/game/quest"
	"github.com/udisondev/roomserver/internal/gameserver/serverpackets"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// QuestTalk replies with the quest offered by npcID and the caller's progress.
func (r *Room) QuestTalk(u *model.User, npcID int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasNpcLocked(int64(npcID)) {
		slog.Warn("quest talk with unknown npc", "room", r.number, "npcID", npcID)
		return
	}
	def, ok := r.quests.ForNpc(npcID)
	if !ok {
		slog.Debug("npc has no quest", "room", r.number, "npcID", npcID)
		return
	}

	state, current, required := quest.StateNotAccepted, uint16(0), def.Required
	if p := r.progressLocked(u.UserID(), def.ID); p != nil {
		state, current, required = p.Snapshot()
	}

	r.sendLocked(u.Index(), serverpackets.QuestTalkResponse{
		NpcID:        npcID,
		QuestID:      def.ID,
		State:        state,
		Current:      current,
		Required:     required,
		Title:        def.Title,
		Description:  def.Description,
		RewardItemID: def.RewardItemID,
		RewardQty:    def.RewardQty,
	}.Write())
}

// QuestAccept starts questID for u. A second accept fails without changes.
func (r *Room) QuestAccept(u *model.User, npcID, questID int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp := serverpackets.QuestAcceptResponse{QuestID: questID, Result: protocol.QuestResultFail}

	def, ok := r.questForNpcLocked(npcID, questID)
	if !ok {
		r.sendLocked(u.Index(), resp.Write())
		return
	}

	userID := u.UserID()
	p := r.progressLocked(userID, questID)
	if p == nil {
		p = quest.NewProgress(def)
		if err := p.Accept(); err == nil {
			if r.progress[userID] == nil {
				r.progress[userID] = make(map[int32]*quest.Progress)
			}
			r.progress[userID][questID] = p
			resp.Result = protocol.QuestResultOK
			slog.Info("quest accepted", "room", r.number, "userID", userID, "questID", questID)
		}
	}

	resp.State, resp.Current, resp.Required = p.Snapshot()
	r.sendLocked(u.Index(), resp.Write())
}

// QuestComplete hands out the reward of a COMPLETED quest once.
func (r *Room) QuestComplete(u *model.User, npcID, questID int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp := serverpackets.QuestCompleteResponse{QuestID: questID, Result: protocol.QuestResultFail}

	def, ok := r.questForNpcLocked(npcID, questID)
	if !ok {
		r.sendLocked(u.Index(), resp.Write())
		return
	}

	p := r.progressLocked(u.UserID(), questID)
	if p == nil {
		slog.Debug("complete without accept", "userID", u.UserID(), "questID", questID)
	} else if err := p.Claim(); err != nil {
		slog.Debug("quest not claimable", "userID", u.UserID(), "questID", questID, "error", err)
	} else {
		resp.Result = protocol.QuestResultOK
		resp.RewardItemID = def.RewardItemID
		resp.RewardQty = def.RewardQty
		slog.Info("quest completed", "room", r.number, "userID", u.UserID(), "questID", questID)
	}

	r.sendLocked(u.Index(), resp.Write())
}

// QuestState returns u's state and counters for questID.
func (r *Room) QuestState(userID string, questID int32) (state byte, current, required uint16, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.progressLocked(userID, questID)
	if p == nil {
		return quest.StateNotAccepted, 0, 0, false
	}
	state, current, required = p.Snapshot()
	return state, current, required, true
}

// recordKillLocked advances the killer's quests and notifies the killer only.
func (r *Room) recordKillLocked(killer *model.User, t model.EnemyType) {
	for questID, p := range r.progress[killer.UserID()] {
		if !p.RecordKill(t) {
			continue
		}
		state, current, required := p.Snapshot()
		r.sendLocked(killer.Index(), serverpackets.QuestProgressNotify{
			QuestID:  questID,
			Current:  current,
			Required: required,
			State:    state,
		}.Write())
	}
}

func (r *Room) questForNpcLocked(npcID, questID int32) (quest.Definition, bool) {
	def, ok := r.quests.Get(questID)
	if !ok || def.NpcID != npcID || !r.hasNpcLocked(int64(npcID)) {
		slog.Warn("unknown quest for npc", "room", r.number, "npcID", npcID, "questID", questID)
		return quest.Definition{}, false
	}
	return def, true
}

func (r *Room) progressLocked(userID string, questID int32) *quest.Progress {
	return r.progress[userID][questID]
}
